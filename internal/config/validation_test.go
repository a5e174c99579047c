package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// --- env_key predicate -------------------------------------------------------
//

func TestValidator_EnvKey(t *testing.T) {
	type S struct {
		Key string `validate:"env_key"`
	}
	cases := []struct {
		name string
		val  string
		ok   bool
	}{
		{"upper snake", "DATABASE_URL", true},
		{"leading underscore", "_PRIVATE", true},
		{"lower case", "port", true},
		{"digits after first", "S3_BUCKET2", true},

		{"empty", "", false},
		{"leading digit", "1PORT", false},
		{"dash", "APP-PORT", false},
		{"space", "APP PORT", false},
		{"dot", "app.port", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(&S{Key: tc.val})
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

//
// --- struct tags ---------------------------------------------------------------
//

func TestValidateManifest_Tags(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			name:     "no fields",
			manifest: "description: empty\n",
			want:     "'Fields' is required",
		},
		{
			name:     "missing type",
			manifest: "fields:\n  HOST: {description: host}\n",
			want:     "'Fields[0].Type' is required",
		},
		{
			name:     "unknown type",
			manifest: "fields:\n  HOST: {type: text}\n",
			want:     "'Fields[0].Type' must be one of",
		},
		{
			name:     "invalid field name",
			manifest: "fields:\n  1HOST: {type: string}\n",
			want:     "'Fields[0].Name' must be a valid environment variable name, got '1HOST'",
		},
		{
			name:     "invalid env override",
			manifest: "fields:\n  HOST: {type: string, env: app-host}\n",
			want:     "'Fields[0].Env' must be a valid environment variable name, got 'app-host'",
		},
		{
			name:     "enum without values",
			manifest: "fields:\n  MODE: {type: enum}\n",
			want:     "'Fields[0].Values' is required when Type is enum",
		},
		{
			name:     "union without options",
			manifest: "fields:\n  DB: {type: union}\n",
			want:     "'Fields[0].Options' is required when Type is union",
		},
		{
			name:     "unknown unused mode",
			manifest: "unused: sometimes\nfields:\n  HOST: {type: string}\n",
			want:     "'Unused' must be one of [report reject], got 'sometimes'",
		},
		{
			name:     "nested field",
			manifest: "fields:\n  SERVER:\n    type: object\n    fields:\n      PORT: {type: port}\n",
			want:     "'Fields[0].Fields[0].Type' must be one of",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.manifest))
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "configuration validation failed:"), err.Error())
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

//
// --- type-dependent checks -----------------------------------------------------
//

func TestValidateManifest_Structure(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			name:     "default and optional",
			manifest: "fields:\n  HOST: {type: string, default: x, optional: true}\n",
			want:     "'fields.HOST' 'default' and 'optional' are mutually exclusive",
		},
		{
			name:     "values on a string",
			manifest: "fields:\n  HOST: {type: string, values: [a]}\n",
			want:     "'fields.HOST' only enum fields accept 'values'",
		},
		{
			name:     "tag on an object",
			manifest: "fields:\n  S:\n    type: object\n    tag: kind\n    fields:\n      A: {type: string}\n",
			want:     "'fields.S' only union fields accept 'tag'",
		},
		{
			name:     "default on an object",
			manifest: "fields:\n  S:\n    type: object\n    default: x\n    fields:\n      A: {type: string}\n",
			want:     "'fields.S' object fields accept none of",
		},
		{
			name:     "env on an object",
			manifest: "fields:\n  S:\n    type: object\n    env: S\n    fields:\n      A: {type: string}\n",
			want:     "object fields have no key of their own",
		},
		{
			name:     "empty object",
			manifest: "fields:\n  S: {type: object}\n",
			want:     "object fields need at least one entry",
		},
		{
			name:     "duplicate enum values",
			manifest: "fields:\n  MODE: {type: enum, values: [dev, prod, dev]}\n",
			want:     "lists enum value \"dev\" twice",
		},
		{
			name:     "undefined validate tag",
			manifest: "fields:\n  PORT: {type: integer, validate: port_range}\n",
			want:     "'fields.PORT' has an invalid 'validate' tag \"port_range\"",
		},
		{
			name: "unknown default option",
			manifest: `fields:
  DB:
    type: union
    defaultOption: oracle
    options:
      mysql: {fields: {HOST: {type: string}}}
      sqlite: {fields: {PATH: {type: string}}}
`,
			want: "defaultOption \"oracle\" is not one of the options (mysql, sqlite)",
		},
		{
			name: "tag shadows an option field",
			manifest: `fields:
  DB:
    type: union
    tag: PATH
    options:
      sqlite: {fields: {PATH: {type: string}}}
`,
			want: "option \"sqlite\" has a field named like the tag \"PATH\"",
		},
		{
			name: "problem inside an option",
			manifest: `fields:
  DB:
    type: union
    options:
      sqlite: {fields: {PATH: {type: string, default: a, optional: true}}}
`,
			want: "'fields.DB.options.sqlite.fields.PATH' 'default' and 'optional' are mutually exclusive",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.manifest))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateManifest_ReportsAllProblems(t *testing.T) {
	_, err := ParseManifest([]byte(`fields:
  HOST: {type: string, values: [a]}
  PORT: {type: integer, default: "1", optional: true}
`))
	require.Error(t, err)

	msg := err.Error()
	assert.Equal(t, 2, strings.Count(msg, "\n  - "))
	assert.Contains(t, msg, "'fields.HOST'")
	assert.Contains(t, msg, "'fields.PORT'")
}

func TestCheckValidateTag(t *testing.T) {
	assert.NoError(t, checkValidateTag(TypeInteger, "min=1,max=65535"))
	assert.NoError(t, checkValidateTag(TypeNumber, "gt=0.5"))
	assert.NoError(t, checkValidateTag(TypeString, "url"))
	assert.NoError(t, checkValidateTag(TypeObject, "anything"))

	assert.Error(t, checkValidateTag(TypeString, "no_such_tag"))
	assert.Error(t, checkValidateTag(TypeInteger, "min=abc"))
}
