// Package config loads schema manifests: YAML documents describing an
// environment schema tree, which are validated and then built into a
// [schema.Object].
//
// # Basic Usage
//
// The main entry point is [LoadSchema], which loads, validates and builds the
// manifest in one step:
//
//	manifest, root, err := config.LoadSchema("envschema.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	values, err := root.Parse(schema.Environ())
//
// # Manifest Format
//
// Fields are declared as a mapping; document order is the order in which
// they are resolved and described:
//
//	description: Billing service
//	assumePrefix: [BILLING_]
//	unused: reject
//	fields:
//	  PORT:
//	    type: integer
//	    env: BILLING_PORT
//	    default: "8080"
//	    validate: "min=1,max=65535"
//	  MODE:
//	    type: enum
//	    values: [dev, prod]
//	  DATABASE:
//	    type: union
//	    env: BILLING_DB
//	    defaultOption: sqlite
//	    tag: kind
//	    options:
//	      sqlite:
//	        fields:
//	          PATH: {type: string}
//	      postgres:
//	        fields:
//	          DSN: {type: string, secret: true}
//
// Supported types are string, number, integer, boolean, duration, enum,
// object and union. Defaults are raw strings converted like snapshot values.
//
// # Validation
//
// Manifests are validated with go-playground/validator struct tags plus
// type-dependent checks: a default may not be combined with optional,
// defaultOption must name an option, validate tags must be runnable against
// the field's type, and keys must be valid environment variable names.
// All problems are reported together.
//
// [schema.Object]: github.com/nauticalab/envschema/pkg/schema.Object
package config
