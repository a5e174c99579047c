package schema_test

import (
	"fmt"
	"os"

	"github.com/nauticalab/envschema/pkg/schema"
)

// ExampleObject_Parse builds a small schema and parses a snapshot, logging each
// resolved key to stdout.
func ExampleObject_Parse() {
	app := schema.NewObject().
		Field("APP_NAME", schema.String()).
		Field("APP_PORT", schema.Integer().Default(8080)).
		Field("APP_TOKEN", schema.String().Secret()).
		Field("APP_LEVEL", schema.Enum("debug", "info", "warn"))

	values, err := app.Parse(schema.Snapshot{
		"APP_NAME":  "demo",
		"APP_TOKEN": "s3cr3t",
		"APP_LEVEL": "info",
	}, schema.WithLogger(schema.NewConsoleLogger(os.Stdout)))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(values["APP_NAME"], values["APP_PORT"], values["APP_LEVEL"])

	// Output:
	// APP_NAME=demo
	// APP_PORT=8080 (default)
	// APP_TOKEN=<redacted>
	// APP_LEVEL=info
	// demo 8080 info
}

// ExampleObject_Parse_failure shows that every failing field is reported at
// once.
func ExampleObject_Parse_failure() {
	app := schema.NewObject().
		Field("APP_NAME", schema.String()).
		Field("APP_PORT", schema.Integer()).
		Field("APP_LEVEL", schema.Enum("debug", "info", "warn"))

	_, err := app.Parse(schema.Snapshot{"APP_PORT": "http", "APP_LEVEL": "trace"},
		schema.WithLogger(schema.Discard))
	fmt.Println(err)

	// Output:
	// Unable to fill the following fields: APP_NAME, APP_PORT, APP_LEVEL
}

// ExampleObject_Template renders the help text of a schema with a union.
func ExampleObject_Template() {
	app := schema.NewObject().
		Field("APP_PORT", schema.Integer().Default(8080).Description("Listen port")).
		Field("APP_DEBUG", schema.Boolean().Optional()).
		Field("DB_KIND", schema.NewUnion().
			Default("sqlite").
			Option("sqlite", schema.NewObject().Field("DB_PATH", schema.String().Default("app.db"))).
			Option("postgres", schema.NewObject().Field("DB_URL", schema.String().Secret())))

	fmt.Print(app.Template())

	// Output:
	// # Listen port
	// APP_PORT=8080
	// # APP_DEBUG=
	// DB_KIND=sqlite
	// DB_PATH=app.db
	//
	// # DB_KIND=postgres
	// # DB_URL=
}
