// Package schema turns a flat environment snapshot into a typed, nested
// configuration value, reporting every problem in a single pass instead of
// stopping at the first one.
//
// A schema is a tree of nodes built once and reused for any number of parses:
//
//   - [Variable] leaves resolve one key through a conversion function
//     ([String], [Number], [Integer], [Boolean], [Duration], [Enum] or [Var]).
//   - [Object] nodes map ordered field names to child nodes.
//   - [Union] nodes pick one of several Objects by the value of a selector key;
//     [Union.Tag] records the chosen variant in the result.
//
// # Basic Usage
//
//	db := schema.NewUnion().
//	    Env("DB_KIND").
//	    Default("sqlite").
//	    Option("sqlite", schema.NewObject().Field("DB_PATH", schema.String().Default("app.db"))).
//	    Option("postgres", schema.NewObject().Field("DB_URL", schema.String().Secret())).
//	    Tag("kind")
//
//	app := schema.NewObject().
//	    Field("APP_PORT", schema.Integer().Default(8080).Validate("min=1,max=65535")).
//	    Field("APP_DEBUG", schema.Boolean().Optional()).
//	    Field("database", db).
//	    AssumePrefix("APP_").
//	    RejectUnused()
//
//	values, err := app.Parse(schema.Environ())
//	if err != nil {
//	    log.Fatal(err) // Unable to fill the following fields: APP_PORT, database
//	}
//
// Every resolved key is logged through a [Logger]: successful values and
// defaults on the info channel, missing and invalid values on the error
// channel. Secret leaves are logged as [Redacted], including their defaults.
//
// # Results
//
// Nodes resolve to a [Result], which is a success, missing or error outcome.
// [Combine] folds the results of an Object's fields into one, naming every
// failing field. [Object.SafeParse] returns that Result; [Object.Parse] turns a
// failing Result into an error.
//
// # Help Output
//
// [Object.Template] renders a dotenv-style file documenting every key:
//
//	APP_PORT=8080
//	# APP_DEBUG=
//	DB_KIND=sqlite
//	DB_PATH=app.db
//
//	# DB_KIND=postgres
//	# DB_URL=
package schema
