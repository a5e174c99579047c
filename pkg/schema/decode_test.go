package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodedDatabase struct {
	Kind string `env:"kind"`
	Path string `env:"DB_PATH"`
	URL  string `env:"DB_URL"`
}

type decodedConfig struct {
	Port     int             `env:"APP_PORT"`
	Ratio    float64         `env:"APP_RATIO"`
	Debug    *bool           `env:"APP_DEBUG"`
	Timeout  time.Duration   `env:"APP_TIMEOUT"`
	Database decodedDatabase `env:"database"`
}

func TestParseInto(t *testing.T) {
	app := NewObject().
		Field("APP_PORT", Integer().Default(8080)).
		Field("APP_RATIO", Number()).
		Field("APP_DEBUG", Boolean().Optional()).
		Field("APP_TIMEOUT", Duration().Default(5*time.Second)).
		Field("database", NewUnion().
			Env("DB_KIND").
			Default("sqlite").
			Option("sqlite", NewObject().Field("DB_PATH", String().Default("app.db"))).
			Option("postgres", NewObject().Field("DB_URL", String().Secret())).
			Tag("kind"))

	t.Run("defaults", func(t *testing.T) {
		cfg, err := ParseInto[decodedConfig](app, Snapshot{"APP_RATIO": "0.5"}, WithLogger(Discard))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 0.5, cfg.Ratio)
		assert.Nil(t, cfg.Debug)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, decodedDatabase{Kind: "sqlite", Path: "app.db"}, cfg.Database)
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg, err := ParseInto[decodedConfig](app, Snapshot{
			"APP_RATIO": "2",
			"APP_DEBUG": "on",
			"DB_KIND":   "postgres",
			"DB_URL":    "postgres://db",
		}, WithLogger(Discard))
		require.NoError(t, err)

		require.NotNil(t, cfg.Debug)
		assert.True(t, *cfg.Debug)
		assert.Equal(t, decodedDatabase{Kind: "postgres", URL: "postgres://db"}, cfg.Database)
	})

	t.Run("parse failure is returned", func(t *testing.T) {
		_, err := ParseInto[decodedConfig](app, Snapshot{}, WithLogger(Discard))
		assert.EqualError(t, err, "Unable to fill the following fields: APP_RATIO")
	})
}

func TestDecode_TypeMismatch(t *testing.T) {
	var out struct {
		Port int `env:"PORT"`
	}
	err := Decode(Values{"PORT": "not a number"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
