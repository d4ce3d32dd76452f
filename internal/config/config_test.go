package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_PostgresDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 3000
database:
  host: localhost
  user: volunteer
  database: volunteerdb
jwt:
  secret: `+testSecret+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 60, cfg.JWT.TokenExpiryMinutes)
	assert.Equal(t, "token", cfg.JWT.CookieName)
	assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NotEmpty(t, cfg.Scheduler.StoreHealthProbe)
	assert.Equal(t, "postgres://volunteer:@localhost:5432/volunteerdb?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, ":3000", cfg.GetServerAddress())
}

func TestGetDatabaseConnectionString_EscapesCredentials(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app user",
		Password: "p@ss/w:rd?#",
		Database: "volunteerdb",
		SSLMode:  "require",
	}}

	dsn := cfg.GetDatabaseConnectionString()
	u, err := url.Parse(dsn)
	require.NoError(t, err, dsn)

	pass, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/w:rd?#", pass)
	assert.Equal(t, "app user", u.User.Username())
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "/volunteerdb", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 3000
database:
  driver: mongodb
  uri: mongodb://file
jwt:
  secret: `+testSecret+`
`)

	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("MONGODB_URI", "mongodb://env:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "fedcba9876543210fedcba9876543210")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mongodb://env:27017", cfg.Database.URI)
	assert.Equal(t, "volunteerDB", cfg.Database.Database)
	assert.Equal(t, "fedcba9876543210fedcba9876543210", cfg.JWT.Secret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 3000},
			Database: DatabaseConfig{Driver: DriverPostgres, Host: "h", User: "u", Database: "d"},
			JWT:      JWTConfig{Secret: testSecret},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"missing host", func(c *Config) { c.Database.Host = "" }, "database host is required"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "badger" }, "unsupported database driver"},
		{"mongo without uri", func(c *Config) { c.Database.Driver = DriverMongoDB }, "mongodb uri is required"},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "at least 32 characters"},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT secret is required"},
		{"sendgrid without inbox", func(c *Config) { c.Email.SendGridAPIKey = "key" }, "contact_inbox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("GET", "/posts"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("POST", "/posts"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("PATCH", "/request/reject/{id}"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("GET", "/unknown"))
}
