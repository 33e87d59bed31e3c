package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
database:
  driver: "postgres"
  sqlite:
    path: "data/test.db"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "admin"
    password: "secret"
    dbname: "testdb"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
log:
  level: "info"
  format: "json"
auth:
  jwt_secret: "Test-Secret-With-Classes-1234567890!"
  token_expiry: "12h"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_FullYAML(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want %q", cfg.Server.Mode, "release")
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.Postgres.Host != "db.example.com" {
		t.Errorf("Database.Postgres.Host = %q", cfg.Database.Postgres.Host)
	}
	if cfg.Database.Pool.MaxIdleConns != 5 {
		t.Errorf("Database.Pool.MaxIdleConns = %d, want 5", cfg.Database.Pool.MaxIdleConns)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %q/%q, want info/json", cfg.Log.Level, cfg.Log.Format)
	}

	if cfg.Auth.TokenExpiry != "12h" {
		t.Errorf("Auth.TokenExpiry = %q, want 12h", cfg.Auth.TokenExpiry)
	}
	if cfg.TokenExpiryDuration() != 12*time.Hour {
		t.Errorf("TokenExpiryDuration = %v, want 12h", cfg.TokenExpiryDuration())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")
	t.Setenv("APP__AUTH__TOKEN_EXPIRY", "48h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("MaxIdleConns = %d, want env override 20", cfg.Database.Pool.MaxIdleConns)
	}
	if cfg.Auth.TokenExpiry != "48h" {
		t.Errorf("TokenExpiry = %q, want env override 48h", cfg.Auth.TokenExpiry)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate_Failures(t *testing.T) {
	base := func() string { return testYAML }

	cases := []struct {
		name    string
		mangle  func(string) string
		wantSub string
	}{
		{
			"bad mode",
			func(s string) string { return strings.Replace(s, `mode: "release"`, `mode: "turbo"`, 1) },
			"server.mode",
		},
		{
			"bad port",
			func(s string) string { return strings.Replace(s, "port: 3000", "port: 70000", 1) },
			"server.port",
		},
		{
			"bad driver",
			func(s string) string { return strings.Replace(s, `driver: "postgres"`, `driver: "oracle"`, 1) },
			"database.driver",
		},
		{
			"weak sslmode in release",
			func(s string) string { return strings.Replace(s, `sslmode: "require"`, `sslmode: "disable"`, 1) },
			"sslmode",
		},
		{
			"short jwt secret",
			func(s string) string {
				return strings.Replace(s, `jwt_secret: "Test-Secret-With-Classes-1234567890!"`, `jwt_secret: "short"`, 1)
			},
			"jwt_secret",
		},
		{
			"missing token expiry",
			func(s string) string { return strings.Replace(s, `token_expiry: "12h"`, `token_expiry: ""`, 1) },
			"token_expiry",
		},
		{
			"bad log level",
			func(s string) string { return strings.Replace(s, `level: "info"`, `level: "loud"`, 1) },
			"log.level",
		},
		{
			"bad log format",
			func(s string) string { return strings.Replace(s, `format: "json"`, `format: "xml"`, 1) },
			"log.format",
		},
	}

	for _, tc := range cases {
		path := writeTestConfig(t, tc.mangle(base()))
		_, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantSub) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.wantSub)
		}
	}
}

func TestValidate_SQLitePathRequired(t *testing.T) {
	yaml := strings.Replace(testYAML, `driver: "postgres"`, `driver: "sqlite"`, 1)
	yaml = strings.Replace(yaml, `path: "data/test.db"`, `path: "  "`, 1)
	yaml = strings.Replace(yaml, `mode: "release"`, `mode: "debug"`, 1)

	_, err := Load(writeTestConfig(t, yaml))
	if err == nil || !strings.Contains(err.Error(), "database.sqlite.path") {
		t.Errorf("expected sqlite path error, got %v", err)
	}
}

func TestValidate_ReleaseSecretNeedsCharacterClasses(t *testing.T) {
	yaml := strings.Replace(testYAML,
		`jwt_secret: "Test-Secret-With-Classes-1234567890!"`,
		`jwt_secret: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"`, 1)

	_, err := Load(writeTestConfig(t, yaml))
	if err == nil || !strings.Contains(err.Error(), "character classes") {
		t.Errorf("expected secret class error, got %v", err)
	}
}

func TestCountSecretClasses(t *testing.T) {
	cases := []struct {
		secret string
		want   int
	}{
		{"", 0},
		{"abc", 1},
		{"abcABC", 2},
		{"abcABC123", 3},
		{"abcABC123!@#", 4},
	}

	for _, tc := range cases {
		if got := CountSecretClasses(tc.secret); got != tc.want {
			t.Errorf("CountSecretClasses(%q) = %d; want %d", tc.secret, got, tc.want)
		}
	}
}
