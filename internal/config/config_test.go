package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 3306 {
		t.Errorf("database defaults = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.PoolSize != 5 {
		t.Errorf("pool size = %d, want 5", cfg.Database.PoolSize)
	}
	if cfg.Database.QueryTimeout() != 30*time.Second {
		t.Errorf("query timeout = %v, want 30s", cfg.Database.QueryTimeout())
	}
	if cfg.API.Addr() != "0.0.0.0:8000" {
		t.Errorf("api addr = %s", cfg.API.Addr())
	}
}

func TestLoadAppliesYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
database:
  host: db.internal
  port: 3307
  database: rio
api:
  port: 9000
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DB_HOST", "from-env")
	t.Setenv("DB_PORT", "")
	t.Setenv("API_PORT", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// env beats yaml
	if cfg.Database.Host != "from-env" {
		t.Errorf("host = %q, want from-env", cfg.Database.Host)
	}
	// yaml beats defaults
	if cfg.Database.Port != 3307 {
		t.Errorf("port = %d, want 3307", cfg.Database.Port)
	}
	if cfg.Database.Database != "rio" {
		t.Errorf("database = %q, want rio", cfg.Database.Database)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("api port = %d, want 9000", cfg.API.Port)
	}
	// defaults survive where nothing overrides
	if cfg.Database.PoolSize != 5 {
		t.Errorf("pool size = %d, want 5", cfg.Database.PoolSize)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("host = %q, want localhost", cfg.Database.Host)
	}
}

func TestOriginList(t *testing.T) {
	c := CORSConfig{Origins: "http://a.example, http://b.example ,,"}
	want := []string{"http://a.example", "http://b.example"}
	if got := c.OriginList(); !reflect.DeepEqual(got, want) {
		t.Errorf("OriginList() = %v, want %v", got, want)
	}
}
