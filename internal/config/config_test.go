package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voltrack/voltrack/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DBPath != "data/volunteer.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SessionHours != 12 {
		t.Errorf("SessionHours = %d", cfg.SessionHours)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d", cfg.SMTP.Port)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
addr: ":9100"
db_path: /tmp/vol.db
secret_key: from-file
smtp:
  host: mail.example.org
  from: tracker@example.org
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9100" || cfg.DBPath != "/tmp/vol.db" || cfg.SecretKey != "from-file" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SMTP.Host != "mail.example.org" {
		t.Errorf("SMTP.Host = %q", cfg.SMTP.Host)
	}
	// Unset fields keep defaults.
	if cfg.SMTP.Port != 587 || cfg.SessionHours != 12 {
		t.Errorf("defaults not filled: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VOLTRACK_ADDR", ":7000")
	t.Setenv("VOLTRACK_SMTP_PORT", "2525")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q, want env override", cfg.Addr)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("SMTP.Port = %d, want 2525", cfg.SMTP.Port)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}
