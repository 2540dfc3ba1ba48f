package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := []byte(`
app:
  port: 9000
llm:
  model: gemini-2.0-flash
customize:
  max_input_chars: 50000
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("validation errors: %v", res.Errors)
	}

	if cfg.App.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.App.Port)
	}
	if cfg.App.Host != "127.0.0.1" {
		t.Errorf("host default = %q", cfg.App.Host)
	}
	if cfg.Customize.MaxInputChars != 50000 {
		t.Errorf("max_input_chars = %d", cfg.Customize.MaxInputChars)
	}
	if cfg.JobText.PerHostRPS != 1 || cfg.JobText.Burst != 2 || cfg.JobText.TimeoutSeconds != 20 {
		t.Errorf("jobtext defaults = %+v", cfg.JobText)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	var cfg Config
	cfg.App.Port = 70000
	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestEnsureUserConfigSeedsOnce(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(def, []byte("app:\n  port: 8090\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	path, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}

	// Editing the user copy must survive a second call.
	if err := os.WriteFile(path, []byte("app:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, def)
	if err != nil {
		t.Fatal(err)
	}
	if again != path {
		t.Fatalf("path changed: %q vs %q", again, path)
	}
	cfg, err := Load(again)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 9999 {
		t.Errorf("user edit overwritten, port = %d", cfg.App.Port)
	}
}
