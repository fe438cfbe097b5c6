package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvToConfigPrecedence(t *testing.T) {
	t.Setenv("SEARCH_URL", "https://env.example/search")
	t.Setenv("LLM_MODEL", "env-model")
	t.Setenv("INTENT_TIMEOUT", "5s")

	cfg := Config{LLMModel: "flag-model"}
	ApplyEnvToConfig(&cfg)

	if cfg.SearchURL != "https://env.example/search" {
		t.Fatalf("env not applied: %q", cfg.SearchURL)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("explicit value must win over env: %q", cfg.LLMModel)
	}
	if cfg.IntentTimeout != 5*time.Second {
		t.Fatalf("timeout not parsed: %v", cfg.IntentTimeout)
	}
}

func TestLoadAndMergeConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daleel.yaml")
	content := `
llm:
  base: https://file.example/v1
  model: file-model
search:
  url: https://file.example/search
signer:
  url: https://file.example/sign
  expiry: 1h
mode: chat
timeouts:
  intent: 3s
  sign: 3s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg := Config{LLMModel: "flag-model"}
	MergeFileConfig(&cfg, fc)

	if cfg.LLMModel != "flag-model" {
		t.Fatalf("flags must win over file: %q", cfg.LLMModel)
	}
	if cfg.LLMBaseURL != "https://file.example/v1" || cfg.SearchURL != "https://file.example/search" {
		t.Fatalf("file values not merged: %+v", cfg)
	}
	if cfg.Mode != "chat" || cfg.SignExpiry != time.Hour || cfg.IntentTimeout != 3*time.Second {
		t.Fatalf("file values not merged: %+v", cfg)
	}
}

func TestMergeFileConfigModeReachable(t *testing.T) {
	// An unset mode flag must not shadow the config file value.
	var fc FileConfig
	fc.Mode = "chat"

	cfg := Config{}
	MergeFileConfig(&cfg, fc)
	if cfg.Mode != "chat" {
		t.Fatalf("file mode lost: %q", cfg.Mode)
	}

	explicit := Config{Mode: "expert"}
	MergeFileConfig(&explicit, fc)
	if explicit.Mode != "expert" {
		t.Fatalf("explicit mode must win over file: %q", explicit.Mode)
	}
}

func TestApplyEnvModeReachable(t *testing.T) {
	t.Setenv("ASSIST_MODE", "chat")
	cfg := Config{}
	ApplyEnvToConfig(&cfg)
	if cfg.Mode != "chat" {
		t.Fatalf("env mode lost: %q", cfg.Mode)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
