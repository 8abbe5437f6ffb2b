package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Knowledge.Dir != "knowledge" {
		t.Errorf("knowledge dir = %q", cfg.Knowledge.Dir)
	}
	if cfg.Provider.Backend != "groq" {
		t.Errorf("backend = %q", cfg.Provider.Backend)
	}
	if cfg.Provider.Model != DefaultGroqModel {
		t.Errorf("model = %q", cfg.Provider.Model)
	}
	if cfg.Chat.ContextTurns != DefaultContextTurns {
		t.Errorf("context turns = %d", cfg.Chat.ContextTurns)
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kotae.yaml")

	cfg := DefaultConfig()
	cfg.Knowledge.Dir = "topics"
	cfg.Knowledge.Watch = true
	cfg.Provider.Backend = "openai"
	cfg.Provider.Model = "gpt-4o-mini"
	cfg.Chat.TimeoutSeconds = 5

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Knowledge.Dir != "topics" || !loaded.Knowledge.Watch {
		t.Errorf("knowledge = %+v", loaded.Knowledge)
	}
	if loaded.Provider.Backend != "openai" || loaded.Provider.Model != "gpt-4o-mini" {
		t.Errorf("provider = %+v", loaded.Provider)
	}
	if loaded.Timeout() != 5*time.Second {
		t.Errorf("timeout = %v", loaded.Timeout())
	}
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.Backend != "groq" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kotae.yaml")
	if err := os.WriteFile(path, []byte("{{invalid yaml:::"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kotae.yaml")
	if err := os.WriteFile(path, []byte("knowledge:\n  dir: custom\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Knowledge.Dir != "custom" {
		t.Errorf("dir = %q", cfg.Knowledge.Dir)
	}
	// unset sections keep their defaults
	if cfg.Provider.Backend != "groq" {
		t.Errorf("backend = %q", cfg.Provider.Backend)
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider.APIKey = "from-config"
	if got := cfg.ResolveAPIKey(); got != "from-config" {
		t.Errorf("key = %q", got)
	}

	cfg.Provider.APIKey = ""
	t.Setenv(APIKeyEnv, "from-env")
	if got := cfg.ResolveAPIKey(); got != "from-env" {
		t.Errorf("key = %q", got)
	}
}

func TestTimeoutDefault(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout() != DefaultTimeout {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
}
