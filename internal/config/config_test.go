package config

import (
	"os"
	"testing"

	"chatbot-service/internal/conversation"
	"chatbot-service/internal/llm"
)

// clearEnv unsets every variable Load looks at for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HF_TOKEN", "SYSTEM_PROMPT",
		"REMOTE_BASE_URL", "REMOTE_MODEL",
		"LOCAL_ENABLED", "LOCAL_HOST", "LOCAL_MODEL",
		"AUDIT_DRIVER", "AUDIT_DSN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("want default port 8080, got %q", cfg.Port)
	}
	if cfg.SystemPrompt != conversation.DefaultSystemPrompt {
		t.Errorf("unexpected default system prompt %q", cfg.SystemPrompt)
	}
	if cfg.Remote.BaseURL != llm.DefaultRemoteBaseURL || cfg.Remote.Model != llm.DefaultRemoteModel {
		t.Errorf("unexpected remote defaults %+v", cfg.Remote)
	}
	if !cfg.Local.Enabled || cfg.Local.Model != llm.DefaultLocalModel {
		t.Errorf("unexpected local defaults %+v", cfg.Local)
	}
	if cfg.HFToken != "" || cfg.Audit.Driver != "" {
		t.Errorf("token and audit should be empty by default: %+v", cfg)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("HF_TOKEN", "hf_server")
	t.Setenv("REMOTE_MODEL", "Qwen/Qwen2.5-7B-Instruct")
	t.Setenv("LOCAL_ENABLED", "false")
	t.Setenv("AUDIT_DRIVER", "sqlite3")
	t.Setenv("AUDIT_DSN", "audit.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "9000" || cfg.HFToken != "hf_server" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Remote.Model != "Qwen/Qwen2.5-7B-Instruct" {
		t.Errorf("want overridden remote model, got %q", cfg.Remote.Model)
	}
	if cfg.Local.Enabled {
		t.Errorf("want local backend disabled")
	}
	if cfg.Audit.Driver != "sqlite3" || cfg.Audit.DSN != "audit.db" {
		t.Errorf("unexpected audit config %+v", cfg.Audit)
	}
}

func TestLoad_AuditDriverNeedsDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIT_DRIVER", "pgx")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected an error when AUDIT_DSN is missing")
	}
}
