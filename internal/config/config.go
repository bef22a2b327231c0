package config

import (
	"errors"
	"fmt"
	"strings"

	"chatbot-service/internal/conversation"
	"chatbot-service/internal/llm"

	"github.com/spf13/viper"
)

// Config is the service configuration.
type Config struct {
	Port string `mapstructure:"port"`
	// HFToken is used for the remote backend when a request carries no token.
	HFToken      string       `mapstructure:"hf_token"`
	SystemPrompt string       `mapstructure:"system_prompt"`
	Remote       RemoteConfig `mapstructure:"remote"`
	Local        LocalConfig  `mapstructure:"local"`
	Audit        AuditConfig  `mapstructure:"audit"`
}

type RemoteConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type LocalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Model   string `mapstructure:"model"`
}

// AuditConfig turns on exchange auditing when Driver is set.
type AuditConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Load reads chatbot.yaml from the working directory, if present, and
// overrides it with environment variables: nested keys are joined with an
// underscore, eg REMOTE_MODEL or AUDIT_DSN.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("chatbot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv picks it up on Unmarshal.
	v.SetDefault("port", "8080")
	v.SetDefault("hf_token", "")
	v.SetDefault("system_prompt", conversation.DefaultSystemPrompt)
	v.SetDefault("remote.base_url", llm.DefaultRemoteBaseURL)
	v.SetDefault("remote.model", llm.DefaultRemoteModel)
	v.SetDefault("local.enabled", true)
	v.SetDefault("local.host", llm.DefaultLocalHost)
	v.SetDefault("local.model", llm.DefaultLocalModel)
	v.SetDefault("audit.driver", "")
	v.SetDefault("audit.dsn", "")

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Audit.Driver != "" && cfg.Audit.DSN == "" {
		return nil, fmt.Errorf("audit driver %q set without AUDIT_DSN", cfg.Audit.Driver)
	}

	return &cfg, nil
}
