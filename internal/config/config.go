// Package config loads service configuration from an optional TOML file
// with environment-variable overrides for deploy-time secrets.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":5000"
	DefaultPrimaryModel   = "gemini-1.5-flash-latest"
	DefaultFallbackModel  = "gemini-pro"
	DefaultMaxHistory     = 20
	DefaultMediaTimeoutS  = 30
	DefaultModelTimeoutS  = 60
	DefaultReplyMaxLength = 1500
)

// Config is the full service configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Gemini GeminiConfig `toml:"gemini"`
	Twilio TwilioConfig `toml:"twilio"`
	Chat   ChatConfig   `toml:"chat"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// GeminiConfig configures the model client and the two model tiers.
type GeminiConfig struct {
	APIKey         string `toml:"api_key" validate:"required"`
	BaseURL        string `toml:"base_url"`
	PrimaryModel   string `toml:"primary_model" validate:"required"`
	FallbackModel  string `toml:"fallback_model" validate:"required"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"gt=0"`
}

// TwilioConfig holds the transport account credentials used for
// authenticated media retrieval.
type TwilioConfig struct {
	AccountSID          string `toml:"account_sid" validate:"required"`
	AuthToken           string `toml:"auth_token" validate:"required"`
	MediaTimeoutSeconds int    `toml:"media_timeout_seconds" validate:"gt=0"`
}

// ChatConfig bounds conversation state and reply size.
type ChatConfig struct {
	MaxHistory     int `toml:"max_history" validate:"gt=0"`
	ReplyMaxLength int `toml:"reply_max_length" validate:"gt=0"`
}

// ModelTimeout returns the bound for a single model call.
func (c GeminiConfig) ModelTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MediaTimeout returns the bound for a single media download.
func (c TwilioConfig) MediaTimeout() time.Duration {
	return time.Duration(c.MediaTimeoutSeconds) * time.Second
}

// Load reads the config file at path (missing files are fine, defaults
// apply), overlays environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Gemini: GeminiConfig{
			PrimaryModel:   DefaultPrimaryModel,
			FallbackModel:  DefaultFallbackModel,
			TimeoutSeconds: DefaultModelTimeoutS,
		},
		Twilio: TwilioConfig{
			MediaTimeoutSeconds: DefaultMediaTimeoutS,
		},
		Chat: ChatConfig{
			MaxHistory:     DefaultMaxHistory,
			ReplyMaxLength: DefaultReplyMaxLength,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays the deploy-time environment. Secrets are expected
// here rather than in the config file.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID")); v != "" {
		cfg.Twilio.AccountSID = v
	}
	if v := strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")); v != "" {
		cfg.Twilio.AuthToken = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Server.Addr = ":" + v
	}
}
