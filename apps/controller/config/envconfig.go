package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mdexhq/mdex/apps/controller/utils"
)

type EnvConfig struct {
	Port           string `envconfig:"PORT" default:"3000"`
	AllowedOrigin  string `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:5173"`
	AuthSecret     string `envconfig:"AUTH_SECRET" required:"true"`
	GateSecret     string `envconfig:"GATE_SECRET"`
	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL  string `envconfig:"OPENAI_BASE_URL"`
	LLMModel       string `envconfig:"LLM_MODEL"`
	Environment    string `envconfig:"ENVIRONMENT" default:"development"`
	AccessTokenTTL int    `envconfig:"ACCESS_TOKEN_TTL" default:"3600"`
}

func ValidateEnv() (*EnvConfig, error) {
	if utils.IsDev() {
		if err := godotenv.Load(); err != nil {
			log.Println("ℹ No .env file found")
		} else {
			log.Println("✓ Loaded .env file")
		}
	}

	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var errors []string

	if len(cfg.AuthSecret) < 32 {
		errors = append(errors, "  ❌ AUTH_SECRET must be at least 32 characters")
	}

	if cfg.OpenAIAPIKey == "" {
		// Not fatal: clients may pass their own key per request.
		log.Println("ℹ OPENAI_API_KEY not set; requests must carry their own key")
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("environment validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return &cfg, nil
}

func MaskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func (c *EnvConfig) Print(fmtr func(string, ...interface{})) {
	fmtr("📋 Configuration:\n")
	fmtr("  Environment: %s\n", c.Environment)
	fmtr("  Port: %s\n", c.Port)
	fmtr("  Allowed Origin: %s\n", c.AllowedOrigin)
	fmtr("  Auth Secret: %s\n", MaskSecret(c.AuthSecret))
	fmtr("  OpenAI API Key: %s\n", MaskSecret(c.OpenAIAPIKey))

	if c.GateSecret != "" {
		fmtr("  Password Wall: ✓ Enabled\n")
		fmtr("    Secret: %s\n", MaskSecret(c.GateSecret))
	} else {
		fmtr("  Password Wall: ✗ Disabled\n")
	}
}
