package app

import (
	"os"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.SearchURL == "" {
		cfg.SearchURL = os.Getenv("SEARCH_URL")
	}
	if cfg.SearchKey == "" {
		cfg.SearchKey = os.Getenv("SEARCH_KEY")
	}

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}

	if cfg.SignerURL == "" {
		cfg.SignerURL = os.Getenv("SIGNER_URL")
	}
	if cfg.SignerKey == "" {
		cfg.SignerKey = os.Getenv("SIGNER_KEY")
	}

	if cfg.Mode == "" {
		cfg.Mode = os.Getenv("ASSIST_MODE")
	}

	if cfg.IntentTimeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("INTENT_TIMEOUT")); err == nil && d > 0 {
			cfg.IntentTimeout = d
		}
	}
	if cfg.SignTimeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("SIGN_TIMEOUT")); err == nil && d > 0 {
			cfg.SignTimeout = d
		}
	}
}
