package app

import "time"

// Config holds runtime configuration for the assistant pipeline.
type Config struct {
	// Document search service
	SearchURL string
	SearchKey string

	// LLM (intent extraction)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Storage signing service
	SignerURL string
	SignerKey string

	// Behavior
	Mode          string // "expert" or "chat"
	IntentTimeout time.Duration
	SignTimeout   time.Duration
	SignExpiry    time.Duration
	Verbose       bool
}
