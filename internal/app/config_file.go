package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration accepts human-readable values ("3s", "1h") as well as plain
// nanosecond integers from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally to flags and env.
type FileConfig struct {
	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Search struct {
		URL string `yaml:"url"`
		Key string `yaml:"key"`
	} `yaml:"search"`

	Signer struct {
		URL    string   `yaml:"url"`
		Key    string   `yaml:"key"`
		Expiry Duration `yaml:"expiry"`
	} `yaml:"signer"`

	Mode    string `yaml:"mode"`
	Verbose bool   `yaml:"verbose"`

	Timeouts struct {
		Intent Duration `yaml:"intent"`
		Sign   Duration `yaml:"sign"`
	} `yaml:"timeouts"`
}

// LoadConfigFile parses the YAML config at path.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// MergeFileConfig fills unset cfg fields from fc. Explicit cfg values (flags)
// take precedence over the file.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = fc.Search.URL
	}
	if cfg.SearchKey == "" {
		cfg.SearchKey = fc.Search.Key
	}
	if cfg.SignerURL == "" {
		cfg.SignerURL = fc.Signer.URL
	}
	if cfg.SignerKey == "" {
		cfg.SignerKey = fc.Signer.Key
	}
	if cfg.SignExpiry == 0 {
		cfg.SignExpiry = time.Duration(fc.Signer.Expiry)
	}
	if cfg.Mode == "" {
		cfg.Mode = fc.Mode
	}
	if cfg.IntentTimeout == 0 {
		cfg.IntentTimeout = time.Duration(fc.Timeouts.Intent)
	}
	if cfg.SignTimeout == 0 {
		cfg.SignTimeout = time.Duration(fc.Timeouts.Sign)
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
