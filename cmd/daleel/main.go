package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/daleel-dz/daleel/internal/app"
	"github.com/daleel-dz/daleel/internal/lang"
	"github.com/daleel-dz/daleel/internal/obs"
	"github.com/daleel-dz/daleel/internal/search"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		question   string
		mode       string
		convCtx    string
		configPath string
		searchURL  string
		searchKey  string
		llmBaseURL string
		llmModel   string
		llmKey     string
		signerURL  string
		signerKey  string
		verbose    bool
	)

	flag.StringVar(&question, "q", "", "Legal question to answer")
	// Empty default so config file and ASSIST_MODE stay reachable; the
	// expert default is resolved after the merge.
	flag.StringVar(&mode, "mode", "", "Answer mode: expert or chat (default expert)")
	flag.StringVar(&convCtx, "context", "", "Prior conversation context for follow-up questions")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&searchURL, "search.url", "", "Document search service URL")
	flag.StringVar(&searchKey, "search.key", "", "Document search API key")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL for intent extraction")
	flag.StringVar(&llmModel, "llm.model", "", "Model name for intent extraction")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the OpenAI-compatible server")
	flag.StringVar(&signerURL, "signer.url", "", "Storage signing service URL")
	flag.StringVar(&signerKey, "signer.key", "", "Storage signing API key")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if strings.TrimSpace(question) == "" {
		fmt.Fprintln(os.Stderr, "usage: daleel -q \"<question>\" [-mode expert|chat]")
		os.Exit(2)
	}

	cfg := app.Config{
		SearchURL:  searchURL,
		SearchKey:  searchKey,
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
		SignerURL:  signerURL,
		SignerKey:  signerKey,
		Mode:       mode,
		Verbose:    verbose,
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(2)
		}
		app.MergeFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose || verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg, question, convCtx); err != nil {
		arabic := lang.IsArabic(question)
		log.Error().Err(err).Msg("ask failed")
		fmt.Fprintln(os.Stderr, app.UserErrorMessage(arabic))
		if errors.Is(err, search.ErrService) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func run(cfg app.Config, question, convCtx string) error {
	ctx := context.Background()

	a := app.New(cfg, &obs.ZerologSink{Logger: log.Logger})
	resp, err := a.Ask(ctx, app.Question{
		Text:                question,
		Mode:                parseMode(cfg.Mode),
		ConversationContext: convCtx,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func parseMode(s string) search.Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(search.ModeChat)) {
		return search.ModeChat
	}
	return search.ModeExpert
}
