package app

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/daleel-dz/daleel/internal/answer"
	"github.com/daleel-dz/daleel/internal/intent"
	"github.com/daleel-dz/daleel/internal/lang"
	"github.com/daleel-dz/daleel/internal/llm"
	"github.com/daleel-dz/daleel/internal/obs"
	"github.com/daleel-dz/daleel/internal/query"
	"github.com/daleel-dz/daleel/internal/search"
	"github.com/daleel-dz/daleel/internal/source"
	"github.com/daleel-dz/daleel/internal/storage"
)

// Generic user-facing messages for fatal search failures. Technical detail
// never crosses this boundary; it lives in the sink.
const (
	userErrorFR = "Une erreur est survenue lors de la recherche. Veuillez réessayer."
	userErrorAR = "حدث خطأ أثناء البحث. يرجى المحاولة مرة أخرى."
)

// UserErrorMessage returns the generic failure message in the query language.
func UserErrorMessage(arabic bool) string {
	if arabic {
		return userErrorAR
	}
	return userErrorFR
}

// Question is one inbound request to the assistant.
type Question struct {
	Text string
	// Mode selects expert or chat answering; empty defaults to expert.
	Mode search.Mode
	// ConversationContext carries prior chat turns for follow-up questions.
	ConversationContext string
}

// Response is the assembled answer: post-processed text plus the display
// sources its citations refer to.
type Response struct {
	Answer  string                 `json:"answer"`
	Sources []source.DisplaySource `json:"sources"`
	Arabic  bool                   `json:"arabic"`
	Intent  *intent.Intent         `json:"intent,omitempty"`
}

// App wires the pipeline: language detection, intent extraction, query
// building, search, post-processing, and source enrichment.
type App struct {
	cfg      Config
	sink     obs.Sink
	extract  *intent.Extractor
	provider search.Provider
	post     *answer.PostProcessor
	enrich   *source.Enricher
}

// New builds the pipeline from configuration. Search and signing share one
// HTTP client; the sink is injected into every component.
func New(cfg Config, sink obs.Sink) *App {
	if sink == nil {
		sink = obs.Nop{}
	}
	hc := &http.Client{Timeout: 30 * time.Second}

	var client llm.Client
	if cfg.LLMModel != "" {
		tc := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			tc.BaseURL = cfg.LLMBaseURL
		}
		client = &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(tc)}
	}
	intentTimeout := cfg.IntentTimeout
	if intentTimeout == 0 {
		intentTimeout = 3 * time.Second
	}
	signTimeout := cfg.SignTimeout
	if signTimeout == 0 {
		signTimeout = 3 * time.Second
	}

	var signer storage.Signer
	if cfg.SignerURL != "" {
		signer = &storage.HTTPSigner{BaseURL: cfg.SignerURL, APIKey: cfg.SignerKey, HTTPClient: hc}
	}

	return &App{
		cfg:  cfg,
		sink: sink,
		extract: &intent.Extractor{
			Client:  client,
			Model:   cfg.LLMModel,
			Sink:    sink,
			Timeout: intentTimeout,
		},
		provider: &search.Discovery{
			BaseURL:    cfg.SearchURL,
			APIKey:     cfg.SearchKey,
			HTTPClient: hc,
			Sink:       sink,
		},
		post: &answer.PostProcessor{Sink: sink},
		enrich: &source.Enricher{
			Signer:      signer,
			Sink:        sink,
			SignExpiry:  cfg.SignExpiry,
			SignTimeout: signTimeout,
		},
	}
}

// Ask runs one question through the pipeline. Intent extraction and signing
// are best-effort; only a search failure is returned as an error, already
// wrapped in search.ErrService.
func (a *App) Ask(ctx context.Context, q Question) (*Response, error) {
	requestID := uuid.NewString()
	arabic := lang.IsArabic(q.Text)
	mode := q.Mode
	if mode == "" {
		mode = search.ModeExpert
	}

	in := a.extract.Extract(ctx, q.Text, arabic)
	sq := query.Build(q.Text, in, arabic)
	a.sink.Log("search_query", map[string]any{
		"request_id": requestID,
		"query":      sq,
		"arabic":     arabic,
		"mode":       string(mode),
		"has_intent": in != nil,
	})

	resp, err := a.provider.Search(ctx, search.Request{
		Query:               sq,
		Mode:                mode,
		Arabic:              arabic,
		ConversationContext: q.ConversationContext,
	})
	if err != nil {
		a.sink.Log("search_failed", map[string]any{"request_id": requestID, "error": err.Error()})
		return nil, err
	}

	ans := a.post.Process(resp.Summary, resp.Results, arabic)
	sources := []source.DisplaySource{}
	if !ans.HideSources && len(ans.Candidates) > 0 {
		sources = a.enrich.Enrich(ctx, ans.Candidates, resp.Results, arabic)
	}
	a.sink.Log("answer_ready", map[string]any{
		"request_id":     requestID,
		"hidden_sources": ans.HideSources,
		"source_count":   len(sources),
	})
	return &Response{Answer: ans.Text, Sources: sources, Arabic: arabic, Intent: in}, nil
}
