package intent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/daleel-dz/daleel/internal/llm"
	"github.com/daleel-dz/daleel/internal/obs"
)

// Intent is the structured legal-domain anchor extracted from a question:
// the governing code or ordinance, supporting keywords, and the request
// category. It enriches the search query but is never required for it.
type Intent struct {
	TargetCode string `json:"targetCode"`
	Keywords   string `json:"keywords"`
	Category   string `json:"intent"`
}

// Extractor asks a generative model to identify the legal text governing a
// question, under a strict JSON contract. Extraction is best-effort: every
// failure (missing client, timeout, malformed JSON) degrades to nil and is
// reported to the sink only, never to the caller.
type Extractor struct {
	Client llm.Client
	Model  string
	Sink   obs.Sink
	// Timeout bounds the model call; zero relies on the caller's context.
	Timeout time.Duration
}

const systemFR = `Tu es un juriste algérien. Identifie le code, la loi ou l'ordonnance qui régit la question posée. Réponds STRICTEMENT en JSON, sans narration: {"targetCode": string, "keywords": string, "intent": string}. targetCode est le nom du texte (ex: "Code de la famille"), keywords 2 à 4 termes juridiques, intent la catégorie de la demande.`

const systemAR = `أنت خبير قانوني جزائري. حدد القانون أو الأمر الذي يحكم السؤال المطروح. أجب حصريا بصيغة JSON دون أي سرد: {"targetCode": string, "keywords": string, "intent": string}.`

// Extract returns the anchor for query, or nil when extraction fails or
// produces an empty anchor.
func (e *Extractor) Extract(ctx context.Context, query string, arabic bool) *Intent {
	if e.Client == nil || strings.TrimSpace(e.Model) == "" {
		return nil
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	system := systemFR
	if arabic {
		system = systemAR
	}
	resp, err := e.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Temperature: 0.1,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		e.log("intent_call_failed", map[string]any{"error": err.Error()})
		return nil
	}
	if len(resp.Choices) == 0 {
		e.log("intent_call_failed", map[string]any{"error": "no choices"})
		return nil
	}
	raw := stripCodeFence(strings.TrimSpace(resp.Choices[0].Message.Content))
	var in Intent
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		e.log("intent_parse_failed", map[string]any{"error": err.Error(), "raw_len": len(raw)})
		return nil
	}
	if strings.TrimSpace(in.TargetCode) == "" && strings.TrimSpace(in.Keywords) == "" {
		return nil
	}
	return &in
}

func (e *Extractor) log(event string, payload map[string]any) {
	if e.Sink != nil {
		e.Sink.Log(event, payload)
	}
}

// stripCodeFence unwraps a markdown ```json fence when the model ignores the
// JSON-only instruction.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
