package search

import (
	"context"
	"errors"
)

// Mode selects the answer style requested from the summarizer.
type Mode string

const (
	// ModeExpert structures the answer under the three mandatory headings.
	ModeExpert Mode = "expert"
	// ModeChat answers directly without imposed structure.
	ModeChat Mode = "chat"
)

// ErrService marks a fatal failure of the document search backend. Callers
// translate it into a generic user-facing message; the technical detail goes
// to the sink only.
var ErrService = errors.New("Erreur Google AI")

// Segment is a verbatim excerpt of a source document with page metadata,
// higher-confidence evidence than a generic snippet.
type Segment struct {
	Content string
	Page    int
	Score   float64
}

// Result is one ranked hit from the document search service. Rank is the
// 1-based position as returned by the service and is what answer citations
// refer to before remapping.
type Result struct {
	Rank     int
	Title    string
	Link     string
	URI      string // storage URI when the document lives in a private bucket
	Snippets []string
	Segments []Segment
}

// Summary carries the generated answer text or the reasons generation was
// skipped.
type Summary struct {
	Text        string
	SkipReasons []string
}

// Response bundles the ranked results with the generated summary.
type Response struct {
	Results []Result
	Summary Summary
}

// Request describes one search-with-summary call.
type Request struct {
	Query               string
	Mode                Mode
	Arabic              bool
	ConversationContext string
}

// Provider issues the document search with summarization.
type Provider interface {
	Search(ctx context.Context, req Request) (*Response, error)
	Name() string
}
