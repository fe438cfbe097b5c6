package answer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/daleel-dz/daleel/internal/obs"
	"github.com/daleel-dz/daleel/internal/search"
)

const (
	// Answers shorter than this are treated as hallucinated pleasantries.
	minAnswerRunes = 40
	// Short refusals below this length are replaced by the canonical fallback.
	shortRefusalRunes = 100
	// Candidates whose cleaned snippet is not longer than this are dropped.
	minSnippetRunes = 10
	// Hard cap on retained candidates, hence on display sources.
	maxCandidates = 10
	// The top-ranked results considered even when uncited.
	guaranteedTop = 3
)

// Candidate is a retained source: its original 1-based rank and the cleaned
// snippet text backing it. The dense display index is the candidate's 1-based
// position in Answer.Candidates.
type Candidate struct {
	Index   int
	Snippet string
}

// Answer is the post-processed result: the rewritten text, the suppression
// decision, and the retained candidates in ascending original-rank order.
type Answer struct {
	Text        string
	HideSources bool
	Candidates  []Candidate
}

// PostProcessor applies the suppression heuristics, citation extraction, and
// dense remapping to a raw summarized answer.
type PostProcessor struct {
	Refusals []RefusalPhrase // nil uses DefaultRefusals
	Sink     obs.Sink
}

// Process runs the three sequential decisions over the summary and the ranked
// results. Guarantees: at most 10 candidates; dense indices are exactly 1..K
// in ascending original order; every citation marker left in Text maps to a
// candidate; when sources are hidden, Candidates is empty and the citation
// brackets are stripped from Text.
func (p *PostProcessor) Process(sum search.Summary, results []search.Result, arabic bool) Answer {
	table := p.Refusals
	if table == nil {
		table = DefaultRefusals
	}
	text := strings.TrimSpace(sum.Text)
	fallback := Fallback(arabic)

	// Step A: suppression decision.
	hide := false
	reason := ""
	switch {
	case len(sum.SkipReasons) > 0:
		hide = true
		reason = "summary_skipped"
		if text == "" {
			text = fallback
		}
	case text == "":
		hide = true
		reason = "empty_summary"
		text = fallback
	case isRefusal(text, arabic, table):
		hide = true
		reason = "refusal_phrase"
		if text != fallback && utf8.RuneCountInString(text) < shortRefusalRunes {
			text = fallback
		}
	case utf8.RuneCountInString(text) < minAnswerRunes:
		hide = true
		reason = "short_answer"
	}
	if hide {
		p.log("sources_suppressed", map[string]any{"reason": reason, "arabic": arabic})
		return Answer{Text: StripCitations(text), HideSources: true}
	}
	if len(results) == 0 {
		return Answer{Text: RewriteCitations(text, nil)}
	}

	// Step B: candidate selection. Cited indices plus the top ranks, clamped
	// to the result range, ascending.
	wanted := map[int]struct{}{}
	for _, n := range ParseCitations(text) {
		wanted[n] = struct{}{}
	}
	for n := 1; n <= guaranteedTop; n++ {
		wanted[n] = struct{}{}
	}
	cands := make([]Candidate, 0, maxCandidates)
	for n := 1; n <= len(results); n++ {
		if _, ok := wanted[n]; !ok {
			continue
		}
		snip := snippetFor(results[n-1])
		if utf8.RuneCountInString(snip) <= minSnippetRunes {
			continue
		}
		cands = append(cands, Candidate{Index: n, Snippet: snip})
		if len(cands) == maxCandidates {
			break
		}
	}

	// Step C: dense remapping and bracket rewrite.
	mapping := make(map[int]int, len(cands))
	for i, c := range cands {
		mapping[c.Index] = i + 1
	}
	return Answer{Text: RewriteCitations(text, mapping), Candidates: cands}
}

// snippetFor extracts the display text for a result, preferring the first
// extractive segment over the first plain snippet, HTML-stripped and trimmed.
func snippetFor(r search.Result) string {
	raw := ""
	if len(r.Segments) > 0 {
		raw = r.Segments[0].Content
	} else if len(r.Snippets) > 0 {
		raw = r.Snippets[0]
	}
	return stripHTML(raw)
}

// stripHTML drops markup and returns the concatenated text content. Snippets
// come back with <b> highlighting and entity escapes.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

func (p *PostProcessor) log(event string, payload map[string]any) {
	if p.Sink != nil {
		p.Sink.Log(event, payload)
	}
}
