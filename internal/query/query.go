package query

import (
	"strings"

	"github.com/daleel-dz/daleel/internal/intent"
)

const (
	countryFR = "Algérie"
	countryAR = "الجزائر"
)

// Build assembles the document-search query from the user's question, the
// optional intent anchor, and a country keyword that keeps results scoped to
// Algerian law. Pure and deterministic.
func Build(userQuery string, in *intent.Intent, arabic bool) string {
	// Question marks (Latin and Arabic) confuse the retrieval scoring; drop
	// them and collapse runs of whitespace.
	q := strings.NewReplacer("?", " ", "؟", " ").Replace(userQuery)
	q = strings.Join(strings.Fields(q), " ")

	if in != nil {
		anchor := strings.TrimSpace(strings.TrimSpace(in.TargetCode) + " " + strings.TrimSpace(in.Keywords))
		if anchor != "" {
			q += " (" + anchor + ")"
		}
	}

	if arabic {
		if !strings.Contains(q, countryAR) {
			q += " " + countryAR
		}
		return q
	}
	if !strings.Contains(strings.ToLower(q), strings.ToLower(countryFR)) {
		q += " " + countryFR
	}
	return q
}
