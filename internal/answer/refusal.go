package answer

import "strings"

// Fallback messages returned verbatim when no usable summary exists.
const (
	FallbackFR = "Désolé, cette information n'est pas disponible dans la base documentaire juridique."
	FallbackAR = "عذرا، هذه المعلومة غير متوفرة في قاعدة الوثائق القانونية."
)

// RefusalPhrase marks an answer as a refusal when present as a substring.
// Unconditional phrases suppress sources for every query language.
// Conditional ones are ignored for Arabic queries: the summarizer is more
// conservative in Arabic, and cautious Arabic answers should still show their
// sources unless the answer is the exact fallback message.
type RefusalPhrase struct {
	Phrase        string
	Lang          string // "fr" or "ar"
	Unconditional bool
}

// DefaultRefusals is the built-in multilingual refusal table.
var DefaultRefusals = []RefusalPhrase{
	{Phrase: "pas disponible", Lang: "fr"},
	{Phrase: "documents fournis ne contiennent pas", Lang: "fr"},
	{Phrase: "ne contiennent pas d'information", Lang: "fr"},
	{Phrase: "je ne peux pas répondre", Lang: "fr"},
	{Phrase: "لا توجد معلومات", Lang: "ar"},
	{Phrase: "لا تتضمن الوثائق", Lang: "ar"},
	{Phrase: "غير متوفرة", Lang: "ar"},
}

// Fallback returns the canonical not-available message for the query language.
func Fallback(arabic bool) string {
	if arabic {
		return FallbackAR
	}
	return FallbackFR
}

// isRefusal reports whether text should be treated as a refusal for a query
// in the given language. The exact fallback messages always count.
func isRefusal(text string, arabic bool, table []RefusalPhrase) bool {
	if text == FallbackFR || text == FallbackAR {
		return true
	}
	lower := strings.ToLower(text)
	for _, p := range table {
		if arabic && !p.Unconditional {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p.Phrase)) {
			return true
		}
	}
	return false
}
