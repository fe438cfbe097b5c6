package query

import (
	"strings"
	"testing"

	"github.com/daleel-dz/daleel/internal/intent"
)

func TestBuildStripsQuestionMarksAndAppendsCountry(t *testing.T) {
	got := Build("Quelles sont les conditions du divorce ?", nil, false)
	want := "Quelles sont les conditions du divorce Algérie"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildAppendsIntentAnchor(t *testing.T) {
	in := &intent.Intent{TargetCode: "Code de la famille", Keywords: "divorce khol'"}
	got := Build("conditions du divorce", in, false)
	want := "conditions du divorce (Code de la famille divorce khol') Algérie"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildSkipsEmptyAnchor(t *testing.T) {
	in := &intent.Intent{Category: "autre"}
	got := Build("conditions du divorce", in, false)
	if strings.Contains(got, "(") {
		t.Fatalf("empty anchor must not add parentheses: %q", got)
	}
}

func TestBuildCountryCheckIsCaseInsensitive(t *testing.T) {
	got := Build("droit du travail en ALGÉRIE", nil, false)
	if strings.Count(strings.ToLower(got), "algérie") != 1 {
		t.Fatalf("country keyword duplicated: %q", got)
	}
}

func TestBuildArabic(t *testing.T) {
	got := Build("ما هي شروط الطلاق؟", nil, true)
	if strings.Contains(got, "؟") {
		t.Fatalf("arabic question mark survived: %q", got)
	}
	if !strings.HasSuffix(got, "الجزائر") {
		t.Fatalf("expected arabic country suffix: %q", got)
	}
	// Already-present Arabic keyword is not duplicated.
	again := Build(got, nil, true)
	if strings.Count(again, "الجزائر") != 1 {
		t.Fatalf("arabic country keyword duplicated: %q", again)
	}
}

func TestBuildCollapsesWhitespace(t *testing.T) {
	got := Build("  droit   du\ttravail  ", nil, false)
	want := "droit du travail Algérie"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
