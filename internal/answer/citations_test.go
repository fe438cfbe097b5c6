package answer

import (
	"reflect"
	"testing"
)

func TestParseCitations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []int
	}{
		{"none", "aucune citation ici", nil},
		{"single", "régi par l'article 48 [1].", []int{1}},
		{"group", "voir [1, 3] et [2]", []int{1, 2, 3}},
		{"space separated", "voir [2 5]", []int{2, 5}},
		{"duplicates", "voir [1] puis [1, 1]", []int{1}},
		{"ignores non numeric brackets", "tableau [a] et [1]", []int{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCitations(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseCitations(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRewriteCitationsRemapsAndDrops(t *testing.T) {
	mapping := map[int]int{1: 1, 3: 2}
	got := RewriteCitations("l'article 48 [1, 3] et la procédure [2].", mapping)
	want := "l'article 48 [1, 2] et la procédure ."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRewriteCitationsRemovesEmptyGroupEntirely(t *testing.T) {
	got := RewriteCitations("voir [7]", map[int]int{1: 1})
	if got != "voir " {
		t.Fatalf("unmapped group must vanish, got %q", got)
	}
	if ContainsBracketGroup(got) {
		t.Fatalf("no bracket group may remain: %q", got)
	}
}

func TestRewriteCitationsPartialGroup(t *testing.T) {
	got := RewriteCitations("voir [2, 7]", map[int]int{2: 1})
	if got != "voir [1]" {
		t.Fatalf("got %q, want %q", got, "voir [1]")
	}
}

func TestStripCitations(t *testing.T) {
	got := StripCitations("Le divorce est régi par l'article 48 [1, 3].")
	want := "Le divorce est régi par l'article 48."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// ContainsBracketGroup is a test helper reporting whether text still holds a
// numeric citation group.
func ContainsBracketGroup(text string) bool {
	return bracketRe.MatchString(text)
}
