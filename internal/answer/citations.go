package answer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// bracketRe matches one citation group: [3] or [1, 4] or [2 5].
var bracketRe = regexp.MustCompile(`\[([\d,\s]+)\]`)

// stripRe additionally eats the whitespace before a group so that removal
// does not leave "texte ." artifacts.
var stripRe = regexp.MustCompile(`\s*\[([\d,\s]+)\]`)

func splitIndices(inner string) []int {
	fields := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ParseCitations returns the distinct 1-based source indices referenced by
// bracket groups anywhere in text, ascending.
func ParseCitations(text string) []int {
	seen := map[int]struct{}{}
	for _, m := range bracketRe.FindAllStringSubmatch(text, -1) {
		for _, n := range splitIndices(m[1]) {
			seen[n] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// RewriteCitations maps every index inside bracket groups through mapping,
// drops indices without a mapping, and removes a group entirely when none of
// its indices survive. Groups are reassembled as "[d1, d2]".
func RewriteCitations(text string, mapping map[int]int) string {
	return bracketRe.ReplaceAllStringFunc(text, func(group string) string {
		inner := group[1 : len(group)-1]
		kept := make([]string, 0, 4)
		for _, n := range splitIndices(inner) {
			if d, ok := mapping[n]; ok {
				kept = append(kept, strconv.Itoa(d))
			}
		}
		if len(kept) == 0 {
			return ""
		}
		return "[" + strings.Join(kept, ", ") + "]"
	})
}

// StripCitations removes every citation group from text, used when sources
// are suppressed and the markers would dangle.
func StripCitations(text string) string {
	return strings.TrimSpace(stripRe.ReplaceAllString(text, ""))
}
