package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daleel-dz/daleel/internal/answer"
	"github.com/daleel-dz/daleel/internal/obs"
	"github.com/daleel-dz/daleel/internal/search"
	"github.com/daleel-dz/daleel/internal/storage"
)

// DisplaySource is the final citable source object returned to the caller.
// ID is the dense display index 1..K matching the answer's rewritten
// citations.
type DisplaySource struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	ShortLabel     string `json:"shortLabel"`
	ContentPreview string `json:"contentPreview"`
	Link           string `json:"link"`
	Page           *int   `json:"page"`
	ArticleNum     string `json:"articleNum,omitempty"`
	SearchArt      string `json:"searchArt,omitempty"`
	GSURI          string `json:"gsUri,omitempty"`
}

const (
	previewRunes   = 250
	searchCtxRunes = 60
	// Fallback link when signing fails; the client renders it as unavailable.
	placeholderLink = "#"
)

// Enricher turns retained candidates into DisplaySources: resolved titles,
// article labels, content previews, and signed deep links. Signing runs
// concurrently across candidates and individually degrades to the
// placeholder link.
type Enricher struct {
	Signer storage.Signer
	Sink   obs.Sink
	// SignExpiry bounds the signed URL lifetime; zero means one hour.
	SignExpiry time.Duration
	// SignTimeout bounds each signing call; zero relies on the caller's context.
	SignTimeout time.Duration
}

// Enrich builds one DisplaySource per candidate, in dense-index order.
// Candidates must reference valid ranks in results.
func (e *Enricher) Enrich(ctx context.Context, cands []answer.Candidate, results []search.Result, arabic bool) []DisplaySource {
	out := make([]DisplaySource, len(cands))
	var wg sync.WaitGroup
	for i, c := range cands {
		wg.Add(1)
		go func(i int, c answer.Candidate) {
			defer wg.Done()
			out[i] = e.enrichOne(ctx, i+1, c, results[c.Index-1], arabic)
		}(i, c)
	}
	wg.Wait()
	return out
}

func (e *Enricher) enrichOne(ctx context.Context, id int, c answer.Candidate, r search.Result, arabic bool) DisplaySource {
	title := resolveTitle(r)
	articleNum, searchCtx := findArticle(c.Snippet)

	ds := DisplaySource{
		ID:             id,
		Title:          title,
		ShortLabel:     shortLabel(title, articleNum, arabic),
		ContentPreview: truncateRunes(c.Snippet, previewRunes),
		ArticleNum:     articleNum,
		GSURI:          r.URI,
	}
	if len(r.Segments) > 0 && r.Segments[0].Page > 0 {
		page := r.Segments[0].Page
		ds.Page = &page
	}
	ds.Link = e.resolveLink(ctx, r)
	if ds.Link != placeholderLink {
		ds.Link += fragment(ds.Page, searchCtx)
		if searchCtx != "" {
			ds.SearchArt = searchCtx
		}
	}
	return ds
}

// resolveLink signs storage URIs and falls back to the placeholder on any
// failure; plain links pass through.
func (e *Enricher) resolveLink(ctx context.Context, r search.Result) string {
	if r.URI == "" {
		if r.Link != "" {
			return r.Link
		}
		return placeholderLink
	}
	bucket, object, ok := storage.ParseURI(r.URI)
	if !ok || e.Signer == nil {
		return placeholderLink
	}
	if e.SignTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.SignTimeout)
		defer cancel()
	}
	expiry := e.SignExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	signed, err := e.Signer.SignedURL(ctx, bucket, object, expiry)
	if err != nil {
		e.log("sign_url_failed", map[string]any{"uri": r.URI, "error": err.Error()})
		return placeholderLink
	}
	return signed
}

// fragment builds the client navigation fragment: #page=<n> and/or
// #search="<urlencoded context>".
func fragment(page *int, searchCtx string) string {
	var b strings.Builder
	if page != nil {
		fmt.Fprintf(&b, "#page=%d", *page)
	}
	if searchCtx != "" {
		fmt.Fprintf(&b, "#search=%q", url.QueryEscape(searchCtx))
	}
	return b.String()
}

var (
	joRe            = regexp.MustCompile(`(?i)journal\s+officiel`)
	urlishTitleRe   = regexp.MustCompile(`^(?:https?://|gs://|www\.)`)
	latinArticleRe  = regexp.MustCompile(`(?i)\bart(?:icle)?\.?\s*n?°?\s*(\d+|1er)`)
	arabicArticleRe = regexp.MustCompile(`(?:المادة|مادة)\s*(\d+)`)

	frTitleCaser = cases.Title(language.French)
)

// resolveTitle prefers the structured title, falling back to the filename of
// the link or storage URI; bare-URL titles also fall back to the filename.
// Cleanup strips the .pdf suffix, turns separators into spaces, and
// abbreviates "journal officiel" to "JO".
func resolveTitle(r search.Result) string {
	ref := r.Link
	if ref == "" {
		ref = r.URI
	}
	t := strings.TrimSpace(r.Title)
	fromFile := false
	if t == "" || urlishTitleRe.MatchString(t) {
		t = path.Base(ref)
		fromFile = true
	}
	t = strings.TrimSuffix(strings.TrimSuffix(t, ".pdf"), ".PDF")
	t = strings.NewReplacer("_", " ", "-", " ").Replace(t)
	t = strings.Join(strings.Fields(t), " ")
	if fromFile && t != "" {
		t = frTitleCaser.String(t)
	}
	t = joRe.ReplaceAllString(t, "JO")
	if t == "" {
		t = "Document"
	}
	return t
}

// findArticle extracts the first article number from the snippet, Latin
// citations first, then Arabic. The second return is a short context window
// around the match used for the in-document search fragment.
func findArticle(snippet string) (num, ctx string) {
	if loc := latinArticleRe.FindStringSubmatchIndex(snippet); loc != nil {
		return snippet[loc[2]:loc[3]], contextWindow(snippet, loc[0], loc[1])
	}
	if loc := arabicArticleRe.FindStringSubmatchIndex(snippet); loc != nil {
		return snippet[loc[2]:loc[3]], contextWindow(snippet, loc[0], loc[1])
	}
	return "", ""
}

// contextWindow expands [start,end) to nearby rune boundaries so the search
// fragment carries enough surrounding text to be unique in the document.
func contextWindow(s string, start, end int) string {
	for pad := 0; pad < searchCtxRunes && end < len(s); pad++ {
		_, w := utf8.DecodeRuneInString(s[end:])
		end += w
	}
	return strings.TrimSpace(s[start:end])
}

func shortLabel(title, articleNum string, arabic bool) string {
	if articleNum == "" {
		return title
	}
	if arabic {
		return "المادة " + articleNum + " - " + title
	}
	return "Art. " + articleNum + " - " + title
}

// truncateRunes caps s at limit runes, ellipsis included.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

func (e *Enricher) log(event string, payload map[string]any) {
	if e.Sink != nil {
		e.Sink.Log(event, payload)
	}
}
