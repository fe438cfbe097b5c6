package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/daleel-dz/daleel/internal/obs"
)

// Discovery implements Provider against a Discovery-style document search
// endpoint that returns ranked results plus an AI-generated summary with
// bracket-numeric citations.
type Discovery struct {
	BaseURL    string
	APIKey     string // optional bearer token
	HTTPClient *http.Client
	Sink       obs.Sink
}

func (d *Discovery) Name() string { return "discovery" }

const (
	pageSize           = 20
	extractiveSegments = 5
	summaryResultCount = 5
)

// Expert answers are structured under three mandatory headings; chat answers
// respond directly. Both variants instruct the summarizer to prioritize
// specific statutes over constitutional text, never cite articles absent from
// the supplied documents, and keep substantive conditions distinct from
// administrative procedure without hiding found conditions.
const preambleExpertFR = `Tu es un assistant juridique algérien expert. Priorise les textes spécifiques (codes, lois, ordonnances) sur les dispositions constitutionnelles. Structure obligatoirement ta réponse sous trois titres: **Principe juridique**, **Conditions et modalités**, **Références légales**. Ne cite JAMAIS un article absent des documents fournis. Distingue les conditions de fond de la procédure administrative, sans masquer les conditions trouvées dans les documents. Cite tes sources avec des indices entre crochets comme [1].`

const preambleChatFR = `Tu es un assistant juridique algérien. Réponds directement et simplement, sans titres ni structure imposée. Priorise les textes spécifiques (codes, lois, ordonnances) sur les dispositions constitutionnelles. Ne cite JAMAIS un article absent des documents fournis. Distingue les conditions de fond de la procédure administrative, sans masquer les conditions trouvées. Cite tes sources avec des indices entre crochets comme [1].`

const preambleExpertAR = `أنت مساعد قانوني جزائري خبير. أعط الأولوية للنصوص الخاصة (القوانين والأوامر) على الأحكام الدستورية. نظم إجابتك وجوبا تحت ثلاثة عناوين: **المبدأ القانوني**، **الشروط والكيفيات**، **المراجع القانونية**. لا تستشهد أبدا بمادة غير واردة في الوثائق المقدمة. ميز بين الشروط الموضوعية والإجراءات الإدارية دون إخفاء الشروط الواردة في الوثائق. استشهد بمصادرك بأرقام بين معقوفتين مثل [1].`

const preambleChatAR = `أنت مساعد قانوني جزائري. أجب مباشرة وببساطة دون عناوين. أعط الأولوية للنصوص الخاصة (القوانين والأوامر) على الأحكام الدستورية. لا تستشهد أبدا بمادة غير واردة في الوثائق المقدمة. ميز بين الشروط الموضوعية والإجراءات الإدارية دون إخفاء الشروط الواردة. استشهد بمصادرك بأرقام بين معقوفتين مثل [1].`

func preamble(mode Mode, arabic bool) string {
	switch {
	case mode == ModeExpert && arabic:
		return preambleExpertAR
	case mode == ModeExpert:
		return preambleExpertFR
	case arabic:
		return preambleChatAR
	default:
		return preambleChatFR
	}
}

type discoveryRequest struct {
	Query               string              `json:"query"`
	PageSize            int                 `json:"pageSize"`
	QueryExpansionSpec  queryExpansionSpec  `json:"queryExpansionSpec"`
	SpellCorrectionSpec spellCorrectionSpec `json:"spellCorrectionSpec"`
	ContentSearchSpec   contentSearchSpec   `json:"contentSearchSpec"`
}

type queryExpansionSpec struct {
	Condition string `json:"condition"`
}

type spellCorrectionSpec struct {
	Mode string `json:"mode"`
}

type contentSearchSpec struct {
	SnippetSpec           snippetSpec           `json:"snippetSpec"`
	ExtractiveContentSpec extractiveContentSpec `json:"extractiveContentSpec"`
	SummarySpec           summarySpec           `json:"summarySpec"`
}

type snippetSpec struct {
	ReturnSnippet bool `json:"returnSnippet"`
}

type extractiveContentSpec struct {
	MaxExtractiveSegmentCount int `json:"maxExtractiveSegmentCount"`
}

type summarySpec struct {
	SummaryResultCount           int             `json:"summaryResultCount"`
	IncludeCitations             bool            `json:"includeCitations"`
	IgnoreAdversarialQuery       bool            `json:"ignoreAdversarialQuery"`
	IgnoreNonSummarySeekingQuery bool            `json:"ignoreNonSummarySeekingQuery"`
	ModelPromptSpec              modelPromptSpec `json:"modelPromptSpec"`
}

type modelPromptSpec struct {
	Preamble string `json:"preamble"`
}

type discoveryResponse struct {
	Results []struct {
		Document struct {
			DerivedStructData struct {
				Title    string `json:"title"`
				Link     string `json:"link"`
				Snippets []struct {
					Snippet string `json:"snippet"`
				} `json:"snippets"`
				ExtractiveSegments []struct {
					Content        string      `json:"content"`
					PageNumber     string      `json:"pageNumber"`
					RelevanceScore json.Number `json:"relevanceScore"`
				} `json:"extractive_segments"`
			} `json:"derivedStructData"`
		} `json:"document"`
	} `json:"results"`
	Summary struct {
		SummaryText          string   `json:"summaryText"`
		SummarySkippedReasons []string `json:"summarySkippedReasons"`
	} `json:"summary"`
}

// Search posts the query with snippet, extractive-segment, and summary specs
// and maps the payload to Response. Any transport or status failure is fatal
// for the request and wrapped in ErrService; full detail goes to the sink.
func (d *Discovery) Search(ctx context.Context, req Request) (*Response, error) {
	if d.BaseURL == "" {
		return nil, fmt.Errorf("%w: missing search base url", ErrService)
	}
	q := req.Query
	if strings.TrimSpace(req.ConversationContext) != "" {
		q = strings.TrimSpace(req.ConversationContext) + "\n" + q
	}
	body := discoveryRequest{
		Query:               q,
		PageSize:            pageSize,
		QueryExpansionSpec:  queryExpansionSpec{Condition: "AUTO"},
		SpellCorrectionSpec: spellCorrectionSpec{Mode: "AUTO"},
		ContentSearchSpec: contentSearchSpec{
			SnippetSpec:           snippetSpec{ReturnSnippet: true},
			ExtractiveContentSpec: extractiveContentSpec{MaxExtractiveSegmentCount: extractiveSegments},
			SummarySpec: summarySpec{
				SummaryResultCount:           summaryResultCount,
				IncludeCitations:             true,
				IgnoreAdversarialQuery:       true,
				IgnoreNonSummarySeekingQuery: true,
				ModelPromptSpec:              modelPromptSpec{Preamble: preamble(req.Mode, req.Arabic)},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if d.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.APIKey)
	}
	hc := d.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		d.log("search_request_failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		d.log("search_status_error", map[string]any{"status": resp.StatusCode, "body": string(detail)})
		return nil, fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}
	var dr discoveryResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		d.log("search_decode_failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}

	out := &Response{
		Summary: Summary{
			Text:        strings.TrimSpace(dr.Summary.SummaryText),
			SkipReasons: dr.Summary.SummarySkippedReasons,
		},
	}
	for i, r := range dr.Results {
		data := r.Document.DerivedStructData
		res := Result{
			Rank:  i + 1,
			Title: strings.TrimSpace(data.Title),
			Link:  strings.TrimSpace(data.Link),
		}
		if strings.HasPrefix(res.Link, "gs://") {
			res.URI = res.Link
		}
		for _, s := range data.Snippets {
			if strings.TrimSpace(s.Snippet) != "" {
				res.Snippets = append(res.Snippets, s.Snippet)
			}
		}
		for _, seg := range data.ExtractiveSegments {
			page, _ := strconv.Atoi(seg.PageNumber)
			score, _ := seg.RelevanceScore.Float64()
			res.Segments = append(res.Segments, Segment{Content: seg.Content, Page: page, Score: score})
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func (d *Discovery) log(event string, payload map[string]any) {
	if d.Sink != nil {
		d.Sink.Log(event, payload)
	}
}
