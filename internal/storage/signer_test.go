package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseURI(t *testing.T) {
	cases := []struct {
		in             string
		bucket, object string
		ok             bool
	}{
		{"gs://legal-docs/codes/code_famille.pdf", "legal-docs", "codes/code_famille.pdf", true},
		{"gs://bucket-only", "", "", false},
		{"https://example.dz/doc.pdf", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		bucket, object, ok := ParseURI(tc.in)
		if bucket != tc.bucket || object != tc.object || ok != tc.ok {
			t.Fatalf("ParseURI(%q) = (%q, %q, %v), want (%q, %q, %v)", tc.in, bucket, object, ok, tc.bucket, tc.object, tc.ok)
		}
	}
}

func TestHTTPSignerSignedURL(t *testing.T) {
	var got signRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://signed.example/doc.pdf?sig=abc"})
	}))
	defer srv.Close()

	s := &HTTPSigner{BaseURL: srv.URL, HTTPClient: srv.Client()}
	url, err := s.SignedURL(context.Background(), "legal-docs", "doc.pdf", time.Hour)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if url != "https://signed.example/doc.pdf?sig=abc" {
		t.Fatalf("unexpected url: %q", url)
	}
	if got.Bucket != "legal-docs" || got.Object != "doc.pdf" || got.ExpirySeconds != 3600 {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestHTTPSignerStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	s := &HTTPSigner{BaseURL: srv.URL, HTTPClient: srv.Client()}
	if _, err := s.SignedURL(context.Background(), "b", "o", time.Hour); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}
