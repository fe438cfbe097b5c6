package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Signer issues short-lived read URLs for private stored objects.
type Signer interface {
	SignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error)
}

// ParseURI splits a gs://bucket/path storage URI into bucket and object path.
func ParseURI(uri string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(uri, "gs://")
	if !found {
		return "", "", false
	}
	bucket, object, found = strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

// HTTPSigner calls the storage signing service endpoint.
type HTTPSigner struct {
	BaseURL    string
	APIKey     string // optional bearer token
	HTTPClient *http.Client
}

type signRequest struct {
	Bucket        string `json:"bucket"`
	Object        string `json:"object"`
	ExpirySeconds int    `json:"expirySeconds"`
}

type signResponse struct {
	URL string `json:"url"`
}

func (s *HTTPSigner) SignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("missing signer base url")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	payload, err := json.Marshal(signRequest{Bucket: bucket, Object: object, ExpirySeconds: int(expiry.Seconds())})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("signer status: %d", resp.StatusCode)
	}
	var sr signResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", err
	}
	if strings.TrimSpace(sr.URL) == "" {
		return "", fmt.Errorf("signer returned empty url")
	}
	return sr.URL, nil
}
