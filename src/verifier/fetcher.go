// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/alexa-webhook-verifier/src/internal/helper/gc"
)

// Fetcher retrieves the raw bytes of a certificate bundle from a URL.
// Implementations must be safe for concurrent use; tests substitute stubs
// to keep verification fully offline.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls the function.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

// HTTPFetcher downloads certificate bundles over HTTPS.
//
// It holds the HTTP client configuration for bundle retrieval: request
// timeout and the User-Agent advertised to the bundle host.
type HTTPFetcher struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPFetcher creates an HTTP fetcher with a default timeout of 10 seconds
// and the provided application version.
func NewHTTPFetcher(version string) *HTTPFetcher {
	return &HTTPFetcher{
		Timeout: 10 * time.Second,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (f *HTTPFetcher) GetUserAgent() string {
	if f.UserAgent != "" {
		return f.UserAgent
	}
	return fmt.Sprintf("Alexa-Webhook-Verifier/%s (+https://github.com/H0llyW00dzZ/alexa-webhook-verifier)", f.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// It creates or reuses an http.Client, ensuring it uses the configured timeout.
//
// Thread Safety: Safe for concurrent use.
func (f *HTTPFetcher) Client() *http.Client {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.client == nil {
		f.client = &http.Client{Timeout: f.Timeout}
		return f.client
	}

	if f.client.Timeout != f.Timeout {
		f.client.Timeout = f.Timeout
	}

	return f.client
}

// Fetch downloads the certificate bundle at url.
//
// Any transport failure or non-2xx status is an error; the pipeline maps
// either to a hard rejection of the request being verified. The response
// body is drained through a pooled buffer and copied out, since the buffer
// storage is reused across calls.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.GetUserAgent())

	resp, err := f.Client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s from bundle host", resp.Status)
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.Bytes()...), nil
}
