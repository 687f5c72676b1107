package imgvault

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchOpts configures an image fetch.
type FetchOpts struct {
	MaxBytes  int64         // max response body size (default: 32MB)
	Timeout   time.Duration // per-request timeout (default: 30s)
	UserAgent string        // default: "ImgVault/1.0"
}

const (
	defaultFetchMaxBytes = 32 << 20
	defaultFetchTimeout  = 30 * time.Second
	defaultUserAgent     = "ImgVault/1.0"
)

// FetchResult holds fetched image data.
type FetchResult struct {
	Data     []byte
	MIMEType string
}

// Fetch downloads image bytes for server-side fingerprinting when the
// capture supplies a URL instead of a file. Returns nil (not an error) on
// recoverable failures: non-200, non-image content type, oversized or
// unreadable bodies. client may be nil, meaning http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, imageURL string, opts FetchOpts) *FetchResult {
	if client == nil {
		client = http.DefaultClient
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultFetchMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	ct := resp.Header.Get("Content-Type")
	// Strip MIME parameters: "image/jpeg; charset=utf-8" → "image/jpeg"
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	if !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "video/") {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes))
	if err != nil || len(data) == 0 {
		return nil
	}

	return &FetchResult{Data: data, MIMEType: ct}
}
