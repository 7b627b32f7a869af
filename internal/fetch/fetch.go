// Package fetch retrieves raw documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"github.com/pfrederiksen/statscrape/internal/logger"
)

// Error reports a failed fetch. StatusCode is zero when no response arrived.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configures a Fetcher
type Options struct {
	Timeout          time.Duration
	Headers          map[string]string
	BrowserTransport bool
}

// Fetcher issues single GET requests with a fixed header set.
// It never retries.
type Fetcher struct {
	client *resty.Client
}

// New creates a Fetcher
func New(opts Options) *Fetcher {
	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeaders(opts.Headers)
	client.SetRetryCount(0)

	if opts.BrowserTransport {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &Fetcher{client: client}
}

// Get fetches url with optional query parameters and returns the body.
// Any non-2xx status is an error.
func (f *Fetcher) Get(ctx context.Context, url string, query map[string]string) ([]byte, error) {
	start := time.Now()
	logger.IncrCounter("fetch.requests")

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)

	logger.RecordTiming("fetch.duration", time.Since(start))

	if err != nil {
		logger.IncrCounter("fetch.errors")
		return nil, &Error{URL: url, Err: err}
	}

	status := resp.StatusCode()
	logger.Debug("fetched document", logger.Fields{
		"url":    url,
		"status": status,
		"bytes":  len(resp.Body()),
	})

	if status < 200 || status > 299 {
		logger.IncrCounter("fetch.errors")
		return nil, &Error{URL: url, StatusCode: status}
	}

	return resp.Body(), nil
}
