package scrape

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/shojha24/u-c-lotta-adipose/app/metrics"
)

// HTTPFetcher fetches pages over HTTP with a bounded timeout and a small
// retry budget, so one slow upstream page cannot stall a whole run.
type HTTPFetcher struct {
	client *resty.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with the given per-request timeout and
// retry count.
func NewHTTPFetcher(timeout time.Duration, retries int, userAgent string) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("User-Agent", userAgent)

	return &HTTPFetcher{client: client}
}

// FetchDocument downloads url and parses the response body as HTML.
func (f *HTTPFetcher) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		metrics.PagesFetched.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if res.StatusCode() != 200 {
		metrics.PagesFetched.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		metrics.PagesFetched.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	metrics.PagesFetched.WithLabelValues("ok").Inc()
	return doc, nil
}
