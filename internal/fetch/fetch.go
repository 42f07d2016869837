// Package fetch downloads a web page and reduces it to plain body text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ErrUnexpectedStatus is wrapped when the server answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "readable/1.0 (+https://github.com/tsawler/readable)"
	maxBodyBytes     = 10 << 20
)

// Fetcher retrieves pages over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// New creates a Fetcher. A nil client gets a default one with a 30s timeout;
// a nil logger discards output.
func New(client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, userAgent: defaultUserAgent, logger: logger}
}

// Fetch downloads pageURL and returns its body text with scripts and styles
// removed, line breaks dropped and surrounding space trimmed.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("get %s: %w: %d", pageURL, ErrUnexpectedStatus, resp.StatusCode)
	}

	text, err := ExtractText(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pageURL, err)
	}

	f.logger.Info("page fetched",
		zap.String("url", pageURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("text_bytes", len(text)),
		zap.Duration("duration", time.Since(start)))

	return text, nil
}

// Page returns a text source function for pageURL, suitable for
// readable.TextFunc.
func (f *Fetcher) Page(pageURL string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return f.Fetch(ctx, pageURL)
	}
}

// ExtractText parses HTML from r and returns the text content of <body>.
// Script, style, noscript and template elements are dropped first.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	text := doc.Find("body").Text()
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", "")
	return strings.TrimSpace(text), nil
}
