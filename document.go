package readable

import (
	"context"
	"os"
)

// A TextSource supplies the target text: already stripped of markup, UTF-8.
// How the text was obtained is up to the implementation.
type TextSource interface {
	AcquireText(ctx context.Context) (string, error)
}

// TextFunc adapts an ordinary function to a TextSource.
//
// For example,
//
//	src := readable.TextFunc(func(ctx context.Context) (string, error) {
//		return fetcher.Fetch(ctx, url)
//	})
type TextFunc func(ctx context.Context) (string, error)

// AcquireText calls f(ctx).
func (f TextFunc) AcquireText(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticText is a TextSource that always returns itself.
type StaticText string

// AcquireText returns the text.
func (s StaticText) AcquireText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(s), nil
}

// FileText reads the target text from a file.
type FileText string

// AcquireText reads the whole file.
func (f FileText) AcquireText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
