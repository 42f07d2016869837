package readable

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoTextSource = errors.New("no text source")

// Default lexicon source names.
const (
	DefaultPositiveSource = "positive.txt"
	DefaultNegativeSource = "negative.txt"
)

// An Option configures a Classifier.
type Option func(*Classifier)

// WithCounterConfig sets how keywords are matched.
func WithCounterConfig(config CounterConfig) Option {
	return func(c *Classifier) {
		c.counter = NewCounter(config)
	}
}

// WithSources sets the positive and negative lexicon source names.
func WithSources(positive, negative string) Option {
	return func(c *Classifier) {
		c.positive = positive
		c.negative = negative
	}
}

// WithAcquireTimeout bounds how long the TextSource may take.
func WithAcquireTimeout(timeout time.Duration) Option {
	return func(c *Classifier) {
		c.acquireTimeout = timeout
	}
}

// WithResultCache saves the target text and both frequency results to cache
// after every run.
func WithResultCache(cache ArtifactCache) Option {
	return func(c *Classifier) {
		c.results = cache
	}
}

// WithLogger sets the classifier's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Classifier scores a target text against a positive and a negative lexicon.
type Classifier struct {
	store          *LexiconStore
	counter        *Counter
	positive       string
	negative       string
	acquireTimeout time.Duration
	results        ArtifactCache
	logger         *zap.Logger
}

// NewClassifier creates a Classifier that loads its lexicons from store.
func NewClassifier(store *LexiconStore, opts ...Option) *Classifier {
	c := &Classifier{
		store:          store,
		counter:        NewCounter(DefaultCounterConfig()),
		positive:       DefaultPositiveSource,
		negative:       DefaultNegativeSource,
		acquireTimeout: 30 * time.Second,
		logger:         zap.NewNop(),
	}
	for _, applyOpt := range opts {
		applyOpt(c)
	}
	return c
}

// Lexicons ensures both lexicon artifacts exist and returns the lexicons.
// The two are prepared concurrently.
func (c *Classifier) Lexicons(ctx context.Context) (Lexicon, Lexicon, error) {
	var positive, negative Lexicon

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		positive, err = c.store.Ensure(gctx, c.positive)
		return err
	})
	g.Go(func() error {
		var err error
		negative, err = c.store.Ensure(gctx, c.negative)
		return err
	})
	if err := g.Wait(); err != nil {
		return Lexicon{}, Lexicon{}, err
	}
	return positive, negative, nil
}

// Classify runs the whole pipeline against the text from src.
//
// Artifact failures come back as *ArtifactError and should abort the
// caller. Acquisition and counting failures come back as *AcquireError and
// *CountError; no decision is made in either case.
func (c *Classifier) Classify(ctx context.Context, src TextSource) (Verdict, error) {
	start := time.Now()

	posLex, negLex, err := c.Lexicons(ctx)
	if err != nil {
		return Verdict{}, err
	}

	text, err := c.acquire(ctx, src)
	if err != nil {
		return Verdict{}, err
	}

	verdict, err := c.Score(ctx, posLex, negLex, text)
	if err != nil {
		return Verdict{}, err
	}

	if c.results != nil {
		counts := map[string]FrequencyResult{
			c.positive: verdict.PositiveCounts,
			c.negative: verdict.NegativeCounts,
		}
		if err := saveResults(ctx, c.results, text, counts); err != nil {
			c.logger.Warn("saving diagnostic results failed", zap.Error(err))
		}
	}

	c.logger.Debug("classification finished",
		zap.Stringer("decision", verdict.Decision),
		zap.Float64("positive", float64(verdict.Positive)),
		zap.Float64("negative", float64(verdict.Negative)),
		zap.Duration("duration", time.Since(start)))

	return verdict, nil
}

// Score counts both lexicons in text concurrently and decides.
func (c *Classifier) Score(ctx context.Context, positive, negative Lexicon, text string) (Verdict, error) {
	var posCounts, negCounts FrequencyResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posCounts, err = c.counter.Count(gctx, positive, text)
		return err
	})
	g.Go(func() error {
		var err error
		negCounts, err = c.counter.Count(gctx, negative, text)
		return err
	})
	if err := g.Wait(); err != nil {
		return Verdict{}, err
	}

	pos := PositiveScore(posCounts)
	neg := NegativeScore(negCounts)

	return Verdict{
		Decision:       Decide(pos, neg),
		Positive:       pos,
		Negative:       neg,
		PositiveCounts: posCounts,
		NegativeCounts: negCounts,
	}, nil
}

func (c *Classifier) acquire(ctx context.Context, src TextSource) (string, error) {
	if src == nil {
		return "", &AcquireError{Err: errNoTextSource}
	}

	if c.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.acquireTimeout)
		defer cancel()
	}

	type acquired struct {
		text string
		err  error
	}

	// Sources that ignore ctx still cannot hold the pipeline past the timeout.
	done := make(chan acquired, 1)
	go func() {
		text, err := src.AcquireText(ctx)
		done <- acquired{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &AcquireError{Err: ctx.Err()}
	case a := <-done:
		if a.err != nil {
			return "", &AcquireError{Err: a.err}
		}
		return a.text, nil
	}
}
