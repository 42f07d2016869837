package readable

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Freshness decides when an existing lexicon artifact is reused.
type Freshness int

const (
	// ExistenceOnly reuses any artifact that exists, without looking at the
	// source again. Stale or corrupt artifacts are never repaired.
	ExistenceOnly Freshness = iota
	// ContentHash regenerates the artifact when the SHA-256 of the source no
	// longer matches the checksum recorded in it, or when it is unreadable.
	ContentHash
)

// ParseFreshness converts "existence" or "hash" into a Freshness.
func ParseFreshness(s string) (Freshness, error) {
	switch strings.ToLower(s) {
	case "", "existence", "existence-only":
		return ExistenceOnly, nil
	case "hash", "content-hash", "checksum":
		return ContentHash, nil
	default:
		return ExistenceOnly, fmt.Errorf("unknown freshness policy %q", s)
	}
}

// lexiconArtifact is the persisted form of a Lexicon.
type lexiconArtifact struct {
	Keywords []string `json:"keywords"`
	Checksum string   `json:"checksum,omitempty"`
}

// ArtifactName returns the artifact name for a source: the base name up to
// its first dot, with a ".json" extension ("positive.txt" -> "positive.json").
func ArtifactName(source string) string {
	return baseName(source) + ".json"
}

func baseName(source string) string {
	if i := strings.Index(source, "."); i >= 0 {
		return source[:i]
	}
	return source
}

// ParseLexicon reads one keyword per line from r. Line terminators ("\n" or
// "\r\n") are removed; nothing else is trimmed or filtered.
func ParseLexicon(r io.Reader) ([]string, error) {
	keywords := []string{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		keywords = append(keywords, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return keywords, nil
}

// EncodeLexicon renders keywords as a lexicon artifact.
func EncodeLexicon(keywords []string, checksum string) ([]byte, error) {
	if keywords == nil {
		keywords = []string{}
	}
	return json.Marshal(lexiconArtifact{Keywords: keywords, Checksum: checksum})
}

// DecodeLexicon parses a lexicon artifact.
func DecodeLexicon(data []byte) (keywords []string, checksum string, err error) {
	var artifact lexiconArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	if artifact.Keywords == nil {
		return nil, "", fmt.Errorf("%w: missing keywords field", ErrCorruptArtifact)
	}
	return artifact.Keywords, artifact.Checksum, nil
}

// A StoreOption configures a LexiconStore.
type StoreOption func(*LexiconStore)

// WithFreshness sets the artifact reuse policy.
func WithFreshness(f Freshness) StoreOption {
	return func(s *LexiconStore) {
		s.freshness = f
	}
}

// WithWriteTimeout bounds each artifact write.
func WithWriteTimeout(timeout time.Duration) StoreOption {
	return func(s *LexiconStore) {
		s.writeTimeout = timeout
	}
}

// WithStoreLogger sets the logger used for generation events.
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *LexiconStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// LexiconStore turns keyword source files into lexicon artifacts and loads
// them back.
type LexiconStore struct {
	sources      fs.FS
	cache        ArtifactCache
	freshness    Freshness
	writeTimeout time.Duration
	logger       *zap.Logger

	group     singleflight.Group
	mu        sync.Mutex
	generated map[string]bool
}

// NewLexiconStore reads sources from the given filesystem and keeps artifacts
// in cache.
func NewLexiconStore(sources fs.FS, cache ArtifactCache, opts ...StoreOption) *LexiconStore {
	s := &LexiconStore{
		sources:   sources,
		cache:     cache,
		freshness: ExistenceOnly,
		logger:    zap.NewNop(),
		generated: make(map[string]bool),
	}
	for _, applyOpt := range opts {
		applyOpt(s)
	}
	return s
}

// Ensure returns the lexicon for source, generating its artifact first when
// the freshness policy requires it. Failing to produce the artifact yields an
// *ArtifactError.
func (s *LexiconStore) Ensure(ctx context.Context, source string) (Lexicon, error) {
	v, err, _ := s.group.Do(source, func() (any, error) {
		return s.ensure(ctx, source)
	})
	if err != nil {
		return Lexicon{}, err
	}
	return Lexicon{Name: source, Keywords: v.([]string)}, nil
}

// Generated reports whether this store has written the artifact for source.
func (s *LexiconStore) Generated(source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated[source]
}

func (s *LexiconStore) ensure(ctx context.Context, source string) ([]string, error) {
	name := ArtifactName(source)

	data, err := s.cache.Get(ctx, name)
	switch {
	case err == nil:
		keywords, ok, err := s.reuse(source, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			return keywords, nil
		}
	case !errors.Is(err, ErrArtifactNotFound):
		return nil, &ArtifactError{Artifact: name, Op: "read artifact", Err: err}
	}

	return s.generate(ctx, source, name)
}

// reuse decides whether an existing artifact can be used as is.
func (s *LexiconStore) reuse(source string, data []byte) ([]string, bool, error) {
	keywords, checksum, err := DecodeLexicon(data)

	if s.freshness == ExistenceOnly {
		if err != nil {
			return nil, false, err
		}
		return keywords, true, nil
	}

	if err != nil {
		s.logger.Warn("lexicon artifact unreadable, regenerating",
			zap.String("source", source), zap.Error(err))
		return nil, false, nil
	}

	raw, err := fs.ReadFile(s.sources, source)
	if err != nil {
		// The artifact is still usable without its source.
		s.logger.Warn("lexicon source unreadable, keeping artifact",
			zap.String("source", source), zap.Error(err))
		return keywords, true, nil
	}
	if checksum != sourceChecksum(raw) {
		s.logger.Info("lexicon source changed, regenerating", zap.String("source", source))
		return nil, false, nil
	}
	return keywords, true, nil
}

func (s *LexiconStore) generate(ctx context.Context, source, name string) ([]string, error) {
	raw, err := fs.ReadFile(s.sources, source)
	if err != nil {
		return nil, &ArtifactError{Artifact: name, Op: "read source", Err: err}
	}

	keywords, err := ParseLexicon(bytes.NewReader(raw))
	if err != nil {
		return nil, &ArtifactError{Artifact: name, Op: "parse source", Err: err}
	}

	var checksum string
	if s.freshness == ContentHash {
		checksum = sourceChecksum(raw)
	}

	data, err := EncodeLexicon(keywords, checksum)
	if err != nil {
		return nil, &ArtifactError{Artifact: name, Op: "encode", Err: err}
	}

	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}

	if err := s.cache.Put(ctx, name, data); err != nil {
		return nil, &ArtifactError{Artifact: name, Op: "write", Err: err}
	}

	s.mu.Lock()
	s.generated[source] = true
	s.mu.Unlock()

	s.logger.Info("lexicon artifact generated",
		zap.String("artifact", name),
		zap.Int("keywords", len(keywords)))

	return keywords, nil
}

func sourceChecksum(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
