package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// CachingSynthesizer wraps a backend with an on-disk mp3 cache keyed
// by (lang, rate, voice, text). Synthesis is the expensive step and
// exercise sentences repeat on every replay.
type CachingSynthesizer struct {
	inner Synthesizer
	dir   string
}

// WithCache wraps sy with a disk cache rooted at dir.
func WithCache(sy Synthesizer, dir string) *CachingSynthesizer {
	os.MkdirAll(dir, 0o755)
	return &CachingSynthesizer{inner: sy, dir: dir}
}

func (c *CachingSynthesizer) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	path := filepath.Join(c.dir, cacheKey(text, opts)+".mp3")
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	data, err := c.inner.Synthesize(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	// Failures to cache are not failures to speak.
	_ = os.WriteFile(path, data, 0o644)
	return data, nil
}

func (c *CachingSynthesizer) Name() string {
	return c.inner.Name()
}

func cacheKey(text string, opts Options) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s:%v:%s:%s", opts.Lang, opts.Rate, opts.Voice, text))
	return hex.EncodeToString(h[:16])
}

// DefaultCacheDir resolves the audio cache directory under XDG cache.
func DefaultCacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "listenly", "audio"), nil
}
