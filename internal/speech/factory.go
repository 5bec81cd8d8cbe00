package speech

import (
	"fmt"
	"os"
)

// NewFromEnv builds a synthesizer from the environment, wrapped with
// the disk cache. Backend selection order:
//  1. LISTENLY_TTS_BACKEND ("openai", "google", "noop") when set
//  2. OPENAI_API_KEY present → openai
//  3. GOOGLE_TTS_API_KEY present → google
//  4. otherwise noop (silent exercise)
func NewFromEnv() (Synthesizer, error) {
	sy, err := newBackendFromEnv()
	if err != nil {
		return nil, err
	}

	dir, err := DefaultCacheDir()
	if err != nil {
		// No cache dir is not fatal; synthesize uncached.
		return sy, nil
	}
	return WithCache(sy, dir), nil
}

func newBackendFromEnv() (Synthesizer, error) {
	switch backend := os.Getenv("LISTENLY_TTS_BACKEND"); backend {
	case "openai":
		return NewOpenAISynthesizer(os.Getenv("OPENAI_API_KEY"))
	case "google":
		return NewGoogleSynthesizer(os.Getenv("GOOGLE_TTS_API_KEY"))
	case "noop":
		return NoopSynthesizer{}, nil
	case "":
		// Fall through to key discovery.
	default:
		return nil, fmt.Errorf("unknown TTS backend: %q", backend)
	}

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		return NewOpenAISynthesizer(k)
	}
	if k := os.Getenv("GOOGLE_TTS_API_KEY"); k != "" {
		return NewGoogleSynthesizer(k)
	}
	return NoopSynthesizer{}, nil
}
