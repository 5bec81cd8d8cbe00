package speech

import "context"

// NoopSynthesizer is used when no backend is configured. Every request
// reports ErrUnavailable; the exercise proceeds without audio.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Synthesize(context.Context, string, Options) ([]byte, error) {
	return nil, ErrUnavailable
}

func (NoopSynthesizer) Name() string {
	return "noop"
}
