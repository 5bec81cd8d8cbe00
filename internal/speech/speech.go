// Package speech synthesizes and plays exercise sentences. The
// exercise core treats it as an external collaborator: a speak request
// is fire-and-forget, and its completion (or failure) comes back as an
// event. Speech being unavailable never blocks an exercise.
package speech

import (
	"context"
	"errors"
)

// ErrUnavailable means no synthesis backend is configured or the
// configured one cannot serve. Callers treat it as "run silently".
var ErrUnavailable = errors.New("speech synthesis unavailable")

// Options shape a single utterance. Lang is a BCP 47 tag from the
// deck's source language. Rate 1.0 is normal speed; the exercise
// surface asks for a slower rate so learners can parse the sentence.
// Voice is a preference, matched best-effort per backend, never an
// error when missing.
type Options struct {
	Lang  string
	Rate  float64
	Voice string
}

// SlowRate is the playback rate the exercise screen requests.
const SlowRate = 0.8

// Synthesizer converts text to encoded audio (mp3).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)

	// Name identifies the backend for diagnostics.
	Name() string
}
