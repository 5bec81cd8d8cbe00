package speech

import (
	"context"
	"sync"
)

// Speaker turns text into audible speech: synthesize, then play.
// At most one utterance is active; starting a new one cancels the
// previous, so overlapping speech cannot happen.
type Speaker struct {
	sy     Synthesizer
	player *Player

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSpeaker builds a speaker over sy. When no host audio player is
// available the speaker still synthesizes (warming the cache) but
// reports ErrUnavailable, which callers treat as silent completion.
func NewSpeaker(sy Synthesizer) *Speaker {
	player, _ := NewPlayer()
	return &Speaker{sy: sy, player: player}
}

// Speak synthesizes and plays text, blocking until playback ends or
// fails. Errors mean "this sentence won't be heard" and never more.
func (s *Speaker) Speak(ctx context.Context, text string, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	audio, err := s.sy.Synthesize(ctx, text, opts)
	if err != nil {
		return err
	}
	if s.player == nil {
		return ErrUnavailable
	}
	return s.player.Play(ctx, audio)
}
