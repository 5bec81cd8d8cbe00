package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// playerCommands are host audio players probed in order, with the
// arguments that make them play one mp3 and exit quietly.
var playerCommands = [][]string{
	{"afplay"},
	{"mpg123", "-q"},
	{"mpv", "--really-quiet", "--no-video"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// Player plays encoded audio through a host media player binary.
// Playback is a host capability, so this shells out rather than
// decoding audio in-process.
type Player struct {
	cmd []string
}

// NewPlayer probes PATH for a usable player. Returns ErrUnavailable
// when none is installed.
func NewPlayer() (*Player, error) {
	for _, cmd := range playerCommands {
		if _, err := exec.LookPath(cmd[0]); err == nil {
			return &Player{cmd: cmd}, nil
		}
	}
	return nil, fmt.Errorf("no audio player on PATH: %w", ErrUnavailable)
}

// Play blocks until playback finishes, the context is canceled, or the
// player fails.
func (p *Player) Play(ctx context.Context, audio []byte) error {
	f, err := os.CreateTemp("", "listenly-*.mp3")
	if err != nil {
		return fmt.Errorf("temp audio file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("write audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close audio file: %w", err)
	}

	args := append(append([]string{}, p.cmd[1:]...), f.Name())
	cmd := exec.CommandContext(ctx, p.cmd[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", p.cmd[0], err)
	}
	return nil
}
