package exercise

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/listenly/listenly/internal/deck"
	ex "github.com/listenly/listenly/internal/exercise"
	"github.com/listenly/listenly/internal/router"
	"github.com/listenly/listenly/internal/screen"
	"github.com/listenly/listenly/internal/screens/summary"
	"github.com/listenly/listenly/internal/speech"
	"github.com/listenly/listenly/internal/ui/components"
	"github.com/listenly/listenly/internal/ui/layout"
)

// ExerciseScreen drives one listening run over a deck. The machine owns
// the progression rules; the screen translates key presses into machine
// events and machine effects into Bubble Tea commands.
type ExerciseScreen struct {
	deck    *deck.Deck
	speaker *speech.Speaker
	machine *ex.Machine

	options components.OptionList
	score   int

	// wrongHere is true once a wrong option was tried at the current
	// position; used to count first-try answers for the summary.
	wrongHere bool
	firstTry  int

	// Effect commands queued by the machine's sinks during the current
	// event, drained into a tea.Batch before Update returns.
	pending []tea.Cmd

	speakSeq   int
	advanceSeq int
	finished   bool
	errMsg     string
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)
var _ screen.StatusProvider = (*ExerciseScreen)(nil)

// New creates an exercise screen over the given deck.
func New(d *deck.Deck, speaker *speech.Speaker) *ExerciseScreen {
	return newWithRand(d, speaker, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newWithRand(d *deck.Deck, speaker *speech.Speaker, rng *rand.Rand) *ExerciseScreen {
	s := &ExerciseScreen{
		deck:    d,
		speaker: speaker,
	}

	m, err := ex.NewMachine(d, rng, ex.Sinks{
		Speak:           s.speakSink,
		UpdateScore:     func(completed int) { s.score = completed },
		Complete:        func() { s.finished = true },
		ScheduleAdvance: s.advanceSink,
	})
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.machine = m
	return s
}

func (s *ExerciseScreen) Init() tea.Cmd {
	if s.machine == nil {
		return nil
	}
	s.machine.Start()
	s.syncOptions()
	return s.drain()
}

func (s *ExerciseScreen) Title() string {
	return s.deck.Name
}

func (s *ExerciseScreen) Status() string {
	if s.machine == nil {
		return ""
	}
	return fmt.Sprintf("Score %d/%d", s.score, s.deck.Len())
}

func (s *ExerciseScreen) KeyHints() []layout.KeyHint {
	if s.machine == nil {
		return nil
	}
	run := s.machine.Run()
	if !run.Revealed {
		return []layout.KeyHint{
			{Key: "Space", Description: "Show options"},
			{Key: "R", Description: "Replay audio"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "R", Description: "Replay audio"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.machine == nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case speakDoneMsg:
		if msg.seq == s.speakSeq {
			s.machine.SpeakDone()
		}
		return s, s.drain()

	case advanceMsg:
		return s.handleAdvance(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *ExerciseScreen) handleAdvance(msg advanceMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.advanceSeq {
		return s, nil
	}

	prev := s.machine.Run().Position
	s.machine.AdvanceDue()

	if s.finished {
		deckRef := s.deck
		speakerRef := s.speaker
		result := summary.Result{
			DeckName: s.deck.Name,
			Total:    s.deck.Len(),
			FirstTry: s.firstTry,
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(result, func() screen.Screen {
					return New(deckRef, speakerRef)
				}),
			}
		}
	}

	if s.machine.Run().Position != prev {
		s.wrongHere = false
		s.syncOptions()
	}
	return s, s.drain()
}

func (s *ExerciseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case " ", "space":
		s.machine.Reveal()
		return s, nil

	case "r":
		s.machine.Replay()
		return s, s.drain()

	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		return s, s.choose(idx)

	case "enter":
		if s.machine.Run().Revealed {
			return s, s.choose(s.options.Selected)
		}
		return s, nil
	}

	if s.machine.Run().Revealed {
		var cmd tea.Cmd
		s.options, cmd = s.options.Update(msg)
		return s, cmd
	}
	return s, nil
}

// choose submits option idx to the machine and mirrors the outcome back
// into the option list.
func (s *ExerciseScreen) choose(idx int) tea.Cmd {
	run := s.machine.Run()
	if !run.Revealed || run.Done() || run.Correct() {
		return nil
	}
	if idx < 0 || idx >= len(run.Options) {
		return nil
	}

	s.options.Selected = idx
	s.machine.Choose(run.Options[idx])

	if run.Correct() {
		if !s.wrongHere {
			s.firstTry++
		}
		s.options.Resolve(idx)
	} else {
		s.wrongHere = true
		s.options.MarkWrong(idx)
	}
	return s.drain()
}

// syncOptions rebuilds the option list for the machine's current position.
func (s *ExerciseScreen) syncOptions() {
	s.options = components.NewOptionList(s.machine.Run().Options)
}

// speakSink queues an utterance command. Playback runs off the Update
// loop; the returned message carries the utterance seq so completions
// of superseded utterances are ignored.
func (s *ExerciseScreen) speakSink(text string) {
	s.speakSeq++
	seq := s.speakSeq
	speaker := s.speaker
	lang := s.deck.SourceLang

	s.pending = append(s.pending, func() tea.Msg {
		if speaker != nil {
			// Failure is not fatal: the exercise continues silently.
			_ = speaker.Speak(context.Background(), text, speech.Options{Lang: lang, Rate: speech.SlowRate})
		}
		return speakDoneMsg{seq: seq}
	})
}

// advanceSink queues the delayed-advance timer.
func (s *ExerciseScreen) advanceSink(d time.Duration) {
	s.advanceSeq++
	seq := s.advanceSeq
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{seq: seq}
	}))
}

// drain batches and clears the commands queued by the sinks.
func (s *ExerciseScreen) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
