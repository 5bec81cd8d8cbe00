package exercise

import (
	"errors"
	"math/rand"
	"time"

	"github.com/listenly/listenly/internal/deck"
)

// DefaultAdvanceDelay is how long the correct-answer feedback stays on
// screen before the run moves to the next position.
const DefaultAdvanceDelay = 700 * time.Millisecond

// ErrEmptyDeck is returned when a machine is built over a deck with no
// pairs. An empty deck cannot render a position.
var ErrEmptyDeck = errors.New("exercise: empty deck")

// Sinks receive the machine's external effects. Nil funcs are allowed
// and skipped. Speak is issued on every position entry and on replay;
// UpdateScore fires exactly once per position at the moment of the
// correct choice; Complete fires exactly once at the end of the run;
// ScheduleAdvance asks the host loop to deliver AdvanceDue after d.
type Sinks struct {
	Speak           func(text string)
	UpdateScore     func(completed int)
	Complete        func()
	ScheduleAdvance func(d time.Duration)
}

// Machine is the exercise progression state machine. It is not safe
// for concurrent use: the host event loop must deliver events one at
// a time, which is exactly what a Bubble Tea Update loop does.
type Machine struct {
	deck  *deck.Deck
	rng   *rand.Rand
	sinks Sinks
	delay time.Duration

	run            *Run
	advancePending bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithAdvanceDelay overrides the post-correct advance delay.
func WithAdvanceDelay(d time.Duration) Option {
	return func(m *Machine) { m.delay = d }
}

// NewMachine builds a machine over d. The rng drives distractor
// ranking and option shuffling; inject a seeded source in tests.
// Call Start to enter the first position.
func NewMachine(d *deck.Deck, rng *rand.Rand, sinks Sinks, opts ...Option) (*Machine, error) {
	if d == nil || len(d.Pairs) == 0 {
		return nil, ErrEmptyDeck
	}
	m := &Machine{
		deck:  d,
		rng:   rng,
		sinks: sinks,
		delay: DefaultAdvanceDelay,
		run:   &Run{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Run exposes the machine's state for rendering. Callers must treat it
// as read-only.
func (m *Machine) Run() *Run {
	return m.run
}

// Pair returns the active sentence pair.
func (m *Machine) Pair() deck.Pair {
	return m.deck.Pairs[m.run.Position]
}

// Deck returns the deck this run is over.
func (m *Machine) Deck() *deck.Deck {
	return m.deck
}

// Start enters position 0, computing its options and issuing the first
// speak effect.
func (m *Machine) Start() {
	m.enterPosition(0)
}

// Reveal shows the option list. Ignored while the sentence is still
// being spoken, after the run is done, and when already revealed.
func (m *Machine) Reveal() {
	if m.run.Done() || m.run.Revealed || m.run.AudioPlaying {
		return
	}
	m.run.Revealed = true
	m.run.Phase = PhaseAwaitingAnswer
}

// Replay re-issues the speak effect for the current sentence. Valid in
// any state; reveal, selection and feedback are untouched. A new speak
// supersedes any still-pending one (the speech collaborator keeps at
// most one utterance active).
func (m *Machine) Replay() {
	if m.run.Done() {
		return
	}
	m.speak(m.Pair().Source)
}

// Choose registers the learner's answer. Only meaningful while options
// are revealed and the position is not already answered correctly;
// anything else is silently dropped. A correct choice reports the new
// score immediately and schedules the delayed advance; a wrong choice
// leaves the learner free to choose again.
func (m *Machine) Choose(option string) {
	if m.run.Done() || !m.run.Revealed || m.run.Correct() {
		return
	}

	m.run.Selection = option
	if option != m.Pair().Target {
		m.run.Feedback = FeedbackWrong
		m.run.Phase = PhaseWrong
		return
	}

	m.run.Feedback = FeedbackCorrect
	m.run.Phase = PhaseCorrect
	if m.sinks.UpdateScore != nil {
		m.sinks.UpdateScore(m.run.Completed + 1)
	}
	m.advancePending = true
	if m.sinks.ScheduleAdvance != nil {
		m.sinks.ScheduleAdvance(m.delay)
	}
}

// AdvanceDue processes the delayed-advance timer. It either moves to
// the next position or, on the last one, fires Complete and ends the
// run. Spurious firings (none pending) are dropped.
func (m *Machine) AdvanceDue() {
	if !m.advancePending {
		return
	}
	m.advancePending = false
	m.run.Completed++

	if m.run.Position == m.deck.Len()-1 {
		m.run.Phase = PhaseDone
		if m.sinks.Complete != nil {
			m.sinks.Complete()
		}
		return
	}
	m.enterPosition(m.run.Position + 1)
}

// SpeakDone records the speech collaborator's completion or error
// signal. Speech failure never blocks the run; reveal simply becomes
// available with no audio.
func (m *Machine) SpeakDone() {
	m.run.AudioPlaying = false
}

func (m *Machine) enterPosition(p int) {
	m.run.Position = p
	m.run.Revealed = false
	m.run.Selection = ""
	m.run.Feedback = FeedbackIdle
	m.run.Phase = PhaseAwaitingReveal
	m.run.Options = SelectOptions(m.rng, m.deck.Pairs[p].Target, m.deck.Targets(p))
	m.speak(m.deck.Pairs[p].Source)
}

func (m *Machine) speak(text string) {
	m.run.AudioPlaying = true
	if m.sinks.Speak != nil {
		m.sinks.Speak(text)
	}
}
