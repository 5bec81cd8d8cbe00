package exercise

// Phase is the progression state for the current position.
type Phase int

const (
	// PhaseAwaitingReveal: the sentence has been spoken (or is being
	// spoken) and the option list is still hidden.
	PhaseAwaitingReveal Phase = iota
	// PhaseAwaitingAnswer: options are visible, no correct choice yet.
	PhaseAwaitingAnswer
	// PhaseCorrect: the correct option was chosen; an advance is pending.
	PhaseCorrect
	// PhaseWrong: a wrong option was chosen; the learner may try again.
	PhaseWrong
	// PhaseDone: the final position was completed. Terminal.
	PhaseDone
)

// Feedback reflects the relationship between the current selection and
// the correct answer for the position.
type Feedback int

const (
	FeedbackIdle Feedback = iota
	FeedbackCorrect
	FeedbackWrong
)

// Run is the mutable state of one exercise pass over a deck. It has a
// single owner (the Machine) and every mutation happens in response to
// one discrete event at a time.
type Run struct {
	// Position is the index of the active pair. It only moves forward.
	Position int

	// Completed counts positions answered correctly so far.
	Completed int

	// Options is the shuffled answer list for Position, recomputed on
	// every position change. It contains the correct target exactly
	// once plus up to three distractors.
	Options []string

	// Selection is the option last chosen for this position, "" if none.
	Selection string

	// Feedback mirrors Selection against the correct answer.
	Feedback Feedback

	// Revealed is true once the learner asked to see the options.
	// Reset on every position change.
	Revealed bool

	// AudioPlaying mirrors the speech collaborator's playback status.
	AudioPlaying bool

	// Phase is the progression state for Position.
	Phase Phase
}

// Correct reports whether the current feedback is a correct answer.
func (r *Run) Correct() bool {
	return r.Feedback == FeedbackCorrect
}

// Done reports whether the run has reached its terminal state.
func (r *Run) Done() bool {
	return r.Phase == PhaseDone
}
