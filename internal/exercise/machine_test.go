package exercise

import (
	"math/rand"
	"testing"
	"time"

	"github.com/listenly/listenly/internal/deck"
)

// effectLog records every effect a machine emits, in order.
type effectLog struct {
	spoken    []string
	scores    []int
	completes int
	scheduled []time.Duration
}

func (l *effectLog) sinks() Sinks {
	return Sinks{
		Speak:           func(text string) { l.spoken = append(l.spoken, text) },
		UpdateScore:     func(n int) { l.scores = append(l.scores, n) },
		Complete:        func() { l.completes++ },
		ScheduleAdvance: func(d time.Duration) { l.scheduled = append(l.scheduled, d) },
	}
}

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID:         "test",
		Name:       "Test deck",
		SourceLang: "es-ES",
		TargetLang: "en",
		Pairs: []deck.Pair{
			{Source: "Hola", Target: "Hello"},
			{Source: "Adiós", Target: "Goodbye"},
			{Source: "Gracias", Target: "Thank you"},
		},
	}
}

func startedMachine(t *testing.T, d *deck.Deck) (*Machine, *effectLog) {
	t.Helper()
	log := &effectLog{}
	m, err := NewMachine(d, rand.New(rand.NewSource(7)), log.sinks())
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	m.Start()
	return m, log
}

func TestNewMachine_EmptyDeck(t *testing.T) {
	_, err := NewMachine(&deck.Deck{}, rand.New(rand.NewSource(1)), Sinks{})
	if err != ErrEmptyDeck {
		t.Fatalf("err = %v, want ErrEmptyDeck", err)
	}
}

func TestStart_EntersFirstPosition(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	run := m.Run()

	if run.Position != 0 || run.Revealed || run.Selection != "" || run.Feedback != FeedbackIdle {
		t.Errorf("unexpected entry state: %+v", run)
	}
	if run.Phase != PhaseAwaitingReveal {
		t.Errorf("Phase = %v, want PhaseAwaitingReveal", run.Phase)
	}
	if !run.AudioPlaying {
		t.Error("AudioPlaying = false, want true after speak issued")
	}
	if len(log.spoken) != 1 || log.spoken[0] != "Hola" {
		t.Errorf("spoken = %v, want [Hola]", log.spoken)
	}
	if len(run.Options) != 3 { // correct + two distractors in a 3-pair deck
		t.Errorf("len(Options) = %d, want 3", len(run.Options))
	}
	found := false
	for _, o := range run.Options {
		if o == "Hello" {
			found = true
		}
	}
	if !found {
		t.Errorf("Options %v missing correct answer", run.Options)
	}
}

func TestReveal_DeferredWhileSpeaking(t *testing.T) {
	m, _ := startedMachine(t, testDeck())

	m.Reveal()
	if m.Run().Revealed {
		t.Fatal("reveal honored while audio still playing")
	}

	m.SpeakDone()
	m.Reveal()
	if !m.Run().Revealed || m.Run().Phase != PhaseAwaitingAnswer {
		t.Fatalf("reveal not honored after speak completion: %+v", m.Run())
	}

	// Second reveal is a no-op.
	m.Reveal()
	if m.Run().Phase != PhaseAwaitingAnswer {
		t.Errorf("Phase changed on repeated reveal: %v", m.Run().Phase)
	}
}

func TestChoose_IgnoredBeforeReveal(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	m.SpeakDone()

	m.Choose("Hello")
	if m.Run().Feedback != FeedbackIdle || len(log.scores) != 0 {
		t.Errorf("choose before reveal not ignored: %+v scores=%v", m.Run(), log.scores)
	}
}

func TestChoose_Wrong(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	m.SpeakDone()
	m.Reveal()

	m.Choose("Goodbye")
	run := m.Run()
	if run.Feedback != FeedbackWrong || run.Phase != PhaseWrong {
		t.Errorf("wrong choice: feedback=%v phase=%v", run.Feedback, run.Phase)
	}
	if run.Selection != "Goodbye" {
		t.Errorf("Selection = %q, want Goodbye", run.Selection)
	}
	if len(log.scores) != 0 || len(log.scheduled) != 0 {
		t.Errorf("wrong choice emitted score/advance effects: %+v", log)
	}

	// Wrong answers don't latch: choosing again still works.
	m.Choose("Hello")
	if m.Run().Feedback != FeedbackCorrect {
		t.Errorf("retry after wrong not accepted: %v", m.Run().Feedback)
	}
}

func TestChoose_CorrectReportsScoreBeforeAdvance(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	m.SpeakDone()
	m.Reveal()

	m.Choose("Hello")
	run := m.Run()
	if run.Feedback != FeedbackCorrect || run.Phase != PhaseCorrect {
		t.Fatalf("correct choice: feedback=%v phase=%v", run.Feedback, run.Phase)
	}
	// Score reported immediately, at choose time.
	if len(log.scores) != 1 || log.scores[0] != 1 {
		t.Errorf("scores = %v, want [1]", log.scores)
	}
	// Advance scheduled but not applied yet.
	if len(log.scheduled) != 1 || log.scheduled[0] != DefaultAdvanceDelay {
		t.Errorf("scheduled = %v, want [%v]", log.scheduled, DefaultAdvanceDelay)
	}
	if run.Position != 0 || run.Completed != 0 {
		t.Errorf("advanced before delay: pos=%d completed=%d", run.Position, run.Completed)
	}
}

func TestChoose_CorrectLatchesPosition(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	m.SpeakDone()
	m.Reveal()

	m.Choose("Hello")
	m.Choose("Hello")
	m.Choose("Goodbye")

	if len(log.scores) != 1 {
		t.Errorf("score reported %d times, want 1", len(log.scores))
	}
	if m.Run().Feedback != FeedbackCorrect {
		t.Errorf("feedback changed after latch: %v", m.Run().Feedback)
	}
}

func TestAdvanceDue_MovesToNextPosition(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	m.SpeakDone()
	m.Reveal()
	m.Choose("Hello")

	m.AdvanceDue()
	run := m.Run()
	if run.Position != 1 || run.Completed != 1 {
		t.Fatalf("pos=%d completed=%d, want 1,1", run.Position, run.Completed)
	}
	if run.Revealed || run.Selection != "" || run.Feedback != FeedbackIdle {
		t.Errorf("state not reset on entry: %+v", run)
	}
	if log.spoken[len(log.spoken)-1] != "Adiós" {
		t.Errorf("next sentence not spoken: %v", log.spoken)
	}
	if log.completes != 0 {
		t.Error("complete fired before final position")
	}

	// Timer can only fire once per correct answer.
	m.AdvanceDue()
	if m.Run().Position != 1 {
		t.Errorf("spurious advance moved position to %d", m.Run().Position)
	}
}

func TestReplay_ReissuesSpeechOnly(t *testing.T) {
	m, log := startedMachine(t, testDeck())
	m.SpeakDone()
	m.Reveal()
	m.Choose("Goodbye")

	m.Replay()
	run := m.Run()
	if !run.AudioPlaying {
		t.Error("AudioPlaying = false after replay")
	}
	if log.spoken[len(log.spoken)-1] != "Hola" || len(log.spoken) != 2 {
		t.Errorf("spoken = %v, want [Hola Hola]", log.spoken)
	}
	if !run.Revealed || run.Selection != "Goodbye" || run.Feedback != FeedbackWrong {
		t.Errorf("replay disturbed state: %+v", run)
	}
}

func TestEndToEnd_TwoPairRun(t *testing.T) {
	d := &deck.Deck{
		ID:         "e2e",
		Name:       "Greetings",
		SourceLang: "zh-CN",
		TargetLang: "zh",
		Pairs: []deck.Pair{
			{Source: "Hi", Target: "你好"},
			{Source: "Bye", Target: "再见"},
		},
	}
	m, log := startedMachine(t, d)

	hasOption := func(want string) bool {
		for _, o := range m.Run().Options {
			if o == want {
				return true
			}
		}
		return false
	}

	if !hasOption("你好") {
		t.Fatalf("position 0 options %v missing 你好", m.Run().Options)
	}

	m.SpeakDone()
	m.Reveal()
	m.Choose("你好")
	if len(log.scores) != 1 || log.scores[0] != 1 {
		t.Fatalf("scores = %v, want [1]", log.scores)
	}

	m.AdvanceDue()
	if m.Run().Position != 1 {
		t.Fatalf("Position = %d, want 1", m.Run().Position)
	}
	if !hasOption("再见") {
		t.Fatalf("position 1 options %v missing 再见", m.Run().Options)
	}

	m.SpeakDone()
	m.Reveal()
	m.Choose("你好") // wrong
	if m.Run().Feedback != FeedbackWrong || len(log.scores) != 1 {
		t.Fatalf("wrong answer mishandled: %+v scores=%v", m.Run(), log.scores)
	}

	m.Choose("再见")
	if len(log.scores) != 2 || log.scores[1] != 2 {
		t.Fatalf("scores = %v, want [1 2]", log.scores)
	}
	if log.completes != 0 {
		t.Fatal("complete fired before the advance delay")
	}

	m.AdvanceDue()
	if log.completes != 1 {
		t.Fatalf("completes = %d, want 1", log.completes)
	}
	if !m.Run().Done() {
		t.Error("run not terminal after completion")
	}

	// Terminal: nothing more can happen.
	m.Reveal()
	m.Choose("再见")
	m.AdvanceDue()
	if log.completes != 1 || len(log.scores) != 2 {
		t.Errorf("terminal state accepted events: %+v", log)
	}
}
