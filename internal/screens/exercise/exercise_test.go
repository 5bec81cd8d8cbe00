package exercise

import (
	"math/rand"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/listenly/listenly/internal/deck"
	ex "github.com/listenly/listenly/internal/exercise"
	"github.com/listenly/listenly/internal/router"
	"github.com/listenly/listenly/internal/screen"
)

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID:         "test",
		Name:       "Test Deck",
		SourceLang: "es-ES",
		TargetLang: "en",
		Pairs: []deck.Pair{
			{Source: "Hola.", Target: "Hello."},
			{Source: "Adiós.", Target: "Goodbye."},
			{Source: "Gracias.", Target: "Thank you."},
			{Source: "Por favor.", Target: "Please."},
			{Source: "Buenas noches.", Target: "Good night."},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// newTestScreen builds a screen with a deterministic rng, runs Init,
// and acknowledges the first utterance so options can be revealed.
func newTestScreen(t *testing.T) *ExerciseScreen {
	t.Helper()
	s := newWithRand(testDeck(), nil, rand.New(rand.NewSource(7)))
	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to issue the first speak command")
	}
	s.update(t, speakDoneMsg{seq: s.speakSeq})
	return s
}

// update drives one message through the screen.
func (s *ExerciseScreen) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	scr, cmd := s.Update(msg)
	if scr != screen.Screen(s) {
		t.Fatal("exercise screen must update in place")
	}
	return cmd
}

// correctIndex finds the current pair's target in the option list.
func correctIndex(s *ExerciseScreen) int {
	target := s.machine.Pair().Target
	for i, opt := range s.machine.Run().Options {
		if opt == target {
			return i
		}
	}
	return -1
}

func TestRevealThenAnswer(t *testing.T) {
	s := newTestScreen(t)

	s.update(t, keyPress(' '))
	if !s.machine.Run().Revealed {
		t.Fatal("expected space to reveal the options")
	}

	idx := correctIndex(s)
	if idx < 0 {
		t.Fatal("correct answer missing from options")
	}
	cmd := s.update(t, keyPress(rune('1'+idx)))
	if !s.machine.Run().Correct() {
		t.Error("expected correct feedback")
	}
	if s.score != 1 {
		t.Errorf("score = %d, want 1", s.score)
	}
	if cmd == nil {
		t.Error("expected the advance timer to be scheduled")
	}
	if !s.options.Resolved {
		t.Error("expected option list to highlight the answer")
	}
}

func TestRevealBlockedWhileSpeaking(t *testing.T) {
	s := newWithRand(testDeck(), nil, rand.New(rand.NewSource(7)))
	s.Init()

	// Audio still playing: reveal must not go through.
	s.update(t, keyPress(' '))
	if s.machine.Run().Revealed {
		t.Fatal("reveal should wait for the audio to finish")
	}

	s.update(t, speakDoneMsg{seq: s.speakSeq})
	s.update(t, keyPress(' '))
	if !s.machine.Run().Revealed {
		t.Error("expected reveal after audio completed")
	}
}

func TestStaleSpeakDoneIgnored(t *testing.T) {
	s := newWithRand(testDeck(), nil, rand.New(rand.NewSource(7)))
	s.Init()

	// Replay supersedes the first utterance.
	s.update(t, keyPress('r'))
	s.update(t, speakDoneMsg{seq: s.speakSeq - 1})
	if !s.machine.Run().AudioPlaying {
		t.Fatal("stale completion must not clear the playing flag")
	}

	s.update(t, speakDoneMsg{seq: s.speakSeq})
	if s.machine.Run().AudioPlaying {
		t.Error("current completion should clear the playing flag")
	}
}

func TestWrongThenRetry(t *testing.T) {
	s := newTestScreen(t)
	s.update(t, keyPress(' '))

	idx := correctIndex(s)
	wrong := (idx + 1) % len(s.machine.Run().Options)

	s.update(t, keyPress(rune('1'+wrong)))
	if s.machine.Run().Correct() {
		t.Fatal("expected wrong feedback")
	}
	if !s.options.WrongPicks[wrong] {
		t.Error("expected wrong pick to be marked")
	}
	if s.score != 0 {
		t.Errorf("score = %d, want 0 after wrong pick", s.score)
	}

	s.update(t, keyPress(rune('1'+idx)))
	if !s.machine.Run().Correct() {
		t.Error("expected retry to succeed")
	}
	if s.firstTry != 0 {
		t.Errorf("firstTry = %d, want 0 after a miss", s.firstTry)
	}
}

func TestAdvanceMovesToNextSentence(t *testing.T) {
	s := newTestScreen(t)
	s.update(t, keyPress(' '))
	s.update(t, keyPress(rune('1'+correctIndex(s))))

	s.update(t, advanceMsg{seq: s.advanceSeq})
	run := s.machine.Run()
	if run.Position != 1 {
		t.Errorf("position = %d, want 1", run.Position)
	}
	if run.Revealed {
		t.Error("expected a fresh hidden position")
	}
	if s.options.Resolved {
		t.Error("expected a fresh option list")
	}
	if s.firstTry != 1 {
		t.Errorf("firstTry = %d, want 1", s.firstTry)
	}
}

func TestStaleAdvanceIgnored(t *testing.T) {
	s := newTestScreen(t)
	s.update(t, keyPress(' '))
	s.update(t, keyPress(rune('1'+correctIndex(s))))

	s.update(t, advanceMsg{seq: s.advanceSeq + 1})
	if s.machine.Run().Position != 0 {
		t.Error("mismatched advance seq must not move the run")
	}
}

func TestFullRunEndsInSummary(t *testing.T) {
	s := newTestScreen(t)

	var finalCmd tea.Cmd
	for i := 0; i < len(testDeck().Pairs); i++ {
		s.update(t, keyPress(' '))
		s.update(t, keyPress(rune('1'+correctIndex(s))))
		finalCmd = s.update(t, advanceMsg{seq: s.advanceSeq})
		if i < len(testDeck().Pairs)-1 {
			s.update(t, speakDoneMsg{seq: s.speakSeq})
		}
	}

	if !s.finished {
		t.Fatal("expected the run to finish")
	}
	if finalCmd == nil {
		t.Fatal("expected a navigation command after the last advance")
	}
	msg := finalCmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if rep.Screen.Title() != "Results" {
		t.Errorf("expected the summary screen, got %q", rep.Screen.Title())
	}
}

func TestStatusShowsScore(t *testing.T) {
	s := newTestScreen(t)
	if got := s.Status(); got != "Score 0/5" {
		t.Errorf("Status = %q, want %q", got, "Score 0/5")
	}

	s.update(t, keyPress(' '))
	s.update(t, keyPress(rune('1'+correctIndex(s))))
	if got := s.Status(); got != "Score 1/5" {
		t.Errorf("Status = %q, want %q", got, "Score 1/5")
	}
}

func TestViewBeforeAndAfterReveal(t *testing.T) {
	s := newTestScreen(t)

	view := s.View(80, 24)
	if !strings.Contains(view, "Sentence 1 of 5") {
		t.Errorf("expected position line, got:\n%s", view)
	}
	if strings.Contains(view, "What does it mean?") {
		t.Error("options should be hidden before reveal")
	}

	s.update(t, keyPress(' '))
	view = s.View(80, 24)
	if !strings.Contains(view, "What does it mean?") {
		t.Error("expected options after reveal")
	}
}

func TestFeedbackInView(t *testing.T) {
	s := newTestScreen(t)
	s.update(t, keyPress(' '))

	idx := correctIndex(s)
	wrong := (idx + 1) % len(s.machine.Run().Options)
	s.update(t, keyPress(rune('1'+wrong)))
	if !strings.Contains(s.View(80, 24), "try again") {
		t.Error("expected wrong-answer feedback in view")
	}

	s.update(t, keyPress(rune('1'+idx)))
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("expected correct feedback in view")
	}
}

func TestMachineRunStateAfterWrongIsRetryable(t *testing.T) {
	s := newTestScreen(t)
	s.update(t, keyPress(' '))

	idx := correctIndex(s)
	wrong := (idx + 1) % len(s.machine.Run().Options)
	s.update(t, keyPress(rune('1'+wrong)))

	if s.machine.Run().Phase != ex.PhaseWrong {
		t.Errorf("phase = %v, want PhaseWrong", s.machine.Run().Phase)
	}
}
