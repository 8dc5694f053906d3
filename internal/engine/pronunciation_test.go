package engine

import (
	"errors"
	"testing"

	"verblearn/internal/game"
	"verblearn/internal/speech"
	"verblearn/internal/storage"
)

// scriptedRecognizer returns a fixed transcript for every attempt.
type scriptedRecognizer struct {
	transcript string
	confidence float64
}

func (r *scriptedRecognizer) Start(h speech.RecognitionHandlers) error {
	h.OnFinal([]speech.Alternative{{Transcript: r.transcript, Confidence: r.confidence}})
	h.OnEnd()
	return nil
}

func (r *scriptedRecognizer) Stop() {}

func newPronunciationGame(t *testing.T, rec speech.Recognizer) (*PronunciationGame, *game.Session) {
	t.Helper()
	session := game.NewSession(storage.NewMemoryStore())
	manager := speech.NewManager(rec)
	g := NewPronunciationGame(session, testVerbs, manager, DefaultPoints())
	t.Cleanup(g.Teardown)
	return g, session
}

func TestPronunciationCorrect(t *testing.T) {
	rec := &scriptedRecognizer{confidence: 0.9}
	g, session := newPronunciationGame(t, rec)

	// Echo the target back with different casing
	rec.transcript = "  " + g.Target() + " "

	var outcome PronunciationOutcome
	g.StartListening(func(o PronunciationOutcome) { outcome = o })

	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if !outcome.Correct || outcome.Points != 10 {
		t.Errorf("expected correct +10, got %+v", outcome)
	}
	if session.Score() != 10 {
		t.Errorf("session score = %d, want 10", session.Score())
	}
}

func TestPronunciationIncorrect(t *testing.T) {
	rec := &scriptedRecognizer{transcript: "xylophone", confidence: 0.9}
	g, session := newPronunciationGame(t, rec)

	var outcome PronunciationOutcome
	g.StartListening(func(o PronunciationOutcome) { outcome = o })

	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if outcome.Correct {
		t.Errorf("expected incorrect, got %+v", outcome)
	}
	if outcome.Heard != "xylophone" {
		t.Errorf("heard = %q, want xylophone", outcome.Heard)
	}
	if session.Score() != 0 {
		t.Errorf("incorrect pronunciation must not score, got %d", session.Score())
	}

	// The word stays up for another attempt
	rec.transcript = g.Target()
	g.StartListening(func(o PronunciationOutcome) { outcome = o })
	if !outcome.Correct {
		t.Errorf("expected correct retry, got %+v", outcome)
	}
}

func TestPronunciationConcurrentRoundReset(t *testing.T) {
	rec := &scriptedRecognizer{transcript: "xylophone", confidence: 0.9}
	g, _ := newPronunciationGame(t, rec)

	// The auto-advance timer calls Setup from its own goroutine while the
	// UI loop keeps reading the target and starting recognition attempts.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			g.Setup()
		}
	}()
	for {
		select {
		case <-done:
			return
		default:
			_ = g.Target()
			g.StartListening(func(PronunciationOutcome) {})
		}
	}
}

func TestPronunciationUnavailable(t *testing.T) {
	g, _ := newPronunciationGame(t, nil)

	if g.Available() {
		t.Error("game without recognizer should report unavailable")
	}

	var outcome PronunciationOutcome
	g.StartListening(func(o PronunciationOutcome) { outcome = o })
	if !errors.Is(outcome.Err, speech.ErrRecognitionUnavailable) {
		t.Errorf("expected ErrRecognitionUnavailable, got %v", outcome.Err)
	}
}
