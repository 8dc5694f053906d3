package speech

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeRecognizer records Start calls and lets tests drive the handlers.
type fakeRecognizer struct {
	mu     sync.Mutex
	starts int
	script func(attempt int, h RecognitionHandlers)
}

func (f *fakeRecognizer) Start(h RecognitionHandlers) error {
	f.mu.Lock()
	f.starts++
	attempt := f.starts
	f.mu.Unlock()
	if f.script != nil {
		f.script(attempt, h)
	}
	return nil
}

func (f *fakeRecognizer) Stop() {}

func (f *fakeRecognizer) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func TestStartListeningPicksBestAlternative(t *testing.T) {
	rec := &fakeRecognizer{
		script: func(attempt int, h RecognitionHandlers) {
			h.OnFinal([]Alternative{
				{Transcript: "want", Confidence: 0.6},
				{Transcript: "Went ", Confidence: 0.9},
				{Transcript: "when", Confidence: 0.7},
			})
			h.OnEnd()
		},
	}

	m := NewManager(rec)
	var got string
	m.StartListening(func(text string) { got = text }, func(err error) {
		t.Fatalf("unexpected error: %v", err)
	})

	if got != "went" {
		t.Errorf("got %q, want %q", got, "went")
	}
}

func TestLowConfidenceFallsBackToInterims(t *testing.T) {
	rec := &fakeRecognizer{
		script: func(attempt int, h RecognitionHandlers) {
			h.OnInterim("went")
			h.OnInterim("when")
			h.OnInterim("went")
			h.OnFinal([]Alternative{{Transcript: "rent", Confidence: 0.2}})
			h.OnEnd()
		},
	}

	m := NewManager(rec)
	var got string
	m.StartListening(func(text string) { got = text }, func(err error) {
		t.Fatalf("unexpected error: %v", err)
	})

	if got != "went" {
		t.Errorf("got %q, want most frequent interim %q", got, "went")
	}
}

func TestRetriesThenTimesOut(t *testing.T) {
	rec := &fakeRecognizer{
		script: func(attempt int, h RecognitionHandlers) {
			// Every attempt ends without producing a final result
			h.OnEnd()
		},
	}

	m := NewManager(rec)
	m.backoff = time.Millisecond

	errCh := make(chan error, 1)
	m.StartListening(func(text string) {
		t.Errorf("unexpected result %q", text)
	}, func(err error) {
		errCh <- err
	})

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrRecognitionTimeout) {
			t.Errorf("expected ErrRecognitionTimeout, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for recognition error")
	}

	// Initial attempt plus three retries
	if got := rec.startCount(); got != 4 {
		t.Errorf("expected 4 attempts, got %d", got)
	}
}

func TestRecognizerError(t *testing.T) {
	boom := errors.New("microphone unplugged")
	rec := &fakeRecognizer{
		script: func(attempt int, h RecognitionHandlers) {
			h.OnError(boom)
			h.OnEnd()
		},
	}

	m := NewManager(rec)
	var got error
	m.StartListening(func(text string) {
		t.Errorf("unexpected result %q", text)
	}, func(err error) { got = err })

	if !errors.Is(got, boom) {
		t.Errorf("expected recognizer error, got %v", got)
	}
	// An erroring attempt is not retried
	if rec.startCount() != 1 {
		t.Errorf("expected 1 attempt, got %d", rec.startCount())
	}
}

func TestUnavailableRecognizer(t *testing.T) {
	m := NewManager(nil)
	if m.Available() {
		t.Error("manager with nil recognizer should not be available")
	}

	var got error
	m.StartListening(func(string) {
		t.Error("unexpected result")
	}, func(err error) { got = err })

	if !errors.Is(got, ErrRecognitionUnavailable) {
		t.Errorf("expected ErrRecognitionUnavailable, got %v", got)
	}
}

func TestStopDiscardsLateResult(t *testing.T) {
	var handlers RecognitionHandlers
	rec := &fakeRecognizer{
		script: func(attempt int, h RecognitionHandlers) {
			handlers = h
		},
	}

	m := NewManager(rec)
	m.StartListening(func(text string) {
		t.Errorf("late result %q should have been discarded", text)
	}, func(err error) {
		t.Errorf("late error %v should have been discarded", err)
	})

	m.StopListening()

	// The backend delivers its result after the session was canceled
	handlers.OnFinal([]Alternative{{Transcript: "went", Confidence: 0.9}})
	handlers.OnEnd()
}
