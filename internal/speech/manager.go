package speech

import (
	"log"
	"strings"
	"sync"
	"time"
)

const (
	maxRecognitionRetries = 3
	retryBackoff          = 500 * time.Millisecond
	lowConfidence         = 0.5
)

// Manager drives a Recognizer through a full listening session: it picks
// the best-confidence alternative from the final result, falls back to the
// most frequent interim transcript when confidence is low, and retries
// attempts that end without a final result.
type Manager struct {
	recognizer Recognizer
	maxRetries int
	backoff    time.Duration

	mu         sync.Mutex
	generation int
	listening  bool
}

// NewManager wraps a recognizer. A nil recognizer yields a manager whose
// StartListening immediately reports ErrRecognitionUnavailable.
func NewManager(recognizer Recognizer) *Manager {
	return &Manager{
		recognizer: recognizer,
		maxRetries: maxRecognitionRetries,
		backoff:    retryBackoff,
	}
}

// Available reports whether a recognition backend is configured.
func (m *Manager) Available() bool {
	return m.recognizer != nil
}

// StartListening begins a listening session. Exactly one of onResult or
// onError fires per session; callbacks from a session superseded by
// StopListening or a newer StartListening are discarded.
func (m *Manager) StartListening(onResult func(text string), onError func(err error)) {
	if m.recognizer == nil {
		onError(ErrRecognitionUnavailable)
		return
	}

	m.mu.Lock()
	wasListening := m.listening
	m.generation++
	generation := m.generation
	m.listening = true
	m.mu.Unlock()

	// The bumped generation already discards the old session's callbacks.
	if wasListening {
		m.recognizer.Stop()
	}

	m.attempt(generation, 0, onResult, onError)
}

// StopListening cancels the in-flight session. A result arriving after the
// stop is discarded.
func (m *Manager) StopListening() {
	m.mu.Lock()
	m.generation++
	wasListening := m.listening
	m.listening = false
	m.mu.Unlock()

	if wasListening && m.recognizer != nil {
		m.recognizer.Stop()
	}
}

// current reports whether the given session generation is still live, and
// if done is set, marks the session finished.
func (m *Manager) current(generation int, done bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.generation {
		return false
	}
	if done {
		m.listening = false
	}
	return true
}

func (m *Manager) attempt(generation, retry int, onResult func(string), onError func(error)) {
	var (
		mu       sync.Mutex
		interims []string
		finished bool
	)

	err := m.recognizer.Start(RecognitionHandlers{
		OnInterim: func(transcript string) {
			mu.Lock()
			interims = append(interims, strings.ToLower(strings.TrimSpace(transcript)))
			mu.Unlock()
		},
		OnFinal: func(alternatives []Alternative) {
			mu.Lock()
			if finished || len(alternatives) == 0 {
				mu.Unlock()
				return
			}
			finished = true
			best := alternatives[0]
			for _, alt := range alternatives[1:] {
				if alt.Confidence > best.Confidence {
					best = alt
				}
			}
			text := strings.ToLower(strings.TrimSpace(best.Transcript))
			if best.Confidence < lowConfidence && len(interims) > 0 {
				text = mostFrequent(interims)
			}
			mu.Unlock()

			if m.current(generation, true) {
				onResult(text)
			}
		},
		OnError: func(err error) {
			mu.Lock()
			if finished {
				mu.Unlock()
				return
			}
			finished = true
			mu.Unlock()

			if m.current(generation, true) {
				onError(err)
			}
		},
		OnEnd: func() {
			mu.Lock()
			ended := finished
			mu.Unlock()
			if ended || !m.current(generation, false) {
				return
			}

			if retry < m.maxRetries {
				log.Printf("Recognition ended without result, retrying (%d/%d)", retry+1, m.maxRetries)
				time.AfterFunc(m.backoff, func() {
					if m.current(generation, false) {
						m.attempt(generation, retry+1, onResult, onError)
					}
				})
				return
			}
			if m.current(generation, true) {
				onError(ErrRecognitionTimeout)
			}
		},
	})
	if err != nil {
		if m.current(generation, true) {
			onError(err)
		}
	}
}

// mostFrequent returns the most common entry; ties keep the earliest.
func mostFrequent(items []string) string {
	counts := make(map[string]int)
	best := items[0]
	bestCount := 0
	for _, item := range items {
		counts[item]++
		if counts[item] > bestCount {
			bestCount = counts[item]
			best = item
		}
	}
	return best
}
