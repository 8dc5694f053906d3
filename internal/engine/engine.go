// Package engine holds one state machine per mini-game. Every engine
// follows the same shape: Setup picks verbs and builds a question, answer
// submission validates and forwards the score delta to the game session,
// and auto-advance timers re-run Setup after a short delay. Timers are
// owned by the engine and canceled on teardown so a delayed callback can
// never resurrect a torn-down round.
package engine

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"verblearn/internal/game"
)

// Activity identifies one mini-game mode.
type Activity int

const (
	ActivityMatching Activity = iota
	ActivityFillBlank
	ActivityLetterChoice
	ActivityPronunciation
	ActivityChallenge
	ActivityReading
)

func (a Activity) String() string {
	switch a {
	case ActivityMatching:
		return "matching"
	case ActivityFillBlank:
		return "fill-blank"
	case ActivityLetterChoice:
		return "letter-choice"
	case ActivityPronunciation:
		return "pronunciation"
	case ActivityChallenge:
		return "challenge"
	case ActivityReading:
		return "reading"
	default:
		return "unknown"
	}
}

// PointsConfig is the score delta table shared by all activities.
type PointsConfig struct {
	Correct   int
	Incorrect int
}

// DefaultPoints returns the standard +10/-5 table.
func DefaultPoints() PointsConfig {
	return PointsConfig{Correct: 10, Incorrect: -5}
}

// ErrAlreadyAnswered is returned when a round that accepts a single
// submission receives another one.
var ErrAlreadyAnswered = errors.New("engine: round already answered")

// Result reports the outcome of one answer submission.
type Result struct {
	Correct  bool
	Points   int
	Answer   string
	Expected string
	State    game.ScoreState
}

// Normalize prepares answers for comparison: lowercased and trimmed.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Scheduler runs delayed engine transitions. Canceling clears every
// pending task, including ones already firing but not yet run.
type Scheduler struct {
	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[*time.Timer]struct{})}
}

// After schedules fn after d. The task is dropped if CancelAll runs first.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		if _, ok := s.timers[t]; !ok {
			s.mu.Unlock()
			return
		}
		delete(s.timers, t)
		s.mu.Unlock()
		fn()
	})
	s.timers[t] = struct{}{}
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t := range s.timers {
		t.Stop()
	}
	s.timers = make(map[*time.Timer]struct{})
}

// shuffled returns a uniformly shuffled copy (Fisher-Yates).
func shuffled[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
