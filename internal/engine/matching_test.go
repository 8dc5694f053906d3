package engine

import (
	"errors"
	"testing"

	"verblearn/internal/game"
	"verblearn/internal/storage"
)

func newMatchingGame(t *testing.T, count int) (*MatchingGame, *game.Session) {
	t.Helper()
	session := game.NewSession(storage.NewMemoryStore())
	g := NewMatchingGame(session, testVerbs, count, DefaultPoints())
	t.Cleanup(g.Teardown)
	return g, session
}

func TestMatchingSetup(t *testing.T) {
	g, _ := newMatchingGame(t, 3)

	if len(g.Infinitives()) != 3 || len(g.PastSlots()) != 3 {
		t.Fatalf("expected 3 cards per side, got %d/%d", len(g.Infinitives()), len(g.PastSlots()))
	}

	// Both sides cover the same verb IDs
	ids := make(map[int]bool)
	for _, card := range g.Infinitives() {
		ids[card.VerbID] = true
	}
	for _, slot := range g.PastSlots() {
		if !ids[slot.VerbID] {
			t.Errorf("slot verb %d has no matching infinitive card", slot.VerbID)
		}
	}
}

func TestMatchingAllCorrect(t *testing.T) {
	g, _ := newMatchingGame(t, 5)

	for _, slot := range g.PastSlots() {
		g.Assign(slot.VerbID, slot.VerbID)
	}

	result, err := g.CheckMatches()
	if err != nil {
		t.Fatalf("CheckMatches failed: %v", err)
	}
	if !result.AllCorrect || result.Correct != 5 {
		t.Errorf("expected all 5 correct, got %+v", result)
	}
	if result.Points != 50 {
		t.Errorf("points = %d, want 50", result.Points)
	}
	if result.State.Score != 50 || result.State.Streak != 1 {
		t.Errorf("unexpected score state %+v", result.State)
	}
}

func TestMatchingPartialAndWrong(t *testing.T) {
	g, _ := newMatchingGame(t, 5)

	slots := g.PastSlots()
	// Two correct, one wrong, two left unassigned
	g.Assign(slots[0].VerbID, slots[0].VerbID)
	g.Assign(slots[1].VerbID, slots[1].VerbID)
	g.Assign(slots[2].VerbID, slots[3].VerbID)

	result, err := g.CheckMatches()
	if err != nil {
		t.Fatalf("CheckMatches failed: %v", err)
	}
	if result.Correct != 2 {
		t.Errorf("correct = %d, want 2", result.Correct)
	}
	// No penalty for wrong or missing assignments
	if result.Points != 20 {
		t.Errorf("points = %d, want 20", result.Points)
	}
}

func TestMatchingSingleSubmission(t *testing.T) {
	g, _ := newMatchingGame(t, 3)

	if _, err := g.CheckMatches(); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if _, err := g.CheckMatches(); !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("expected ErrAlreadyAnswered, got %v", err)
	}
}

func TestMatchingConcurrentRoundReset(t *testing.T) {
	g, _ := newMatchingGame(t, 3)

	// The auto-advance timer calls Setup from its own goroutine while the
	// UI loop keeps reading cards and dropping assignments.
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
			for _, slot := range g.PastSlots() {
				g.Assign(slot.VerbID, slot.VerbID)
			}
			_ = g.Infinitives()
		}
	}
}

func TestMatchingReassignOverwrites(t *testing.T) {
	g, _ := newMatchingGame(t, 2)

	slots := g.PastSlots()
	other := slots[1].VerbID
	g.Assign(slots[0].VerbID, other)
	g.Assign(slots[0].VerbID, slots[0].VerbID)

	result, err := g.CheckMatches()
	if err != nil {
		t.Fatalf("CheckMatches failed: %v", err)
	}
	if result.Correct < 1 {
		t.Errorf("re-assignment should count the latest drop, got %+v", result)
	}
}
