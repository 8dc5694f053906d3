package game

import (
	"testing"

	"verblearn/internal/storage"
)

func TestUpdateScoreStreak(t *testing.T) {
	s := NewSession(storage.NewMemoryStore())

	tests := []struct {
		points     int
		wantScore  int
		wantStreak int
	}{
		{10, 10, 1},
		{10, 20, 2},
		{-5, 15, 0},
		{10, 25, 1},
		{0, 25, 0},
		{10, 35, 1},
	}

	for i, tt := range tests {
		state := s.UpdateScore(tt.points)
		if state.Score != tt.wantScore {
			t.Errorf("step %d: score = %d, want %d", i, state.Score, tt.wantScore)
		}
		if state.Streak != tt.wantStreak {
			t.Errorf("step %d: streak = %d, want %d", i, state.Streak, tt.wantStreak)
		}
	}
}

func TestHighScorePersists(t *testing.T) {
	kv := storage.NewMemoryStore()

	s := NewSession(kv)
	s.UpdateScore(10)
	s.UpdateScore(10)
	if s.HighScore() != 20 {
		t.Fatalf("highScore = %d, want 20", s.HighScore())
	}

	// Reset keeps the high score
	s.Reset()
	if s.Score() != 0 || s.Streak() != 0 {
		t.Error("Reset should zero score and streak")
	}
	if s.HighScore() != 20 {
		t.Errorf("Reset must not touch highScore, got %d", s.HighScore())
	}

	// A fresh session over the same store loads the saved value
	fresh := NewSession(kv)
	if fresh.HighScore() != 20 {
		t.Errorf("reloaded highScore = %d, want 20", fresh.HighScore())
	}

	// A lower-scoring session leaves it alone
	fresh.UpdateScore(5)
	if fresh.HighScore() != 20 {
		t.Errorf("highScore = %d, want 20", fresh.HighScore())
	}
}

func TestGenerateAchievements(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		totalPossible int
		streak        int
		want          []string
	}{
		{
			name: "perfect run with streak", score: 90, totalPossible: 100, streak: 5,
			want: []string{"🏆 Perfect Master", "⭐ Excellent Student", "👍 Great Job", "📚 Good Effort", "🔥 Streak Master"},
		},
		{
			name: "mid score", score: 7, totalPossible: 10, streak: 2,
			want: []string{"👍 Great Job", "📚 Good Effort"},
		},
		{
			name: "below all thresholds", score: 2, totalPossible: 10, streak: 0,
			want: nil,
		},
		{
			name: "streak only", score: 1, totalPossible: 10, streak: 6,
			want: []string{"🔥 Streak Master"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateAchievements(tt.score, tt.totalPossible, tt.streak)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("achievement %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
