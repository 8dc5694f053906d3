// Package game tracks the score and streak of a single play session and the
// persisted all-time high score.
package game

import (
	"log"
	"strconv"

	"verblearn/internal/storage"
)

// ScoreState is the result of a score update.
type ScoreState struct {
	Score     int
	Streak    int
	HighScore int
}

// Session holds the running score for one practice session. The high score
// is global across all sessions and students, persisted in the key-value
// store.
type Session struct {
	currentScore  int
	currentStreak int
	highScore     int
	kv            storage.Store
}

// NewSession loads the saved high score. An unparsable saved value counts
// as zero.
func NewSession(kv storage.Store) *Session {
	s := &Session{kv: kv}
	if raw, err := kv.Get(storage.KeyHighScore); err == nil {
		if parsed, err := strconv.Atoi(raw); err == nil {
			s.highScore = parsed
		}
	}
	return s
}

// UpdateScore applies a point delta. The streak increments on positive
// points and resets to zero otherwise; zero points reset it too. The high
// score is persisted whenever the cumulative session score exceeds it.
func (s *Session) UpdateScore(points int) ScoreState {
	s.currentScore += points
	if points > 0 {
		s.currentStreak++
	} else {
		s.currentStreak = 0
	}

	if s.currentScore > s.highScore {
		s.highScore = s.currentScore
		if err := s.kv.Set(storage.KeyHighScore, strconv.Itoa(s.highScore)); err != nil {
			log.Printf("Error saving high score: %v", err)
		}
	}

	return ScoreState{Score: s.currentScore, Streak: s.currentStreak, HighScore: s.highScore}
}

// Reset zeroes the session score and streak. The high score is untouched.
func (s *Session) Reset() {
	s.currentScore = 0
	s.currentStreak = 0
}

// Score returns the current session score.
func (s *Session) Score() int { return s.currentScore }

// Streak returns the current streak.
func (s *Session) Streak() int { return s.currentStreak }

// HighScore returns the persisted all-time high score.
func (s *Session) HighScore() int { return s.highScore }

// GenerateAchievements awards badges for a finished activity. All thresholds
// at or below the percentage fire, highest first, with the streak badge last.
func GenerateAchievements(score, totalPossible, streak int) []string {
	var achievements []string
	percentage := 0
	if totalPossible > 0 {
		percentage = int(float64(score)/float64(totalPossible)*100 + 0.5)
	}

	if percentage >= 90 {
		achievements = append(achievements, "🏆 Perfect Master")
	}
	if percentage >= 80 {
		achievements = append(achievements, "⭐ Excellent Student")
	}
	if percentage >= 70 {
		achievements = append(achievements, "👍 Great Job")
	}
	if percentage >= 50 {
		achievements = append(achievements, "📚 Good Effort")
	}
	if streak >= 5 {
		achievements = append(achievements, "🔥 Streak Master")
	}
	return achievements
}
