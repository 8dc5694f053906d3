package score

import (
	"math"

	"verblearn/internal/models"
)

// roundHalfUp rounds to the nearest integer with halves rounding up, the
// same as JavaScript's Math.round. Needed so averages computed here agree
// with snapshots produced by older clients.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

// RecalculateStats rebuilds activity statistics from a session list. Used
// after sync merges, where the per-side counters can never be combined
// arithmetically.
func RecalculateStats(sessions []models.Session) models.ActivityStats {
	stats := models.ActivityStats{Sessions: sessions}
	if len(sessions) == 0 {
		return stats
	}

	best := sessions[0].Score
	total := 0
	for _, s := range sessions {
		total += s.Score
		if s.Score > best {
			best = s.Score
		}
	}

	stats.TotalSessions = len(sessions)
	stats.TotalScore = total
	stats.BestScore = best
	stats.AverageScore = roundHalfUp(float64(total) / float64(len(sessions)))
	return stats
}
