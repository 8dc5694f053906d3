package models

// Session is one completed scored attempt within an activity. Sessions are
// immutable once created; the timestamp doubles as the de-duplication key
// during sync merges.
type Session struct {
	Score     int               `json:"score"`
	Timestamp string            `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// ActivityStats accumulates statistics for one activity of one student.
//
// Invariants: AverageScore == round(TotalScore/TotalSessions) when
// TotalSessions > 0, else 0; BestScore == max(Sessions[].Score).
type ActivityStats struct {
	TotalSessions int       `json:"totalSessions"`
	BestScore     int       `json:"bestScore"`
	AverageScore  int       `json:"averageScore"`
	TotalScore    int       `json:"totalScore"`
	Sessions      []Session `json:"sessions"`
}

// OverallStats aggregates a student's statistics across all activities.
type OverallStats struct {
	TotalSessions       int            `json:"totalSessions"`
	AverageScore        int            `json:"averageScore"`
	BestScore           int            `json:"bestScore"`
	ActivitiesCompleted int            `json:"activitiesCompleted"`
	Profile             StudentProfile `json:"profile"`
}
