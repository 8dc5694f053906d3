package score

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"verblearn/internal/models"
	"verblearn/internal/storage"
)

func newTestStore() *Store {
	s := NewStore(storage.NewMemoryStore())
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return s
}

func TestRecordScoreNoActiveStudent(t *testing.T) {
	s := newTestStore()
	_, err := s.RecordScore("", "matching", 10, nil)
	if !errors.Is(err, ErrNoActiveStudent) {
		t.Errorf("expected ErrNoActiveStudent, got %v", err)
	}
}

func TestRecordScoreUpdatesStats(t *testing.T) {
	s := newTestStore()

	for _, points := range []int{10, 5, -5} {
		if _, err := s.RecordScore("小明", "matching", points, nil); err != nil {
			t.Fatalf("RecordScore failed: %v", err)
		}
	}

	stats := s.GetActivityScores("小明", "matching")
	if stats == nil {
		t.Fatal("expected activity stats")
	}
	if stats.TotalSessions != 3 {
		t.Errorf("expected 3 sessions, got %d", stats.TotalSessions)
	}
	if stats.TotalScore != 10 {
		t.Errorf("expected total 10, got %d", stats.TotalScore)
	}
	if stats.BestScore != 10 {
		t.Errorf("expected best 10, got %d", stats.BestScore)
	}
	// 10/3 = 3.33 rounds to 3
	if stats.AverageScore != 3 {
		t.Errorf("expected average 3, got %d", stats.AverageScore)
	}
}

func TestRecordScoreNegativeBest(t *testing.T) {
	s := newTestStore()
	s.RecordScore("小明", "challenge", -5, nil)

	stats := s.GetActivityScores("小明", "challenge")
	if stats.BestScore != -5 {
		t.Errorf("expected best -5, got %d", stats.BestScore)
	}
}

func TestRecordScoreUpdatesLastActive(t *testing.T) {
	s := newTestStore()
	session, err := s.RecordScore("小明", "matching", 10, nil)
	if err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}

	record := s.GetStudentScores("小明")
	if record == nil {
		t.Fatal("expected student record")
	}
	if record.Profile.LastActive != session.Timestamp {
		t.Errorf("lastActive %q does not match session timestamp %q",
			record.Profile.LastActive, session.Timestamp)
	}
}

func TestRecordScoreNotifiesListener(t *testing.T) {
	s := newTestStore()
	notified := 0
	s.OnChange(func() { notified++ })

	s.RecordScore("小明", "matching", 10, nil)
	s.RecordScore("小明", "matching", 10, nil)

	if notified != 2 {
		t.Errorf("expected 2 notifications, got %d", notified)
	}
}

func TestRecalculateStats(t *testing.T) {
	tests := []struct {
		name        string
		scores      []int
		wantBest    int
		wantAverage int
		wantTotal   int
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []int{40}, 40, 40, 40},
		{"half rounds up", []int{10, 5}, 10, 8, 15},
		{"all negative", []int{-5, -10}, -5, -8, -15},
		{"mixed", []int{10, -5, 10, 10}, 10, 6, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sessions []models.Session
			for i, score := range tt.scores {
				sessions = append(sessions, models.Session{
					Score:     score,
					Timestamp: models.Timestamp(time.Date(2024, 3, 1, 10, 0, i, 0, time.UTC)),
				})
			}

			stats := RecalculateStats(sessions)
			if stats.TotalSessions != len(tt.scores) {
				t.Errorf("totalSessions = %d, want %d", stats.TotalSessions, len(tt.scores))
			}
			if stats.TotalScore != tt.wantTotal {
				t.Errorf("totalScore = %d, want %d", stats.TotalScore, tt.wantTotal)
			}
			if stats.BestScore != tt.wantBest {
				t.Errorf("bestScore = %d, want %d", stats.BestScore, tt.wantBest)
			}
			if stats.AverageScore != tt.wantAverage {
				t.Errorf("averageScore = %d, want %d", stats.AverageScore, tt.wantAverage)
			}
		})
	}
}

func TestGetOverallStats(t *testing.T) {
	s := newTestStore()

	if s.GetOverallStats("unknown") != nil {
		t.Error("expected nil for unknown student")
	}

	s.RecordScore("小明", "matching", 50, nil)
	s.RecordScore("小明", "matching", 30, nil)
	s.RecordScore("小明", "challenge", 90, nil)

	stats := s.GetOverallStats("小明")
	if stats == nil {
		t.Fatal("expected stats")
	}
	if stats.TotalSessions != 3 {
		t.Errorf("totalSessions = %d, want 3", stats.TotalSessions)
	}
	// 170/3 = 56.67 rounds to 57
	if stats.AverageScore != 57 {
		t.Errorf("averageScore = %d, want 57", stats.AverageScore)
	}
	if stats.BestScore != 90 {
		t.Errorf("bestScore = %d, want 90", stats.BestScore)
	}
	if stats.ActivitiesCompleted != 2 {
		t.Errorf("activitiesCompleted = %d, want 2", stats.ActivitiesCompleted)
	}
}

func TestGetLearningRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		sessions []int
		want     []string
	}{
		{
			name:     "new student gets practice and diversify advice",
			sessions: []int{70},
			want: []string{
				"继续练习基础动词，建议每天练习10-15分钟",
				"尝试不同的练习模式，全面提升技能",
			},
		},
		{
			name:     "low average triggers remediation",
			sessions: []int{40, 40, 40, 40, 40, 40},
			want: []string{
				"重点练习错误率高的动词，可以使用学习模式复习",
				"尝试不同的练习模式，全面提升技能",
			},
		},
		{
			name:     "high average suggests challenge mode",
			sessions: []int{90, 90, 90, 90, 90, 90},
			want: []string{
				"表现优秀！可以尝试挑战模式提高难度",
				"尝试不同的练习模式，全面提升技能",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			for _, points := range tt.sessions {
				s.RecordScore("小明", "matching", points, nil)
			}

			got := s.GetLearningRecommendations("小明")
			if len(got) != len(tt.want) {
				t.Fatalf("got %d recommendations, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("recommendation %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExportSnapshot(t *testing.T) {
	s := newTestStore()
	s.RecordScore("小明", "matching", 10, nil)

	snapshot := s.ExportSnapshot()
	if snapshot.Version != models.SnapshotVersion {
		t.Errorf("version = %q, want %q", snapshot.Version, models.SnapshotVersion)
	}
	if snapshot.ExportDate == "" {
		t.Error("expected exportDate to be set")
	}
	if _, ok := snapshot.Scores["小明"]; !ok {
		t.Error("expected exported scores to include 小明")
	}
}

func TestImportSnapshot(t *testing.T) {
	s := newTestStore()
	s.RecordScore("小明", "matching", 10, nil)

	// Missing scores field leaves the store untouched
	if err := s.ImportSnapshot([]byte(`{"exportDate":"2024-03-01"}`)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if err := s.ImportSnapshot([]byte(`not json`)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for malformed JSON, got %v", err)
	}
	if s.GetStudentScores("小明") == nil {
		t.Fatal("failed import must not modify the store")
	}

	other := newTestStore()
	other.RecordScore("小红", "challenge", 90, nil)
	blob, err := json.Marshal(other.ExportSnapshot())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if err := s.ImportSnapshot(blob); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	if s.GetStudentScores("小明") == nil {
		t.Error("existing student lost during import")
	}
	if s.GetStudentScores("小红") == nil {
		t.Error("imported student missing")
	}
}

func TestStorePersistsAcrossReload(t *testing.T) {
	kv := storage.NewMemoryStore()

	s := NewStore(kv)
	if _, err := s.RecordScore("小明", "matching", 10, nil); err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}

	reloaded := NewStore(kv)
	stats := reloaded.GetActivityScores("小明", "matching")
	if stats == nil || stats.TotalSessions != 1 {
		t.Errorf("expected reloaded store to contain the recorded session, got %+v", stats)
	}
}

func TestSanitizeStudentID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"小明", "小明"},
		{"student_01", "student_01"},
		{"anna-k", "anna-k"},
		{"bad id!", "badid"},
		{"名前@#¥%", "名前"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeStudentID(tt.in); got != tt.want {
			t.Errorf("SanitizeStudentID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
