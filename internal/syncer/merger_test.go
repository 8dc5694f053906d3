package syncer

import (
	"reflect"
	"sort"
	"testing"

	"verblearn/internal/models"
	"verblearn/internal/score"
)

func record(lastActive string, sessions map[string][]models.Session) *models.StudentRecord {
	r := &models.StudentRecord{
		Profile: models.StudentProfile{
			ID:          "小明",
			DisplayName: "小明",
			CreatedAt:   "2024-01-01T00:00:00.000Z",
			LastActive:  lastActive,
		},
		Activities: make(map[string]*models.ActivityStats),
	}
	for activity, list := range sessions {
		stats := score.RecalculateStats(list)
		r.Activities[activity] = &stats
	}
	return r
}

func session(ts string, points int) models.Session {
	return models.Session{Score: points, Timestamp: ts}
}

func TestMergeDisjointStudents(t *testing.T) {
	local := map[string]*models.StudentRecord{
		"小明": record("2024-03-01T10:00:00.000Z", nil),
	}
	remote := map[string]*models.StudentRecord{
		"小红": record("2024-03-02T10:00:00.000Z", nil),
	}

	merged := Merge(local, remote)
	if len(merged) != 2 {
		t.Fatalf("expected 2 students, got %d", len(merged))
	}
	if merged["小明"] != local["小明"] || merged["小红"] != remote["小红"] {
		t.Error("one-sided students should be taken as-is")
	}
}

func TestMergeLatestProfileWins(t *testing.T) {
	local := record("2024-03-01T10:00:00.000Z", nil)
	local.Profile.DisplayName = "old name"
	remote := record("2024-03-05T10:00:00.000Z", nil)
	remote.Profile.DisplayName = "new name"

	merged := Merge(
		map[string]*models.StudentRecord{"小明": local},
		map[string]*models.StudentRecord{"小明": remote},
	)
	if merged["小明"].Profile.DisplayName != "new name" {
		t.Errorf("later lastActive should win the profile, got %q", merged["小明"].Profile.DisplayName)
	}

	// Ties keep the local side
	tied := Merge(
		map[string]*models.StudentRecord{"小明": local},
		map[string]*models.StudentRecord{"小明": record("2024-03-01T10:00:00.000Z", nil)},
	)
	if tied["小明"].Profile.DisplayName != "old name" {
		t.Errorf("tied lastActive should keep local profile, got %q", tied["小明"].Profile.DisplayName)
	}
}

func TestMergeUnionsAndRecomputes(t *testing.T) {
	local := record("2024-03-01T10:00:00.000Z", map[string][]models.Session{
		"matching": {
			session("2024-03-01T09:00:00.000Z", 10),
			session("2024-03-01T09:05:00.000Z", 20),
		},
	})
	remote := record("2024-03-02T10:00:00.000Z", map[string][]models.Session{
		"matching": {
			session("2024-03-01T09:05:00.000Z", 20), // duplicate timestamp
			session("2024-03-01T09:10:00.000Z", 40),
		},
		"challenge": {
			session("2024-03-01T12:00:00.000Z", 90),
		},
	})

	merged := Merge(
		map[string]*models.StudentRecord{"小明": local},
		map[string]*models.StudentRecord{"小明": remote},
	)

	matching := merged["小明"].Activities["matching"]
	if matching.TotalSessions != 3 {
		t.Fatalf("expected 3 de-duplicated sessions, got %d", matching.TotalSessions)
	}
	if matching.TotalScore != 70 || matching.BestScore != 40 {
		t.Errorf("recomputed stats wrong: %+v", matching)
	}
	// 70/3 = 23.33 rounds to 23
	if matching.AverageScore != 23 {
		t.Errorf("averageScore = %d, want 23", matching.AverageScore)
	}

	// Newest first
	for i := 1; i < len(matching.Sessions); i++ {
		if matching.Sessions[i-1].Timestamp < matching.Sessions[i].Timestamp {
			t.Errorf("sessions not sorted newest first: %v", matching.Sessions)
		}
	}

	// Remote-only activity carried over
	if merged["小明"].Activities["challenge"] == nil {
		t.Error("remote-only activity missing after merge")
	}
}

func TestMergeIdempotent(t *testing.T) {
	s := map[string]*models.StudentRecord{
		"小明": record("2024-03-01T10:00:00.000Z", map[string][]models.Session{
			"matching": {
				session("2024-03-01T09:05:00.000Z", 20),
				session("2024-03-01T09:00:00.000Z", 10),
			},
		}),
	}

	merged := Merge(s, s)
	got := merged["小明"].Activities["matching"]
	want := s["小明"].Activities["matching"]
	if got.TotalSessions != want.TotalSessions ||
		got.TotalScore != want.TotalScore ||
		got.BestScore != want.BestScore ||
		got.AverageScore != want.AverageScore {
		t.Errorf("merge(S, S) changed stats: got %+v, want %+v", got, want)
	}
}

func TestMergeCommutativeOnSessionSets(t *testing.T) {
	a := map[string]*models.StudentRecord{
		"小明": record("2024-03-01T10:00:00.000Z", map[string][]models.Session{
			"matching": {
				session("2024-03-01T09:00:00.000Z", 10),
				session("2024-03-01T09:05:00.000Z", 20),
			},
		}),
	}
	b := map[string]*models.StudentRecord{
		"小明": record("2024-03-02T10:00:00.000Z", map[string][]models.Session{
			"matching": {
				session("2024-03-01T09:10:00.000Z", 30),
				session("2024-03-01T09:05:00.000Z", 20),
			},
		}),
	}

	ab := Merge(a, b)["小明"].Activities["matching"].Sessions
	ba := Merge(b, a)["小明"].Activities["matching"].Sessions

	timestamps := func(sessions []models.Session) []string {
		var out []string
		for _, s := range sessions {
			out = append(out, s.Timestamp)
		}
		sort.Strings(out)
		return out
	}
	if !reflect.DeepEqual(timestamps(ab), timestamps(ba)) {
		t.Errorf("merge not commutative on session sets: %v vs %v", timestamps(ab), timestamps(ba))
	}
}
