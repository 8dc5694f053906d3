// Package score persists and queries per-student activity results: session
// history, aggregate statistics, recommendations, and snapshot export/import.
package score

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"verblearn/internal/models"
	"verblearn/internal/storage"
)

// Store holds the nested student -> activity -> session mapping. The
// in-memory state is authoritative; persistence failures are logged and the
// next successful save catches up.
type Store struct {
	mu       sync.Mutex
	kv       storage.Store
	scores   map[string]*models.StudentRecord
	now      func() time.Time
	onChange func()
}

// NewStore loads any previously saved scores from kv. A corrupt saved blob
// is logged and replaced with an empty store.
func NewStore(kv storage.Store) *Store {
	s := &Store{
		kv:     kv,
		scores: make(map[string]*models.StudentRecord),
		now:    time.Now,
	}
	s.load()
	return s
}

// OnChange registers a callback invoked after every successful score
// recording. Used to trigger remote sync uploads.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Store) load() {
	raw, err := s.kv.Get(storage.KeyScores)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Error loading scores: %v", err)
		}
		return
	}
	var scores map[string]*models.StudentRecord
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		log.Printf("Error loading scores: %v", err)
		return
	}
	if scores != nil {
		s.scores = scores
	}
}

// persist writes the current state to the key-value store. Failures are
// logged, never returned: the in-memory state stays authoritative.
func (s *Store) persist() {
	raw, err := json.Marshal(s.scores)
	if err != nil {
		log.Printf("Error saving scores: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyScores, string(raw)); err != nil {
		log.Printf("Error saving scores: %v", err)
	}
}

// EnsureProfile creates the student record on first login for a given ID.
func (s *Store) EnsureProfile(studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureProfileLocked(studentID)
}

func (s *Store) ensureProfileLocked(studentID string) *models.StudentRecord {
	record, ok := s.scores[studentID]
	if ok {
		return record
	}
	now := models.Timestamp(s.now())
	record = &models.StudentRecord{
		Profile: models.StudentProfile{
			ID:          studentID,
			DisplayName: studentID,
			CreatedAt:   now,
			LastActive:  now,
		},
		Activities: make(map[string]*models.ActivityStats),
	}
	s.scores[studentID] = record
	s.persist()
	return record
}

// RecordScore appends a session for the student and activity, recomputes the
// activity statistics, updates lastActive and persists. Returns
// ErrNoActiveStudent when studentID is empty.
func (s *Store) RecordScore(studentID, activity string, points int, details map[string]string) (models.Session, error) {
	if studentID == "" {
		return models.Session{}, ErrNoActiveStudent
	}

	s.mu.Lock()
	record := s.ensureProfileLocked(studentID)

	stats, ok := record.Activities[activity]
	if !ok {
		stats = &models.ActivityStats{}
		record.Activities[activity] = stats
	}

	session := models.Session{
		Score:     points,
		Timestamp: models.Timestamp(s.now()),
		Details:   details,
	}
	*stats = RecalculateStats(append(stats.Sessions, session))
	record.Profile.LastActive = session.Timestamp

	s.persist()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return session, nil
}

// GetStudentScores returns the record for a student, or nil if none exists.
func (s *Store) GetStudentScores(studentID string) *models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.scores[studentID]
	if !ok {
		return nil
	}
	return cloneRecord(record)
}

// GetActivityScores returns one activity's statistics for a student, or nil.
func (s *Store) GetActivityScores(studentID, activity string) *models.ActivityStats {
	record := s.GetStudentScores(studentID)
	if record == nil {
		return nil
	}
	return record.Activities[activity]
}

// GetOverallStats aggregates a student's statistics across all activities.
// Returns nil if the student has no record.
func (s *Store) GetOverallStats(studentID string) *models.OverallStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.scores[studentID]
	if !ok {
		return nil
	}

	totalSessions := 0
	totalScore := 0
	best := 0
	for _, stats := range record.Activities {
		totalSessions += stats.TotalSessions
		totalScore += stats.TotalScore
		if stats.BestScore > best {
			best = stats.BestScore
		}
	}

	overall := &models.OverallStats{
		TotalSessions:       totalSessions,
		BestScore:           best,
		ActivitiesCompleted: len(record.Activities),
		Profile:             record.Profile,
	}
	if totalSessions > 0 {
		overall.AverageScore = roundHalfUp(float64(totalScore) / float64(totalSessions))
	}
	return overall
}

// GetLearningRecommendations returns study suggestions derived from overall
// statistics. The rule order is fixed; the two average-score rules are
// mutually exclusive.
func (s *Store) GetLearningRecommendations(studentID string) []string {
	stats := s.GetOverallStats(studentID)
	if stats == nil {
		return nil
	}

	var recommendations []string
	if stats.TotalSessions < 5 {
		recommendations = append(recommendations, "继续练习基础动词，建议每天练习10-15分钟")
	}
	if stats.AverageScore < 60 {
		recommendations = append(recommendations, "重点练习错误率高的动词，可以使用学习模式复习")
	} else if stats.AverageScore > 80 {
		recommendations = append(recommendations, "表现优秀！可以尝试挑战模式提高难度")
	}
	if stats.ActivitiesCompleted < 3 {
		recommendations = append(recommendations, "尝试不同的练习模式，全面提升技能")
	}
	return recommendations
}

// AllStudentIDs lists every student with a record.
func (s *Store) AllStudentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.scores))
	for id := range s.scores {
		ids = append(ids, id)
	}
	return ids
}

// HasStudent reports whether a record exists for the ID.
func (s *Store) HasStudent(studentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scores[studentID]
	return ok
}

// ClearAll drops every record and persists the empty store.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = make(map[string]*models.StudentRecord)
	s.persist()
}

// ExportSnapshot returns the export document for the full store.
func (s *Store) ExportSnapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Snapshot{
		ExportDate: models.Timestamp(s.now()),
		Version:    models.SnapshotVersion,
		Scores:     cloneScores(s.scores),
	}
}

// ImportSnapshot merges a previously exported document into the store.
// Matching student keys are replaced wholesale. A blob without a scores
// field fails with ErrInvalidFormat and leaves the store untouched.
func (s *Store) ImportSnapshot(blob []byte) error {
	var snapshot models.Snapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return ErrInvalidFormat
	}
	if snapshot.Scores == nil {
		return ErrInvalidFormat
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range snapshot.Scores {
		s.scores[id] = record
	}
	s.persist()
	return nil
}

// Scores returns a deep copy of the full student mapping, for sync merges.
func (s *Store) Scores() map[string]*models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneScores(s.scores)
}

// ReplaceScores swaps in a merged mapping and persists it.
func (s *Store) ReplaceScores(scores map[string]*models.StudentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = cloneScores(scores)
	s.persist()
}

func cloneScores(scores map[string]*models.StudentRecord) map[string]*models.StudentRecord {
	out := make(map[string]*models.StudentRecord, len(scores))
	for id, record := range scores {
		out[id] = cloneRecord(record)
	}
	return out
}

func cloneRecord(record *models.StudentRecord) *models.StudentRecord {
	clone := &models.StudentRecord{
		Profile:    record.Profile,
		Activities: make(map[string]*models.ActivityStats, len(record.Activities)),
	}
	for activity, stats := range record.Activities {
		statsCopy := *stats
		statsCopy.Sessions = make([]models.Session, len(stats.Sessions))
		copy(statsCopy.Sessions, stats.Sessions)
		clone.Activities[activity] = &statsCopy
	}
	return clone
}
