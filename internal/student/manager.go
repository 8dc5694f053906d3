// Package student tracks who is currently logged in. Login is a free-text
// student ID, sanitized and persisted; there is no authentication.
package student

import (
	"errors"
	"log"
	"strings"

	"verblearn/internal/score"
	"verblearn/internal/storage"
)

// ErrEmptyStudentID is returned when a login attempt leaves no usable ID
// after trimming and sanitizing.
var ErrEmptyStudentID = errors.New("student: student ID must not be empty")

// Manager holds the current student and the roster of known students.
type Manager struct {
	kv      storage.Store
	scores  *score.Store
	current string
}

// NewManager restores the previously logged-in student, if any.
func NewManager(kv storage.Store, scores *score.Store) *Manager {
	m := &Manager{kv: kv, scores: scores}
	if saved, err := kv.Get(storage.KeyCurrentUser); err == nil {
		m.current = saved
	}
	return m
}

// Current returns the active student ID, empty when nobody is logged in.
func (m *Manager) Current() string {
	return m.current
}

// LoggedIn reports whether a student is active.
func (m *Manager) LoggedIn() bool {
	return m.current != ""
}

// Login sanitizes the raw ID, makes it the active student and creates its
// profile on first use. The cleaned ID is returned.
func (m *Manager) Login(raw string) (string, error) {
	cleaned := score.SanitizeStudentID(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", ErrEmptyStudentID
	}

	m.current = cleaned
	if err := m.kv.Set(storage.KeyCurrentUser, cleaned); err != nil {
		log.Printf("Error saving current student: %v", err)
	}
	m.scores.EnsureProfile(cleaned)
	return cleaned, nil
}

// Logout clears the active student.
func (m *Manager) Logout() {
	m.current = ""
	if err := m.kv.Remove(storage.KeyCurrentUser); err != nil {
		log.Printf("Error clearing current student: %v", err)
	}
}

// SwitchTo activates an existing student. Unknown IDs are rejected.
func (m *Manager) SwitchTo(studentID string) bool {
	if !m.scores.HasStudent(studentID) {
		return false
	}
	_, err := m.Login(studentID)
	return err == nil
}

// KnownStudents lists every student with a recorded profile.
func (m *Manager) KnownStudents() []string {
	return m.scores.AllStudentIDs()
}
