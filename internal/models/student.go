package models

// StudentProfile holds per-student metadata. Created on first login for a
// given ID; LastActive is updated on every score-recording event.
type StudentProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
	LastActive  string `json:"lastActive"`
}

// StudentRecord is everything stored for one student: the profile plus a
// mapping of activity name to accumulated statistics.
type StudentRecord struct {
	Profile    StudentProfile            `json:"profile"`
	Activities map[string]*ActivityStats `json:"activities"`
}

// Snapshot is the export/import document for the full score store.
type Snapshot struct {
	ExportDate string                    `json:"exportDate"`
	Version    string                    `json:"version"`
	Scores     map[string]*StudentRecord `json:"scores"`
}

// SnapshotVersion is the wire version written into exports and sync uploads.
const SnapshotVersion = "1.0"
