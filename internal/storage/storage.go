// Package storage provides the key-value persistence layer the rest of the
// application saves its state through. Values are opaque strings; callers
// handle their own JSON encoding.
package storage

import "errors"

// Well-known storage keys.
const (
	KeyScores       = "verbLearningScores"
	KeyCurrentUser  = "currentStudent"
	KeyHighScore    = "highScore"
	KeySettings     = "settings"
	KeyDeviceID     = "deviceId"
	KeyLastSyncTime = "lastSyncTime"
	KeyLocalUpdate  = "lastLocalUpdate"
	KeyAutoSync     = "autoSyncEnabled"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence contract. Implementations must treat Set as an
// upsert and Remove of a missing key as a no-op.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
