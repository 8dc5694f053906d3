package storage

import (
	"database/sql"
	"errors"

	"verblearn/internal/database"
)

// KVRepository is the SQL-backed Store implementation.
type KVRepository struct {
	db *database.DB
}

func NewKVRepository(db *database.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves a value by key
func (r *KVRepository) Get(key string) (string, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

// Set updates or inserts a value
func (r *KVRepository) Set(key, value string) error {
	query := r.db.Dialect.UpsertKV()
	_, err := r.db.Exec(query, key, value)
	return err
}

// Remove deletes a key. Removing a missing key is not an error.
func (r *KVRepository) Remove(key string) error {
	query := `DELETE FROM kv_store WHERE key = ?`
	_, err := r.db.Exec(query, key)
	return err
}
