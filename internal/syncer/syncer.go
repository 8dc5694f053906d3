package syncer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"verblearn/internal/models"
	"verblearn/internal/score"
	"verblearn/internal/storage"
)

const (
	autoSyncInterval = 30 * time.Second
	uploadDebounce   = time.Second
)

// Syncer keeps the local score store reconciled with the remote endpoint:
// manual upload/download, a periodic upload of local changes, and a
// debounced upload after every recorded score.
type Syncer struct {
	store  *score.Store
	kv     storage.Store
	remote Remote

	deviceID string
	interval time.Duration
	debounce time.Duration
	now      func() time.Time

	mu            sync.Mutex
	stopCh        chan struct{}
	debounceTimer *time.Timer
}

// New builds a syncer. The device ID is created once per installation and
// persisted in the key-value store.
func New(store *score.Store, kv storage.Store, remote Remote) *Syncer {
	s := &Syncer{
		store:    store,
		kv:       kv,
		remote:   remote,
		interval: autoSyncInterval,
		debounce: uploadDebounce,
		now:      time.Now,
	}
	s.deviceID = s.loadDeviceID()
	return s
}

// DeviceID returns this installation's stable device identifier.
func (s *Syncer) DeviceID() string {
	return s.deviceID
}

func (s *Syncer) loadDeviceID() string {
	if id, err := s.kv.Get(storage.KeyDeviceID); err == nil && id != "" {
		return id
	}
	id := "device_" + uuid.NewString()
	if err := s.kv.Set(storage.KeyDeviceID, id); err != nil {
		log.Printf("Error saving device ID: %v", err)
	}
	return id
}

// Upload pushes the full local score mapping to the remote endpoint. An
// empty local store is not uploaded.
func (s *Syncer) Upload(ctx context.Context) error {
	scores := s.store.Scores()
	if len(scores) == 0 {
		return nil
	}

	snapshot := models.RemoteSnapshot{
		Scores: scores,
		Metadata: models.SyncMetadata{
			DeviceID:   s.deviceID,
			LastUpdate: models.Timestamp(s.now()),
			Version:    models.SnapshotVersion,
		},
	}
	if err := s.remote.Upload(ctx, snapshot); err != nil {
		return err
	}
	s.markSynced()
	return nil
}

// Download fetches the remote snapshot and merges it into the local store.
// An absent remote document is not an error.
func (s *Syncer) Download(ctx context.Context) error {
	snapshot, err := s.remote.Fetch(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil || snapshot.Scores == nil {
		return nil
	}

	merged := Merge(s.store.Scores(), snapshot.Scores)
	s.store.ReplaceScores(merged)
	s.markSynced()
	return nil
}

func (s *Syncer) markSynced() {
	if err := s.kv.Set(storage.KeyLastSyncTime, models.Timestamp(s.now())); err != nil {
		log.Printf("Error saving last sync time: %v", err)
	}
}

// AutoSyncEnabled reports the persisted toggle; the default is enabled.
func (s *Syncer) AutoSyncEnabled() bool {
	value, err := s.kv.Get(storage.KeyAutoSync)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Error reading auto-sync flag: %v", err)
		}
		return true
	}
	return value != "false"
}

// SetAutoSync persists the toggle and starts or stops the background loop.
func (s *Syncer) SetAutoSync(enabled bool) {
	value := "false"
	if enabled {
		value = "true"
	}
	if err := s.kv.Set(storage.KeyAutoSync, value); err != nil {
		log.Printf("Error saving auto-sync flag: %v", err)
	}
	if enabled {
		s.StartAutoSync()
	} else {
		s.StopAutoSync()
	}
}

// StartAutoSync launches the periodic check that uploads when local data
// changed since the last successful sync. Restarting is safe.
func (s *Syncer) StartAutoSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	s.stopCh = stopCh

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if s.hasLocalChanges() {
					ctx, cancel := context.WithTimeout(context.Background(), syncRequestTimeout)
					if err := s.Upload(ctx); err != nil {
						log.Printf("Auto-sync upload failed: %v", err)
					}
					cancel()
				}
			case <-stopCh:
				return
			}
		}
	}()
}

// StopAutoSync halts the background loop and cancels a pending debounced
// upload.
func (s *Syncer) StopAutoSync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}

// OnScoreRecorded marks the local data dirty and, when auto-sync is on,
// schedules a debounced upload shortly after the write settles.
func (s *Syncer) OnScoreRecorded() {
	if err := s.kv.Set(storage.KeyLocalUpdate, models.Timestamp(s.now())); err != nil {
		log.Printf("Error saving local update time: %v", err)
	}
	if !s.AutoSyncEnabled() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncRequestTimeout)
		defer cancel()
		if err := s.Upload(ctx); err != nil {
			log.Printf("Upload after score recording failed: %v", err)
		}
	})
}

// hasLocalChanges reports whether a score was recorded after the last
// successful sync. A store that never synced counts as changed.
func (s *Syncer) hasLocalChanges() bool {
	lastSync, err := s.kv.Get(storage.KeyLastSyncTime)
	if err != nil {
		return true
	}
	lastUpdate, err := s.kv.Get(storage.KeyLocalUpdate)
	if err != nil {
		return false
	}

	syncTime, err := models.ParseTimestamp(lastSync)
	if err != nil {
		return true
	}
	updateTime, err := models.ParseTimestamp(lastUpdate)
	if err != nil {
		return false
	}
	return updateTime.After(syncTime)
}
