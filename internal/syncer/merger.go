// Package syncer reconciles local and remote score snapshots and drives
// the periodic upload/download cycle against the remote sync endpoint.
package syncer

import (
	"sort"
	"time"

	"verblearn/internal/models"
	"verblearn/internal/score"
)

// Merge reconciles two student mappings. Students present on one side only
// are taken as-is. For students on both sides the profile with the later
// lastActive wins wholesale, activity session lists are unioned and
// de-duplicated by exact timestamp (local wins a duplicate), and every
// merged activity's statistics are recomputed from the merged sessions.
// Session order after a merge is newest first.
func Merge(local, remote map[string]*models.StudentRecord) map[string]*models.StudentRecord {
	merged := make(map[string]*models.StudentRecord, len(local)+len(remote))

	for id, record := range local {
		merged[id] = record
	}

	for id, remoteRecord := range remote {
		localRecord, ok := merged[id]
		if !ok {
			merged[id] = remoteRecord
			continue
		}
		merged[id] = mergeStudent(localRecord, remoteRecord)
	}

	return merged
}

func mergeStudent(local, remote *models.StudentRecord) *models.StudentRecord {
	profile := local.Profile
	if parseLastActive(remote.Profile.LastActive).After(parseLastActive(local.Profile.LastActive)) {
		profile = remote.Profile
	}

	merged := &models.StudentRecord{
		Profile:    profile,
		Activities: make(map[string]*models.ActivityStats),
	}

	for activity, stats := range local.Activities {
		remoteStats, ok := remote.Activities[activity]
		if !ok {
			merged.Activities[activity] = stats
			continue
		}
		combined := score.RecalculateStats(unionSessions(stats.Sessions, remoteStats.Sessions))
		merged.Activities[activity] = &combined
	}
	for activity, stats := range remote.Activities {
		if _, ok := local.Activities[activity]; !ok {
			merged.Activities[activity] = stats
		}
	}

	return merged
}

// unionSessions concatenates both sides dropping exact-timestamp
// duplicates, local side first, then sorts newest first. ISO-8601
// timestamps order lexically, so string comparison suffices.
func unionSessions(local, remote []models.Session) []models.Session {
	seen := make(map[string]bool, len(local)+len(remote))
	var out []models.Session
	for _, s := range append(append([]models.Session{}, local...), remote...) {
		if seen[s.Timestamp] {
			continue
		}
		seen[s.Timestamp] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func parseLastActive(s string) time.Time {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
