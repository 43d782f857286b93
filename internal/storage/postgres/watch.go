package postgres

import (
	"encoding/json"
	"hash/fnv"
	"sync"
	"time"

	"github.com/butterslam/vibe-1/internal/constants"
	"github.com/butterslam/vibe-1/internal/logger"
	"github.com/butterslam/vibe-1/internal/models"
)

// Subscribe polls the habits table and invokes onSnapshot with the full
// collection whenever it changes. Snapshots replace subscriber state
// wholesale; there is no field-level merging. The returned cancel function
// stops the poll loop and may be called more than once.
func (s *Store) Subscribe(ownerID string, onSnapshot func([]models.Habit)) (func(), error) {
	// Deliver the initial snapshot synchronously so subscribers start from
	// the current remote state.
	habits, err := s.GetAllHabits(ownerID)
	if err != nil {
		return nil, err
	}
	onSnapshot(habits)
	lastSum := fingerprint(habits)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(constants.WatchPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				habits, err := s.GetAllHabits(ownerID)
				if err != nil {
					logger.Warn("Habit snapshot poll failed", "error", err)
					continue
				}
				sum := fingerprint(habits)
				if sum == lastSum {
					continue
				}
				lastSum = sum
				onSnapshot(habits)
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() { close(done) })
	}
	return cancel, nil
}

func fingerprint(habits []models.Habit) uint64 {
	h := fnv.New64a()
	enc := json.NewEncoder(h)
	for _, habit := range habits {
		// Encoding cannot fail for these plain struct fields.
		_ = enc.Encode(habit)
	}
	return h.Sum64()
}
