// Package session follows the player between levels. When the reported area
// changes it fetches the new level and invalidates the minimap cache before
// the next frame can be drawn from it.
package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"mapassist/pkg/game/mapdata"
)

// Fetcher loads a level by area.
type Fetcher interface {
	Fetch(ctx context.Context, area mapdata.AreaID) (*mapdata.LevelData, error)
}

// Invalidator drops cached level state.
type Invalidator interface {
	Invalidate()
}

// Tracker holds the current level and the latest player state.
type Tracker struct {
	fetcher Fetcher
	cache   Invalidator
	log     logrus.FieldLogger

	mu      sync.RWMutex
	level   *mapdata.LevelData
	state   mapdata.GameStateSnapshot
	changes int
}

// NewTracker creates a tracker that refetches through fetcher and invalidates
// cache on every level change.
func NewTracker(fetcher Fetcher, cache Invalidator, log logrus.FieldLogger) *Tracker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracker{fetcher: fetcher, cache: cache, log: log}
}

// SetLevel installs a level directly, as when it was loaded from a file.
func (t *Tracker) SetLevel(level *mapdata.LevelData) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.install(level)
}

// Current returns the level and player state to render. The level is nil
// until one has been loaded.
func (t *Tracker) Current() (*mapdata.LevelData, mapdata.GameStateSnapshot) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.level, t.state
}

// Changes counts the level changes seen so far.
func (t *Tracker) Changes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changes
}

// Observe records a snapshot. If it moves the player to another area the new
// level is fetched; on a fetch error the old level is kept and the error
// returned so the next snapshot retries.
func (t *Tracker) Observe(ctx context.Context, snap mapdata.GameStateSnapshot) error {
	t.mu.Lock()
	t.state = snap
	needsLevel := snap.Area != 0 && (t.level == nil || t.level.Area != snap.Area)
	t.mu.Unlock()
	if !needsLevel || t.fetcher == nil {
		return nil
	}

	level, err := t.fetcher.Fetch(ctx, snap.Area)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.install(level)
	t.log.WithFields(logrus.Fields{
		"area":  level.Area,
		"level": t.changes,
	}).Info("Level changed")
	return nil
}

// Run observes snapshots from updates until ctx is done or updates closes.
func (t *Tracker) Run(ctx context.Context, updates <-chan mapdata.GameStateSnapshot) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if err := t.Observe(ctx, snap); err != nil {
				t.log.WithError(err).WithField("area", snap.Area).Warn("Could not load level")
			}
		}
	}
}

func (t *Tracker) install(level *mapdata.LevelData) {
	if t.cache != nil {
		t.cache.Invalidate()
	}
	t.level = level
	t.changes++
}
