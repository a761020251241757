package session

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"mapassist/pkg/game/mapdata"
)

type fakeFetcher struct {
	calls []mapdata.AreaID
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, area mapdata.AreaID) (*mapdata.LevelData, error) {
	f.calls = append(f.calls, area)
	if f.err != nil {
		return nil, f.err
	}
	return &mapdata.LevelData{Area: area, Grid: [][]int{{1}}}, nil
}

type countingCache struct{ n int }

func (c *countingCache) Invalidate() { c.n++ }

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestObserve_InvalidatesOnlyOnAreaChange(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := &countingCache{}
	tr := NewTracker(fetcher, cache, quietLogger())
	ctx := context.Background()

	steps := []mapdata.GameStateSnapshot{
		{PlayerX: 1, PlayerY: 1, Area: 2},
		{PlayerX: 2, PlayerY: 1, Area: 2},
		{PlayerX: 3, PlayerY: 1, Area: 3},
		{PlayerX: 4, PlayerY: 1, Area: 3},
	}
	for _, s := range steps {
		if err := tr.Observe(ctx, s); err != nil {
			t.Fatalf("Observe(%+v) error: %v", s, err)
		}
	}

	if cache.n != 2 {
		t.Errorf("invalidations = %d, want 2", cache.n)
	}
	if len(fetcher.calls) != 2 || fetcher.calls[0] != 2 || fetcher.calls[1] != 3 {
		t.Errorf("fetches = %v, want [2 3]", fetcher.calls)
	}
	level, state := tr.Current()
	if level.Area != 3 {
		t.Errorf("current area = %d, want 3", level.Area)
	}
	if state.PlayerX != 4 {
		t.Errorf("current player x = %d, want 4", state.PlayerX)
	}
	if tr.Changes() != 2 {
		t.Errorf("Changes() = %d, want 2", tr.Changes())
	}
}

func TestObserve_FetchErrorKeepsLevel(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := &countingCache{}
	tr := NewTracker(fetcher, cache, quietLogger())
	tr.SetLevel(&mapdata.LevelData{Area: 1})

	fetcher.err = errors.New("map server down")
	if err := tr.Observe(context.Background(), mapdata.GameStateSnapshot{Area: 4}); err == nil {
		t.Fatal("Observe() error = nil, want fetch error")
	}
	if level, _ := tr.Current(); level.Area != 1 {
		t.Errorf("current area = %d, want 1", level.Area)
	}
	if cache.n != 1 {
		t.Errorf("invalidations = %d, want 1 (SetLevel only)", cache.n)
	}
}

func TestObserve_WithoutFetcherOnlyTracksPosition(t *testing.T) {
	cache := &countingCache{}
	tr := NewTracker(nil, cache, quietLogger())
	tr.SetLevel(&mapdata.LevelData{Area: 1})

	if err := tr.Observe(context.Background(), mapdata.GameStateSnapshot{PlayerX: 9, Area: 7}); err != nil {
		t.Fatalf("Observe() error: %v", err)
	}
	level, state := tr.Current()
	if level.Area != 1 || state.PlayerX != 9 {
		t.Errorf("Current() = area %d x %d, want area 1 x 9", level.Area, state.PlayerX)
	}
}

func TestRun_StopsWhenUpdatesClose(t *testing.T) {
	fetcher := &fakeFetcher{}
	tr := NewTracker(fetcher, &countingCache{}, quietLogger())
	updates := make(chan mapdata.GameStateSnapshot, 2)
	updates <- mapdata.GameStateSnapshot{Area: 5}
	updates <- mapdata.GameStateSnapshot{Area: 6}
	close(updates)

	if err := tr.Run(context.Background(), updates); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if level, _ := tr.Current(); level == nil || level.Area != 6 {
		t.Errorf("current level = %+v, want area 6", level)
	}
}
