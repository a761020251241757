// Package feed follows the game's live state over a websocket. Every text
// message is one JSON GameStateSnapshot; the feed keeps only the newest.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"mapassist/pkg/game/mapdata"
)

// Reconnect delays used by Run.
const (
	DefaultMinBackoff = 500 * time.Millisecond
	DefaultMaxBackoff = 30 * time.Second
)

// Feed holds the latest snapshot received from the game.
type Feed struct {
	URL string
	Log logrus.FieldLogger
	// MinBackoff is the first reconnect delay; it doubles up to MaxBackoff
	// while dials keep failing.
	MinBackoff time.Duration
	MaxBackoff time.Duration

	mu      sync.RWMutex
	latest  mapdata.GameStateSnapshot
	seen    bool
	updates chan mapdata.GameStateSnapshot
}

// New creates a feed for the websocket at url.
func New(url string, log logrus.FieldLogger) *Feed {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Feed{
		URL:        url,
		Log:        log,
		MinBackoff: DefaultMinBackoff,
		MaxBackoff: DefaultMaxBackoff,
		updates:    make(chan mapdata.GameStateSnapshot, 1),
	}
}

// Latest returns the newest snapshot and whether one has arrived yet.
func (f *Feed) Latest() (mapdata.GameStateSnapshot, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.seen
}

// Updates delivers snapshots as they arrive. A slow reader only ever sees the
// newest one; older pending snapshots are dropped.
func (f *Feed) Updates() <-chan mapdata.GameStateSnapshot {
	return f.updates
}

// Run follows the game until ctx is done. A failed dial or a dropped
// connection is logged and retried after a delay that doubles from
// MinBackoff to MaxBackoff and resets once a connection delivers a message.
// Run only returns when ctx is done, and then returns nil.
func (f *Feed) Run(ctx context.Context) error {
	minDelay, maxDelay := f.MinBackoff, f.MaxBackoff
	if minDelay <= 0 {
		minDelay = DefaultMinBackoff
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	delay := minDelay
	for {
		received, err := f.connect(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if received {
			delay = minDelay
		}
		entry := f.Log.WithFields(logrus.Fields{"url": f.URL, "retry": delay})
		if err != nil {
			entry.WithError(err).Warn("Game feed lost")
		} else {
			entry.Info("Game feed closed")
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}

// RunOnce dials the game and reads snapshots until ctx is done or the
// connection drops. A normal close from the game returns nil.
func (f *Feed) RunOnce(ctx context.Context) error {
	_, err := f.connect(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// connect runs one connection and reports whether any message arrived on it.
func (f *Feed) connect(ctx context.Context) (received bool, err error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, f.URL, nil)
	if err != nil {
		return false, fmt.Errorf("dial feed %s: %w", f.URL, err)
	}
	f.Log.WithField("url", f.URL).Info("Connected to game feed")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ws.Close()
		case <-done:
		}
	}()
	defer ws.Close()

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return received, nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return received, nil
			}
			return received, fmt.Errorf("read feed: %w", err)
		}
		received = true
		f.handle(message)
	}
}

func (f *Feed) handle(message []byte) {
	var snap mapdata.GameStateSnapshot
	if err := json.Unmarshal(message, &snap); err != nil {
		f.Log.WithError(err).Warn("Dropping malformed snapshot")
		return
	}
	f.publish(snap)
}

func (f *Feed) publish(snap mapdata.GameStateSnapshot) {
	f.mu.Lock()
	f.latest, f.seen = snap, true
	f.mu.Unlock()

	for {
		select {
		case f.updates <- snap:
			return
		default:
		}
		select {
		case <-f.updates:
		default:
		}
	}
}
