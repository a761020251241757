package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"mapassist/pkg/game/mapdata"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func gameServer(t *testing.T, messages ...string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer ws.Close()
		for _, m := range messages {
			if err := ws.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		ws.ReadMessage()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_KeepsLatestSnapshot(t *testing.T) {
	srv := gameServer(t,
		`{"playerX":1,"playerY":2,"area":1}`,
		`not json`,
		`{"playerX":5,"playerY":6,"area":2}`,
	)
	f := New("ws"+strings.TrimPrefix(srv.URL, "http"), quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}

	got, ok := f.Latest()
	if !ok {
		t.Fatal("Latest() reported no snapshot")
	}
	want := mapdata.GameStateSnapshot{PlayerX: 5, PlayerY: 6, Area: 2}
	if got != want {
		t.Errorf("Latest() = %+v, want %+v", got, want)
	}

	select {
	case u := <-f.Updates():
		if u != want {
			t.Errorf("pending update = %+v, want %+v", u, want)
		}
	default:
		t.Error("no pending update")
	}
}

func TestRunOnce_DialFailure(t *testing.T) {
	f := New("ws://127.0.0.1:1/none", quietLogger())
	if err := f.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce() error = nil, want dial error")
	}
}

func TestRun_ReconnectsAfterDrop(t *testing.T) {
	var conns atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		n := conns.Add(1)
		ws.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf(`{"playerX":%d,"area":1}`, n)))
		// drop without a close frame
		ws.Close()
	}))
	t.Cleanup(srv.Close)

	f := New("ws"+strings.TrimPrefix(srv.URL, "http"), quietLogger())
	f.MinBackoff = 10 * time.Millisecond
	f.MaxBackoff = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		if snap, ok := f.Latest(); ok && snap.PlayerX >= 2 {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("no snapshot from a second connection; %d connections", conns.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestRun_KeepsRetryingUntilCancelled(t *testing.T) {
	f := New("ws://127.0.0.1:1/none", quietLogger())
	f.MinBackoff = time.Millisecond
	f.MaxBackoff = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := f.Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

func TestLatest_BeforeAnySnapshot(t *testing.T) {
	if _, ok := New("ws://unused", nil).Latest(); ok {
		t.Error("Latest() ok = true before any snapshot")
	}
}
