package server

import (
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/minimap"
	"mapassist/pkg/game/settings"
)

type fixedSource struct {
	level *mapdata.LevelData
	state mapdata.GameStateSnapshot
}

func (f fixedSource) Current() (*mapdata.LevelData, mapdata.GameStateSnapshot) {
	return f.level, f.state
}

func newTestServer(t *testing.T, level *mapdata.LevelData) (*httptest.Server, *minimap.Renderer) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	r := minimap.New(minimap.WithLogger(log))
	s := settings.Default()
	s.OutputSize = 0
	srv := httptest.NewServer(New(r, fixedSource{level: level}, s, log))
	t.Cleanup(srv.Close)
	return srv, r
}

func testLevel() *mapdata.LevelData {
	grid := make([][]int, 32)
	for y := range grid {
		grid[y] = make([]int, 48)
		for x := range grid[y] {
			grid[y][x] = 1
		}
	}
	return &mapdata.LevelData{
		Area:           2,
		Grid:           grid,
		AdjacentLevels: []mapdata.AdjacentLevel{{Area: 3, Exits: []image.Point{{30, 25}}}},
	}
}

func TestMinimap_ServesPNG(t *testing.T) {
	srv, _ := newTestServer(t, testLevel())

	resp, err := http.Get(srv.URL + URIMinimap)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 48, 32) {
		t.Errorf("bounds = %v, want 48x32", got)
	}
}

func TestMinimap_NoLevel(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + URIMinimap)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestAnchorAndInvalidate(t *testing.T) {
	srv, r := newTestServer(t, testLevel())

	resp, err := http.Get(srv.URL + URIMinimap)
	if err != nil {
		t.Fatalf("GET minimap: %v", err)
	}
	resp.Body.Close()

	var anchor anchorResponse
	resp, err = http.Get(srv.URL + URIAnchor)
	if err != nil {
		t.Fatalf("GET anchor: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&anchor); err != nil {
		t.Fatalf("decode anchor: %v", err)
	}
	resp.Body.Close()
	if anchor != (anchorResponse{X: 30, Y: 25}) {
		t.Errorf("anchor = %+v, want {30 25}", anchor)
	}

	resp, err = http.Post(srv.URL+URIInvalidate, "", nil)
	if err != nil {
		t.Fatalf("POST invalidate: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("invalidate status = %d, want 204", resp.StatusCode)
	}
	if got := r.LastLabelAnchor(); got != (image.Point{}) {
		t.Errorf("anchor after invalidate = %v, want (0,0)", got)
	}
}

func TestInvalidate_RejectsGet(t *testing.T) {
	srv, _ := newTestServer(t, testLevel())
	resp, err := http.Get(srv.URL + URIInvalidate)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		t.Error("GET /invalidate was accepted")
	}
}
