// Package server exposes the rendered minimap over HTTP for overlays that
// cannot link the renderer directly.
package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"

	"github.com/matryer/way"
	"github.com/sirupsen/logrus"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/settings"
)

const (
	URIMinimap    = "/minimap.png"
	URIInvalidate = "/invalidate"
	URIAnchor     = "/anchor"
)

// Source supplies the level and player state for a frame.
type Source interface {
	Current() (*mapdata.LevelData, mapdata.GameStateSnapshot)
}

// Renderer draws frames and owns the background cache.
type Renderer interface {
	Render(level *mapdata.LevelData, state mapdata.GameStateSnapshot, s settings.RenderSettings) *image.RGBA
	Invalidate()
	LastLabelAnchor() image.Point
}

// Server serves minimap frames.
type Server struct {
	router   *way.Router
	renderer Renderer
	source   Source
	settings settings.RenderSettings
	log      logrus.FieldLogger
}

// New builds a server and its routes.
func New(renderer Renderer, source Source, s settings.RenderSettings, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	srv := &Server{renderer: renderer, source: source, settings: s, log: log}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URIMinimap, s.handleMinimap)
	s.router.HandleFunc("POST", URIInvalidate, s.handleInvalidate)
	s.router.HandleFunc("GET", URIAnchor, s.handleAnchor)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleMinimap(w http.ResponseWriter, r *http.Request) {
	level, state := s.source.Current()
	if level == nil {
		http.Error(w, "no level loaded", http.StatusServiceUnavailable)
		return
	}
	frame := s.renderer.Render(level, state, s.settings)
	if frame.Bounds().Empty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		s.log.WithError(err).Error("Encoding minimap frame")
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	s.renderer.Invalidate()
	s.log.Debug("Minimap cache invalidated over HTTP")
	w.WriteHeader(http.StatusNoContent)
}

type anchorResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	p := s.renderer.LastLabelAnchor()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(anchorResponse{X: p.X, Y: p.Y})
}
