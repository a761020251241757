package settings

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.RotationAngle != 53 {
		t.Errorf("RotationAngle = %v, want 53", s.RotationAngle)
	}
	if s.MaxWaypointArrows != 1 {
		t.Errorf("MaxWaypointArrows = %d, want 1", s.MaxWaypointArrows)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`{"outputSize": 300, "rotate": true, "colors": {"player": "#ff000080", "label": "00ff00"}}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.OutputSize != 300 || !s.Rotate {
		t.Errorf("OutputSize/Rotate = %d/%v, want 300/true", s.OutputSize, s.Rotate)
	}
	if want := (color.RGBA{128, 0, 0, 128}); s.Colors.Player != want {
		t.Errorf("Player = %v, want %v", s.Colors.Player, want)
	}
	if want := (color.RGBA{0, 255, 0, 255}); s.Colors.Label != want {
		t.Errorf("Label = %v, want %v", s.Colors.Label, want)
	}
	if s.Colors.DoorNext != Default().Colors.DoorNext {
		t.Error("DoorNext changed without an override")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"negative size", `{"outputSize": -1}`, ErrInvalidOutputSize},
		{"bad color", `{"colors": {"player": "#zzzzzz"}}`, ErrInvalidColor},
		{"short color", `{"colors": {"player": "#fff"}}`, ErrInvalidColor},
		{"unknown color", `{"colors": {"mauve": "#ffffff"}}`, nil},
		{"not json", `outputSize=3`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse error = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_ZeroOutputSizeAllowed(t *testing.T) {
	s, err := Parse([]byte(`{"outputSize": 0}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.OutputSize != 0 {
		t.Errorf("OutputSize = %d, want 0", s.OutputSize)
	}
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	if err != nil || s != Default() {
		t.Errorf("Load(\"\") = %+v, %v, want defaults", s, err)
	}

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"maxWaypointArrows": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.MaxWaypointArrows != 3 {
		t.Errorf("MaxWaypointArrows = %d, want 3", s.MaxWaypointArrows)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestParseColor_TranslucentComposites(t *testing.T) {
	red, err := ParseColor("#ff000080")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if red.R > red.A {
		t.Fatalf("ParseColor = %v, not premultiplied", red)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dst.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(red), image.Point{}, draw.Over)

	got := dst.RGBAAt(0, 0)
	if got.R < 250 || got.G < 120 || got.G > 135 || got.B != got.G || got.A != 255 {
		t.Errorf("half red over white = %v, want pink near {255 127 127 255}", got)
	}
}

func TestParseColor_OpaqueUnchanged(t *testing.T) {
	got, err := ParseColor("#12abef")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if want := (color.RGBA{0x12, 0xab, 0xef, 0xff}); got != want {
		t.Errorf("ParseColor = %v, want %v", got, want)
	}
}
