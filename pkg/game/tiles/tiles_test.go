package tiles

import (
	"image/color"
	"testing"
)

func TestColorFor_KnownCodes(t *testing.T) {
	tests := []struct {
		code int
		want color.RGBA
	}{
		{1, color.RGBA{70, 51, 41, 255}},
		{0, color.RGBA{0, 0, 0, 255}},
		{16, color.RGBA{168, 56, 50, 255}},
		{33, color.RGBA{0, 0, 255, 255}},
		{53, color.RGBA{10, 11, 43, 255}},
	}
	for _, tt := range tests {
		if got := ColorFor(tt.code); got != tt.want {
			t.Errorf("ColorFor(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestColorFor_NoPaintCodesAreTransparent(t *testing.T) {
	for _, code := range []int{OffMap, Blocking} {
		if Paints(code) {
			t.Errorf("Paints(%d) = true, want false", code)
		}
		if got := ColorFor(code); got.A != 0 {
			t.Errorf("ColorFor(%d) alpha = %d, want 0", code, got.A)
		}
	}
}

func TestColorFor_TotalAndDeterministic(t *testing.T) {
	for code := -50; code <= 600; code++ {
		first := ColorFor(code)
		if second := ColorFor(code); first != second {
			t.Fatalf("ColorFor(%d) not deterministic: %v then %v", code, first, second)
		}
		if Paints(code) && first.A != 255 {
			t.Errorf("ColorFor(%d) alpha = %d, want opaque", code, first.A)
		}
	}
	if got := ColorFor(9999); got != Unknown {
		t.Errorf("ColorFor(9999) = %v, want %v", got, Unknown)
	}
}
