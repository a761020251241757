package mapdata

import (
	"context"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"mapassist/pkg/game/objects"
)

const sampleLevel = `{
  "area": 3,
  "levelOrigin": {"x": 100, "y": 200},
  "mapRows": [[1, 1, -1], [1, 0, 0]],
  "adjacentLevels": {
    "4": {"exits": [{"x": 110, "y": 210}, {"x": 111, "y": 211}]},
    "2": {"exits": [{"x": 101, "y": 201}]},
    "9": {"exits": []}
  },
  "objects": {
    "5": [{"x": 102, "y": 202}, {"x": 103, "y": 203}],
    "182": [{"x": 104, "y": 204}],
    "61": []
  }
}`

func TestDecode_KeepsDocumentOrder(t *testing.T) {
	level, err := Decode([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if level.Area != 3 || level.Origin != image.Pt(100, 200) {
		t.Errorf("area/origin = %d/%v, want 3/(100,200)", level.Area, level.Origin)
	}

	wantAreas := []AreaID{4, 2, 9}
	if len(level.AdjacentLevels) != len(wantAreas) {
		t.Fatalf("len(AdjacentLevels) = %d, want %d", len(level.AdjacentLevels), len(wantAreas))
	}
	for i, want := range wantAreas {
		if got := level.AdjacentLevels[i].Area; got != want {
			t.Errorf("AdjacentLevels[%d].Area = %d, want %d", i, got, want)
		}
	}
	if got := level.AdjacentLevels[0].Exits[0]; got != image.Pt(110, 210) {
		t.Errorf("first exit = %v, want (110,210)", got)
	}
	if len(level.AdjacentLevels[2].Exits) != 0 {
		t.Errorf("area 9 exits = %v, want none", level.AdjacentLevels[2].Exits)
	}

	// the empty "61" group is dropped
	wantObjects := []objects.ID{5, 182}
	if len(level.Objects) != len(wantObjects) {
		t.Fatalf("len(Objects) = %d, want %d", len(level.Objects), len(wantObjects))
	}
	for i, want := range wantObjects {
		if got := level.Objects[i].ID; got != want {
			t.Errorf("Objects[%d].ID = %d, want %d", i, got, want)
		}
	}
	if n := len(level.Objects[0].Positions); n != 2 {
		t.Errorf("chest positions = %d, want 2", n)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no rows", `{"levelOrigin": {"x": 0, "y": 0}, "mapRows": []}`, ErrNoGrid},
		{"bad json", `{"mapRows": [[1]`, nil},
		{"bad object key", `{"mapRows": [[1]], "objects": {"chest": [{"x": 1, "y": 1}]}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			if err == nil {
				t.Fatal("Decode error = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLevelData_SizeUsesLongestRow(t *testing.T) {
	level := &LevelData{Grid: [][]int{{1}, {1, 1, 1}, {1, 1}}}
	w, h := level.Size()
	if w != 3 || h != 3 {
		t.Errorf("Size() = %d,%d, want 3,3", w, h)
	}
	var empty *LevelData
	if w, h := empty.Size(); w != 0 || h != 0 {
		t.Errorf("nil Size() = %d,%d, want 0,0", w, h)
	}
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleLevel))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	level, err := client.Fetch(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(level.AdjacentLevels) != 3 {
		t.Errorf("len(AdjacentLevels) = %d, want 3", len(level.AdjacentLevels))
	}

	if _, err := client.Fetch(context.Background(), 8); err == nil {
		t.Error("Fetch(8) error = nil, want status error")
	}
}
