package generator

import (
	"image"
	"math/rand"
	"reflect"
	"testing"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/objects"
	"mapassist/pkg/game/tiles"
)

func TestBSPGenerator_Name(t *testing.T) {
	if got := BSP.Name(); got != "BSP Tree" {
		t.Errorf("Name() = %q, want %q", got, "BSP Tree")
	}
}

func TestGenerate_SameSeedSameLevel(t *testing.T) {
	a, sa := Generate(3, 42)
	b, sb := Generate(3, 42)
	if !reflect.DeepEqual(a, b) || sa != sb {
		t.Error("two levels from seed 42 differ")
	}
}

func TestGenerate_StartIsWalkable(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		level, state := Generate(4, seed)
		p := state.Position().Sub(level.Origin)
		if !walkable(level.Grid[p.Y][p.X]) {
			t.Errorf("seed %d: start %v on tile %d", seed, p, level.Grid[p.Y][p.X])
		}
		if state.Area != level.Area {
			t.Errorf("seed %d: state area %d, level area %d", seed, state.Area, level.Area)
		}
	}
}

func TestGenerate_ExitsReachableFromStart(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		level, state := Generate(5, seed)
		start := state.Position().Sub(level.Origin)
		reach := reachable(level.Grid, start)

		if len(level.AdjacentLevels) != 2 {
			t.Fatalf("seed %d: %d adjacent levels, want 2", seed, len(level.AdjacentLevels))
		}
		if got := level.AdjacentLevels[0].Area; got != 4 {
			t.Errorf("seed %d: way back leads to %d, want 4", seed, got)
		}
		for _, adj := range level.AdjacentLevels {
			for _, exit := range adj.Exits {
				if p := exit.Sub(level.Origin); !reach[p] {
					t.Errorf("seed %d: exit to %d at %v is not reachable", seed, adj.Area, p)
				}
			}
		}
	}
}

func TestGenerate_WallsRingTheFloor(t *testing.T) {
	level, _ := Generate(2, 7)
	walls := 0
	for y, row := range level.Grid {
		for x, code := range row {
			if code == wallCode {
				walls++
			}
			if !walkable(code) {
				continue
			}
			for _, d := range neighbours8 {
				if level.Grid[y+d.Y][x+d.X] == tiles.OffMap {
					t.Fatalf("floor at (%d,%d) touches off-map", x, y)
				}
			}
		}
	}
	if walls == 0 {
		t.Error("no wall tiles generated")
	}
}

func TestGenerate_PlacesWaypointAndChests(t *testing.T) {
	level, _ := Generate(3, 11)
	var sawWaypoint, sawChest bool
	for _, group := range level.Objects {
		if len(group.Positions) == 0 {
			t.Errorf("object %d has no positions", group.ID)
		}
		switch objects.Classify(group.ID) {
		case objects.Waypoint:
			sawWaypoint = true
		case objects.Chest:
			sawChest = true
		}
	}
	if !sawWaypoint || !sawChest {
		t.Errorf("waypoint=%v chest=%v, want both", sawWaypoint, sawChest)
	}
}

func TestGenerator_CustomRNG(t *testing.T) {
	var g LevelGenerator = &BSPGenerator{}
	level, _ := g.Generate(mapdata.AreaID(8), rand.New(rand.NewSource(1)))
	if w, h := level.Size(); w == 0 || h == 0 {
		t.Errorf("Size() = %dx%d, want non-empty", w, h)
	}
}

func reachable(grid [][]int, start image.Point) map[image.Point]bool {
	seen := map[image.Point]bool{start: true}
	queue := []image.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range neighbours4 {
			n := p.Add(d)
			if n.Y < 0 || n.Y >= len(grid) || n.X < 0 || n.X >= len(grid[n.Y]) || seen[n] || !walkable(grid[n.Y][n.X]) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}
