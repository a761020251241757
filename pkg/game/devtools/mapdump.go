package devtools

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/objects"
	"mapassist/pkg/game/tiles"
)

const mapDumpFilename = "map.txt"

// Namer resolves codes for the dump's entity lists.
type Namer interface {
	Area(id int) string
	Object(id int) string
}

// tileSymbol returns the single-character symbol for a tile code (no overlay).
func tileSymbol(code int) rune {
	switch {
	case code == tiles.OffMap:
		return ' '
	case code == tiles.Blocking:
		return 'x'
	case code == 1:
		return '#'
	default:
		return '.'
	}
}

func categorySymbol(c objects.Category) rune {
	switch c {
	case objects.Waypoint:
		return 'W'
	case objects.Quest:
		return 'Q'
	case objects.NextLevelMarker:
		return 'N'
	case objects.Chest:
		return 'C'
	default:
		return '?'
	}
}

// overlay maps grid cells to the symbol drawn over the tile. Later entries win,
// matching the minimap's stacking with the player on top.
func overlay(level *mapdata.LevelData, state mapdata.GameStateSnapshot) map[image.Point]rune {
	marks := map[image.Point]rune{}
	cell := func(p image.Point) image.Point { return p.Sub(level.Origin) }

	for _, adj := range level.AdjacentLevels {
		if len(adj.Exits) > 0 {
			marks[cell(adj.Exits[0])] = 'E'
		}
	}
	for _, group := range level.Objects {
		category := objects.Classify(group.ID)
		for _, p := range group.Positions {
			marks[cell(p)] = categorySymbol(category)
		}
	}
	marks[cell(state.Position())] = '@'
	return marks
}

// writeMapGrid writes the grid with the entity overlay.
func writeMapGrid(w io.Writer, level *mapdata.LevelData, marks map[image.Point]rune) {
	cols, _ := level.Size()
	for row, codes := range level.Grid {
		line := make([]rune, cols)
		for col := range line {
			if col < len(codes) {
				line[col] = tileSymbol(codes[col])
			} else {
				line[col] = ' '
			}
			if mark, ok := marks[image.Pt(col, row)]; ok {
				line[col] = mark
			}
		}
		fmt.Fprintln(w, string(line))
	}
}

// DumpLevel writes a full debug dump of level: metadata, legend, the tile map
// with entity overlay and detailed exit/object lists.
func DumpLevel(w io.Writer, level *mapdata.LevelData, state mapdata.GameStateSnapshot, names Namer) error {
	if level == nil || len(level.Grid) == 0 {
		return mapdata.ErrNoGrid
	}
	cols, rows := level.Size()

	// --- Metadata ---
	fmt.Fprintln(w, "=== LEVEL DUMP DEBUG (layout, exits, objects) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "area: %d\n", level.Area)
	fmt.Fprintf(w, "area_name: %q\n", names.Area(int(level.Area)))
	fmt.Fprintf(w, "grid_rows: %d\n", rows)
	fmt.Fprintf(w, "grid_cols: %d\n", cols)
	fmt.Fprintf(w, "level_origin: %d,%d\n", level.Origin.X, level.Origin.Y)
	fmt.Fprintf(w, "coordinate_system: x,y world units; grid cell = world - origin\n")
	fmt.Fprintf(w, "player: %d,%d\n", state.PlayerX, state.PlayerY)
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, "' ' = off map  x = blocking  # = wall  . = other tile  E = exit  W = waypoint  Q = quest  N = next-level marker  C = chest  ? = unclassified object  @ = player")
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, level, overlay(level, state))
	fmt.Fprintln(w, "")

	// --- Exits ---
	fmt.Fprintln(w, "Adjacent levels:")
	for i, adj := range level.AdjacentLevels {
		fmt.Fprintf(w, "  order: %d area: %d name: %q exits: %d", i, adj.Area, names.Area(int(adj.Area)), len(adj.Exits))
		if len(adj.Exits) > 0 {
			fmt.Fprintf(w, " first: %d,%d", adj.Exits[0].X, adj.Exits[0].Y)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "")

	// --- Objects ---
	fmt.Fprintln(w, "Objects:")
	for _, group := range level.Objects {
		fmt.Fprintf(w, "  id: %d name: %q category: %s positions:", group.ID, names.Object(int(group.ID)), objects.Classify(group.ID))
		for _, p := range group.Positions {
			fmt.Fprintf(w, " %d,%d", p.X, p.Y)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "=== END LEVEL DUMP ===")
	return nil
}

// DumpLevelToFile writes DumpLevel output to map.txt in dir and returns its
// absolute path.
func DumpLevelToFile(dir string, level *mapdata.LevelData, state mapdata.GameStateSnapshot, names Namer) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, mapDumpFilename))
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	if err := writeAndClose(f, level, state, names); err != nil {
		return "", err
	}
	return absPath, nil
}

// writeAndClose dumps into wc and closes it, reporting the first error.
func writeAndClose(wc io.WriteCloser, level *mapdata.LevelData, state mapdata.GameStateSnapshot, names Namer) error {
	if err := DumpLevel(wc, level, state, names); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close map dump: %w", err)
	}
	return nil
}
