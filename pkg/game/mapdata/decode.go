package mapdata

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"

	"github.com/iancoleman/orderedmap"

	"mapassist/pkg/game/objects"
)

// Point is a world-space coordinate in the map server's wire format.
type Point struct {
	X int `json:"x" jsonschema:"description=World-space x"`
	Y int `json:"y" jsonschema:"description=World-space y"`
}

// AdjacentDocument is one entry of a level document's adjacentLevels object.
type AdjacentDocument struct {
	Exits []Point `json:"exits" jsonschema:"description=Exit points on this level leading to the neighbour; may be empty"`
}

// Document is the map server's level document. adjacentLevels and objects are
// keyed by decimal area/object codes and their key order is significant.
type Document struct {
	Area           int                         `json:"area,omitempty" jsonschema:"description=Area code of this level"`
	LevelOrigin    Point                       `json:"levelOrigin" jsonschema:"description=World-space position of tile (0,0),required"`
	MapRows        [][]int                     `json:"mapRows" jsonschema:"description=Row-major tile-type codes,required"`
	AdjacentLevels map[string]AdjacentDocument `json:"adjacentLevels,omitempty" jsonschema:"description=Neighbouring areas in discovery order"`
	Objects        map[string][]Point          `json:"objects,omitempty" jsonschema:"description=Object positions by object code in discovery order"`
}

// keyOrder captures the document order of the two keyed objects, which
// map-typed fields lose.
type keyOrder struct {
	AdjacentLevels *orderedmap.OrderedMap `json:"adjacentLevels"`
	Objects        *orderedmap.OrderedMap `json:"objects"`
}

// Decode parses a level document.
func Decode(data []byte) (*LevelData, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	order := keyOrder{
		AdjacentLevels: orderedmap.New(),
		Objects:        orderedmap.New(),
	}
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode level key order: %w", err)
	}
	if len(doc.MapRows) == 0 {
		return nil, ErrNoGrid
	}

	level := &LevelData{
		Area:   AreaID(doc.Area),
		Grid:   doc.MapRows,
		Origin: doc.LevelOrigin.point(),
	}

	for _, key := range order.AdjacentLevels.Keys() {
		area, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("adjacent level key %q: %w", key, err)
		}
		adj := AdjacentLevel{Area: AreaID(area)}
		for _, p := range doc.AdjacentLevels[key].Exits {
			adj.Exits = append(adj.Exits, p.point())
		}
		level.AdjacentLevels = append(level.AdjacentLevels, adj)
	}

	for _, key := range order.Objects.Keys() {
		id, err := objects.ParseID(key)
		if err != nil {
			return nil, fmt.Errorf("object key %q: %w", key, err)
		}
		positions := doc.Objects[key]
		if len(positions) == 0 {
			continue
		}
		group := ObjectGroup{ID: id, Positions: make([]image.Point, 0, len(positions))}
		for _, p := range positions {
			group.Positions = append(group.Positions, p.point())
		}
		level.Objects = append(level.Objects, group)
	}

	return level, nil
}

// Read decodes a level document from r.
func Read(r io.Reader) (*LevelData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Decode(data)
}

// LoadFile decodes the level document stored at path.
func LoadFile(path string) (*LevelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func (p Point) point() image.Point {
	return image.Pt(p.X, p.Y)
}
