// Package generator builds synthetic levels for demos and tests when no map
// server is available.
package generator

import (
	"math/rand"

	"mapassist/pkg/game/mapdata"
)

// LevelGenerator is an interface for level generation algorithms
type LevelGenerator interface {
	Generate(area mapdata.AreaID, rng *rand.Rand) (*mapdata.LevelData, mapdata.GameStateSnapshot)
	Name() string
}

// Available generators
var (
	BSP = &BSPGenerator{}
)

// DefaultGenerator is the default level generator
var DefaultGenerator LevelGenerator = BSP

// Generate builds a level for area with the default generator, seeded so the
// same seed always yields the same level.
func Generate(area mapdata.AreaID, seed int64) (*mapdata.LevelData, mapdata.GameStateSnapshot) {
	return DefaultGenerator.Generate(area, rand.New(rand.NewSource(seed)))
}
