// Package objects classifies map-server object identifiers into the minimap's
// point-of-interest categories.
package objects

import (
	"strconv"

	"github.com/zyedidia/generic/mapset"
)

// ID is a game object type code as reported by the map server.
type ID int

// String returns the decimal code, which is also the map server's key form.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// ParseID converts a map-server object key such as "182" into an ID.
func ParseID(key string) (ID, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// Category is the point-of-interest bucket an object falls in.
type Category int

const (
	None Category = iota
	Waypoint
	Quest
	NextLevelMarker
	Chest
)

func (c Category) String() string {
	switch c {
	case Waypoint:
		return "waypoint"
	case Quest:
		return "quest"
	case NextLevelMarker:
		return "next-level"
	case Chest:
		return "chest"
	default:
		return "none"
	}
}

var (
	waypoints = setOf(182, 298, 119, 145, 156, 157, 238, 237, 288, 323, 324, 398, 402, 429, 494, 496, 511, 539, 59, 60, 100)
	quests    = setOf(357, 61, 376)
	// door-like objects leading off the level besides the adjacent-level exits
	nextLevelMarkers = setOf(152, 357, 356, 354, 355, 266)
	chests           = setOf(
		5, 6, 87, 104, 105, 106, 107, 143, 140, 141, 144, 146, 147, 148, 176, 177, 181, 183,
		198, 240, 241, 242, 243, 329, 330, 331, 332, 333, 334, 335, 336, 354, 355, 356, 371, 387,
		389, 390, 391, 397, 405, 406, 407, 413, 420, 424, 425, 430, 431, 432, 433, 454, 455, 501,
		502, 504, 505, 580, 581,
	)
)

func setOf(ids ...ID) mapset.Set[ID] {
	s := mapset.New[ID]()
	for _, id := range ids {
		s.Put(id)
	}
	return s
}

// Classify returns the category for id. Some codes sit in more than one set;
// the first match in Waypoint, Quest, NextLevelMarker, Chest order wins.
func Classify(id ID) Category {
	switch {
	case waypoints.Has(id):
		return Waypoint
	case quests.Has(id):
		return Quest
	case nextLevelMarkers.Has(id):
		return NextLevelMarker
	case chests.Has(id):
		return Chest
	default:
		return None
	}
}

// IsWaypoint reports whether id is any of the waypoint variants.
func IsWaypoint(id ID) bool { return waypoints.Has(id) }

// IsQuest reports whether id is a quest object.
func IsQuest(id ID) bool { return quests.Has(id) }

// IsChest reports whether id is a chest-like container.
func IsChest(id ID) bool { return chests.Has(id) }
