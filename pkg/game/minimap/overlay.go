package minimap

import (
	"image"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/objects"
	"mapassist/pkg/game/settings"
)

// Namer resolves codes to label text. Unknown codes should come back as their
// decimal form.
type Namer interface {
	Area(id int) string
	ObjectLabel(id int) string
}

// overlayPlan is the command list for one frame.
type overlayPlan struct {
	commands []Command
	// anchor is the last exit point drawn; valid only when anchored is set
	anchor   image.Point
	anchored bool
}

func planOverlay(level *mapdata.LevelData, state mapdata.GameStateSnapshot, s settings.RenderSettings, tr transform, namer Namer) overlayPlan {
	var plan overlayPlan
	player := tr.apply(state.Position())

	// directional indicators go underneath every icon
	for _, adj := range level.AdjacentLevels {
		if len(adj.Exits) == 0 {
			continue
		}
		target := tr.apply(adj.Exits[0])
		plan.commands = append(plan.commands,
			ArrowCommand{From: player, To: target, Color: s.Colors.ArrowExit},
			LabelCommand{Anchor: target, Text: namer.Area(int(adj.Area)), Color: s.Colors.Label},
		)
	}

	waypointArrows := 0
	for _, group := range level.Objects {
		if len(group.Positions) == 0 {
			continue
		}
		target := tr.apply(group.Positions[0])
		switch objects.Classify(group.ID) {
		case objects.Waypoint:
			if waypointArrows >= s.MaxWaypointArrows {
				continue
			}
			waypointArrows++
			plan.commands = append(plan.commands,
				ArrowCommand{From: player, To: target, Color: s.Colors.ArrowWaypoint},
				LabelCommand{Anchor: target, Text: namer.ObjectLabel(int(group.ID)), Color: s.Colors.Label},
			)
		case objects.Quest:
			plan.commands = append(plan.commands,
				ArrowCommand{From: player, To: target, Color: s.Colors.ArrowQuest},
				LabelCommand{Anchor: target, Text: namer.ObjectLabel(int(group.ID)), Color: s.Colors.Label},
			)
		}
	}

	exitsDrawn := 0
	for _, adj := range level.AdjacentLevels {
		if len(adj.Exits) == 0 {
			continue
		}
		at := tr.apply(adj.Exits[0])
		icon, c := IconDoorNext, s.Colors.DoorNext
		if exitsDrawn == 0 {
			icon, c = IconDoorPrevious, s.Colors.DoorPrevious
		}
		plan.commands = append(plan.commands, IconCommand{Icon: icon, At: at, Color: c})
		plan.anchor, plan.anchored = at, true
		exitsDrawn++
	}

	for _, group := range level.Objects {
		if len(group.Positions) == 0 {
			continue
		}
		switch objects.Classify(group.ID) {
		case objects.Waypoint:
			plan.commands = append(plan.commands,
				IconCommand{Icon: IconWaypoint, At: tr.apply(group.Positions[0]), Color: s.Colors.Waypoint})
		case objects.Quest, objects.NextLevelMarker:
			plan.commands = append(plan.commands,
				IconCommand{Icon: IconDoorNext, At: tr.apply(group.Positions[0]), Color: s.Colors.DoorNext})
		case objects.Chest:
			for _, p := range group.Positions {
				plan.commands = append(plan.commands,
					IconCommand{Icon: IconChest, At: tr.apply(p), Color: s.Colors.SuperChest})
			}
		}
	}

	plan.commands = append(plan.commands, IconCommand{Icon: IconPlayer, At: player, Color: s.Colors.Player})
	return plan
}
