package generator

import (
	"image"
	"math/rand"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/objects"
	"mapassist/pkg/game/tiles"
)

// BSPGenerator generates levels using Binary Space Partitioning
type BSPGenerator struct{}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	x, y, width, height int
	floor               int
}

func (r *bspRoom) center() image.Point {
	return image.Pt(r.x+r.width/2, r.y+r.height/2)
}

// Floor codes rooms are painted with; corridors use the first.
var floorCodes = []int{0, 2, 6, 37, 39}

const wallCode = 1

// Constants for BSP generation
const (
	minNodeSize = 10 // Minimum size of a BSP node
	minRoomSize = 4  // Minimum size of a room
	roomPadding = 2  // Padding between room and node edge
	border      = 3  // Off-map margin around the level

	waypointID objects.ID = 119
	chestID    objects.ID = 580
)

// Generate creates a new level using the BSP algorithm. The player starts in
// a random room; the way back is at the start room's edge and the way on is
// the walkable cell furthest from the start.
func (g *BSPGenerator) Generate(area mapdata.AreaID, rng *rand.Rand) (*mapdata.LevelData, mapdata.GameStateSnapshot) {
	// Grid size grows with the area code, capped
	rows := 40 + (int(area)%8)*6
	cols := 60 + (int(area)%8)*8
	if rows > 90 {
		rows = 90
	}
	if cols > 120 {
		cols = 120
	}

	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		for c := range grid[r] {
			grid[r][c] = tiles.OffMap
		}
	}

	root := &bspNode{
		x:      border,
		y:      border,
		width:  cols - border*2,
		height: rows - border*2,
	}
	splitBSP(rng, root, minNodeSize)
	createRooms(rng, root)
	carveRooms(grid, root)
	connectRooms(rng, grid, root)
	buildWalls(grid)

	rooms := collectRooms(root)
	startRoom := rooms[rng.Intn(len(rooms))]
	start := startRoom.center()
	back := image.Pt(startRoom.x, startRoom.y+startRoom.height/2)
	on := findFurthestCell(grid, start)

	origin := image.Pt(int(area)*1000, 5000+int(area)*200)
	world := func(p image.Point) image.Point { return p.Add(origin) }

	level := &mapdata.LevelData{
		Area:   area,
		Grid:   grid,
		Origin: origin,
		AdjacentLevels: []mapdata.AdjacentLevel{
			{Area: area - 1, Exits: []image.Point{world(back)}},
			{Area: area + 1, Exits: []image.Point{world(on)}},
		},
	}

	// a waypoint in a room other than the start room when there is one
	wpRoom := rooms[rng.Intn(len(rooms))]
	if len(rooms) > 1 {
		for wpRoom == startRoom {
			wpRoom = rooms[rng.Intn(len(rooms))]
		}
	}
	level.Objects = append(level.Objects, mapdata.ObjectGroup{
		ID:        waypointID,
		Positions: []image.Point{world(wpRoom.center())},
	})

	chests := mapdata.ObjectGroup{ID: chestID}
	for i := 0; i < 1+rng.Intn(3); i++ {
		room := rooms[rng.Intn(len(rooms))]
		p := image.Pt(room.x+rng.Intn(room.width), room.y+rng.Intn(room.height))
		chests.Positions = append(chests.Positions, world(p))
	}
	level.Objects = append(level.Objects, chests)

	state := mapdata.GameStateSnapshot{
		PlayerX: origin.X + start.X,
		PlayerY: origin.Y + start.Y,
		Area:    area,
	}
	return level, state
}

// splitBSP recursively splits a BSP node
func splitBSP(rng *rand.Rand, node *bspNode, minSize int) {
	if node.width < minSize*2 && node.height < minSize*2 {
		return // Too small to split
	}

	// Decide split direction
	var splitHorizontal bool
	if node.width > node.height && node.width >= minSize*2 {
		splitHorizontal = false // Split vertically
	} else if node.height > node.width && node.height >= minSize*2 {
		splitHorizontal = true // Split horizontally
	} else if node.width >= minSize*2 && node.height >= minSize*2 {
		splitHorizontal = rng.Intn(2) == 0
	} else if node.width >= minSize*2 {
		splitHorizontal = false
	} else {
		splitHorizontal = true
	}

	if splitHorizontal {
		// Split horizontally (top and bottom)
		splitPoint := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		// Split vertically (left and right)
		splitPoint := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	splitBSP(rng, node.left, minSize)
	splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func createRooms(rng *rand.Rand, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			createRooms(rng, node.left)
		}
		if node.right != nil {
			createRooms(rng, node.right)
		}
		return
	}

	roomWidth := minRoomSize + rng.Intn(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + rng.Intn(node.height-minRoomSize-roomPadding+1)
	if roomWidth > node.width-roomPadding {
		roomWidth = node.width - roomPadding
	}
	if roomHeight > node.height-roomPadding {
		roomHeight = node.height - roomPadding
	}

	node.room = &bspRoom{
		x:      node.x + 1 + rng.Intn(node.width-roomWidth-1),
		y:      node.y + 1 + rng.Intn(node.height-roomHeight-1),
		width:  roomWidth,
		height: roomHeight,
		floor:  floorCodes[rng.Intn(len(floorCodes))],
	}
}

// carveRooms paints room floors into the grid
func carveRooms(grid [][]int, node *bspNode) {
	if node.room != nil {
		for row := node.room.y; row < node.room.y+node.room.height; row++ {
			for col := node.room.x; col < node.room.x+node.room.width; col++ {
				grid[row][col] = node.room.floor
			}
		}
	}
	if node.left != nil {
		carveRooms(grid, node.left)
	}
	if node.right != nil {
		carveRooms(grid, node.right)
	}
}

// connectRooms connects sibling subtrees with L-shaped corridors
func connectRooms(rng *rand.Rand, grid [][]int, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)
	if leftRoom != nil && rightRoom != nil {
		a, b := leftRoom.center(), rightRoom.center()
		if rng.Intn(2) == 0 {
			// Horizontal first, then vertical
			carveCorridorHorizontal(grid, a.Y, a.X, b.X)
			carveCorridorVertical(grid, b.X, a.Y, b.Y)
		} else {
			// Vertical first, then horizontal
			carveCorridorVertical(grid, a.X, a.Y, b.Y)
			carveCorridorHorizontal(grid, b.Y, a.X, b.X)
		}
	}

	connectRooms(rng, grid, node.left)
	connectRooms(rng, grid, node.right)
}

func carveCorridorHorizontal(grid [][]int, row, startCol, endCol int) {
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	for col := startCol; col <= endCol; col++ {
		// Don't repaint room floors
		if grid[row][col] == tiles.OffMap {
			grid[row][col] = floorCodes[0]
		}
	}
}

func carveCorridorVertical(grid [][]int, col, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	for row := startRow; row <= endRow; row++ {
		if grid[row][col] == tiles.OffMap {
			grid[row][col] = floorCodes[0]
		}
	}
}

// buildWalls rings every walkable cell with wall tiles.
func buildWalls(grid [][]int) {
	rows, cols := len(grid), len(grid[0])
	walls := make([]image.Point, 0)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if grid[row][col] != tiles.OffMap {
				continue
			}
			for _, d := range neighbours8 {
				r, c := row+d.Y, col+d.X
				if r >= 0 && r < rows && c >= 0 && c < cols && walkable(grid[r][c]) {
					walls = append(walls, image.Pt(col, row))
					break
				}
			}
		}
	}
	for _, p := range walls {
		grid[p.Y][p.X] = wallCode
	}
}

var (
	neighbours4 = []image.Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	neighbours8 = []image.Point{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

func walkable(code int) bool {
	return code != tiles.OffMap && code != tiles.Blocking && code != wallCode
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *rand.Rand, node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *bspRoom
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom
	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

// findFurthestCell uses BFS to find the walkable cell with the longest path
// distance from start.
func findFurthestCell(grid [][]int, start image.Point) image.Point {
	rows, cols := len(grid), len(grid[0])
	type cellDist struct {
		p    image.Point
		dist int
	}

	visited := map[image.Point]bool{start: true}
	queue := []cellDist{{start, 0}}
	furthest, maxDist := start, -1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.dist > maxDist {
			maxDist = current.dist
			furthest = current.p
		}
		for _, d := range neighbours4 {
			n := current.p.Add(d)
			if n.X < 0 || n.Y < 0 || n.Y >= rows || n.X >= cols || visited[n] || !walkable(grid[n.Y][n.X]) {
				continue
			}
			visited[n] = true
			queue = append(queue, cellDist{n, current.dist + 1})
		}
	}
	return furthest
}
