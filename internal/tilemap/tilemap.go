// Package tilemap holds the authoritative height-field and paint state
// of the map being edited. It is pure data: all mesh and splat output
// is derived from it elsewhere.
package tilemap

// World-space scale of the grid.
const (
	TileSize   float32 = 1.0 // world units per tile
	TileHeight float32 = 1.0 // world units per elevation step
)

// Kind says whether a tile has a flat top or slants toward a neighbor.
type Kind uint8

const (
	Floor Kind = iota
	Ramp
)

// Type selects which of the four ground texture layers a tile shows.
type Type uint8

const (
	Grass Type = iota
	Dirt
	Cliff
	Water
)

// TypeCount is the number of texture layers. The splatmap format bakes
// in four channels, so Type must stay within this cardinality.
const TypeCount = 4

// Index maps a tile type into the splat/layer channel space.
func (t Type) Index() int {
	return int(t)
}

func (t Type) String() string {
	switch t {
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	case Cliff:
		return "cliff"
	case Water:
		return "water"
	}
	return "unknown"
}

// Direction is one of the four cardinal edges of a tile.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions is the fixed scan order used wherever edges are searched.
// Ramp auto-resolution depends on this order for its tie-break.
var Directions = [4]Direction{North, East, South, West}

// Offset returns the grid-coordinate delta toward the neighbor across
// this edge. North is -y, matching the row-major layout.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// Next returns the next direction clockwise.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "west"
	}
}

// Tile is one grid cell.
//
// Elevation is in steps; world height is Elevation * TileHeight. The
// observed editing range is about -1..3 but nothing below enforces it.
// RampDir only applies when Kind == Ramp and RampSet is true;
// otherwise the slope direction is auto-resolved from neighbors.
type Tile struct {
	Kind      Kind
	Type      Type
	Elevation int8
	RampSet   bool
	RampDir   Direction

	// X, Y are redundant with the tile's slot in Map.Tiles but kept
	// for convenience. Map.Set keeps them consistent.
	X, Y int
}

// Map is a row-major grid of Width*Height tiles.
type Map struct {
	Width  int
	Height int
	Tiles  []Tile
}

// New creates a map filled with Floor/Grass tiles at elevation 0.
func New(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Tiles[y*width+x] = Tile{Kind: Floor, Type: Grass, X: x, Y: y}
		}
	}
	return m
}

// Index returns the slot of (x, y) in Tiles.
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

// In reports whether (x, y) lies on the grid.
func (m *Map) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the tile at (x, y). The caller must ensure (x, y) is in
// bounds; indexing in the rebuild paths always comes from loop bounds.
func (m *Map) At(x, y int) Tile {
	return m.Tiles[m.Index(x, y)]
}

// Set stores t at (x, y), rewriting the tile's own coordinates so the
// position invariant cannot drift.
func (m *Map) Set(x, y int, t Tile) {
	t.X = x
	t.Y = y
	m.Tiles[m.Index(x, y)] = t
}
