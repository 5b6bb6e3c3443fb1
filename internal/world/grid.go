package world

import "fmt"

// EntityID is a 1-based identifier into the entity store. The zero value
// means "no entity"; Uninitialized is a reserved sentinel used only during
// multi-phase Hut construction and is invalid everywhere else.
type EntityID uint32

// Uninitialized marks a Hut whose owning agent has not been assigned yet.
const Uninitialized EntityID = ^EntityID(0)

// Valid reports whether id refers to a real, assigned entity.
func (id EntityID) Valid() bool {
	return id != 0 && id != Uninitialized
}

// Grid holds the two parallel flat arrays described in design doc Section
// 4.2: tiles_type (immutable after init) and tiles_entity (at most one
// occupant per tile).
type Grid struct {
	Width, Height int
	types         []TileType
	entities      []EntityID // 0 means empty
}

// NewGrid allocates a width x height grid with every tile initialized to
// typ and no entities.
func NewGrid(width, height int, typ TileType) *Grid {
	types := make([]TileType, width*height)
	for i := range types {
		types[i] = typ
	}
	return &Grid{
		Width:    width,
		Height:   height,
		types:    types,
		entities: make([]EntityID, width*height),
	}
}

// Idx converts a (wrapped) Pos into a flat array index.
func (g *Grid) Idx(p Pos) int {
	x, y := int(p.X), int(p.Y)
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		panic(fmt.Sprintf("world: position %v out of bounds for %dx%d grid", p, g.Width, g.Height))
	}
	return y*g.Width + x
}

// Wrap wraps p into this grid's dimensions.
func (g *Grid) Wrap(p Pos) Pos {
	return p.Wrap(g.Width, g.Height)
}

// TypeAt returns the terrain type at p (p must already be wrapped).
func (g *Grid) TypeAt(p Pos) TileType {
	return g.types[g.Idx(p)]
}

// SetType sets the terrain type at p. Only called during world init — tile
// type is immutable thereafter.
func (g *Grid) SetType(p Pos, t TileType) {
	g.types[g.Idx(p)] = t
}

// EntityAt returns the occupant of p, or 0 if empty.
func (g *Grid) EntityAt(p Pos) EntityID {
	return g.entities[g.Idx(p)]
}

// SetEntity sets the occupant of p. id == 0 clears the tile.
func (g *Grid) SetEntity(p Pos, id EntityID) {
	g.entities[g.Idx(p)] = id
}

// Neighbors returns the eight toroidally-wrapped tiles adjacent to p.
func (g *Grid) Neighbors(p Pos) [8]Pos {
	var out [8]Pos
	for i, d := range AllDirections {
		out[i] = g.Wrap(p.Step(d))
	}
	return out
}

// Walkable reports whether a tile is walkable terrain with no occupant.
func (g *Grid) Walkable(p Pos) bool {
	return g.TypeAt(p).Walkable() && g.EntityAt(p) == 0
}

// Sailable reports whether a tile is sailable terrain with no occupant.
func (g *Grid) Sailable(p Pos) bool {
	return g.TypeAt(p).Sailable() && g.EntityAt(p) == 0
}

// spiralOffsets enumerates the classic square-spiral step pattern described
// in design doc Section 4.2: step counts 1,1,2,2,3,3,... cycling through
// up, right, down, left.
func spiralOffsets(n int) []Pos {
	offsets := make([]Pos, 0, n)
	if n <= 0 {
		return offsets
	}
	offsets = append(offsets, Pos{0, 0})
	if len(offsets) >= n {
		return offsets
	}

	x, y := 0, 0
	dirs := [4]Pos{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} // up, right, down, left
	dirIdx := 0
	step := 1
	stepsTakenAtThisLength := 0
	legsAtThisLength := 0

	for len(offsets) < n {
		d := dirs[dirIdx%4]
		x += int(d.X)
		y += int(d.Y)
		offsets = append(offsets, Pos{X: int16(x), Y: int16(y)})
		if len(offsets) >= n {
			break
		}
		stepsTakenAtThisLength++
		if stepsTakenAtThisLength == step {
			stepsTakenAtThisLength = 0
			dirIdx++
			legsAtThisLength++
			if legsAtThisLength == 2 {
				legsAtThisLength = 0
				step++
			}
		}
	}
	return offsets
}

// TilesAround returns the (wrapped) positions of the first n tiles visited
// by the square-spiral enumeration centered on start, start included.
func (g *Grid) TilesAround(start Pos, n int) []Pos {
	offsets := spiralOffsets(n)
	out := make([]Pos, len(offsets))
	for i, off := range offsets {
		out[i] = g.Wrap(Pos{X: start.X + off.X, Y: start.Y + off.Y})
	}
	return out
}

// FindTileAround spirals outward from start, visiting at most n tiles (start
// included), and returns the first wrapped position for which pred holds.
// n == 0 always returns (Pos{}, false); n == 1 checks only the start tile.
func (g *Grid) FindTileAround(start Pos, n int, pred func(Pos) bool) (Pos, bool) {
	for _, off := range spiralOffsets(n) {
		p := g.Wrap(Pos{X: start.X + off.X, Y: start.Y + off.Y})
		if pred(p) {
			return p, true
		}
	}
	return Pos{}, false
}

// FindEntityAround specializes FindTileAround for predicates that inspect
// the entity occupying each tile.
func (g *Grid) FindEntityAround(start Pos, n int, pred func(id EntityID, pos Pos) bool) (Pos, bool) {
	return g.FindTileAround(start, n, func(p Pos) bool {
		return pred(g.EntityAt(p), p)
	})
}
