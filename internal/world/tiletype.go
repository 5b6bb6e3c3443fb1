package world

// TileType enumerates every terrain texture the world can generate.
// Exactly 28 variants, each with a stable texture index in 0..28 for the
// (external, out-of-scope) rendering pipeline.
type TileType uint8

const (
	TileGrass TileType = iota
	TileSand
	TileWater
	TileDirt
	TileSnow
	TileTundra
	TileWood
	TileMud
	TileDriedMud
	TileDriedSludge
	TileRock
	TileBrick
	TileDeepWater
	TileShallowWater
	TileClay
	TileGravel
	TileIce
	TileLava
	TileAsh
	TileMoss
	TileSwampWater
	TileReed
	TileCoral
	TileSaltFlat
	TilePermafrost
	TileScree
	TileCobble
	TilePath
)

// NumTileTypes is the size of the TileType enumeration.
const NumTileTypes = 28

// walkableTypes lists every TileType an agent can stand on.
var walkableTypes = map[TileType]bool{
	TileGrass:       true,
	TileSand:        true,
	TileDirt:        true,
	TileSnow:        true,
	TileTundra:      true,
	TileWood:        true,
	TileMud:         true,
	TileDriedMud:    true,
	TileDriedSludge: true,
	TileRock:        true,
	TileBrick:       true,
}

// Walkable reports whether an agent may stand on this terrain, independent
// of tile occupancy (see Grid.Walkable for the full predicate).
func (t TileType) Walkable() bool {
	return walkableTypes[t]
}

// Sailable reports whether a boat may float on this terrain.
func (t TileType) Sailable() bool {
	return t == TileWater || t == TileSand
}

// TextureIndex returns the 0..28 texture index the (external) renderer uses.
// It is simply the enum's ordinal — kept as a named accessor so renderer
// code never depends on the underlying numeric representation.
func (t TileType) TextureIndex() int {
	return int(t)
}
