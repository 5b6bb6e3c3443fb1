// Package terrain provides the init-time world generation oracle: given a
// position, decide its terrain and whatever entity (if any) should be
// seeded there. See design doc Section 6, "Terrain source".
package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/tidemarket/internal/config"
	"github.com/talgya/tidemarket/internal/world"
)

// EntityInitKind enumerates the four seedable entity variants.
type EntityInitKind uint8

const (
	InitHut EntityInitKind = iota
	InitMarket
	InitBoat
	InitResource
)

// EntityInit describes an entity to seed at a tile during world init.
// Resource/Amount are only meaningful when Kind == InitResource.
type EntityInit struct {
	Kind     EntityInitKind
	Resource world.ResourceItem
	Amount   uint16
}

// Sample is one oracle query result: the tile's terrain, and optionally an
// entity to place there.
type Sample struct {
	Tile   world.TileType
	Entity *EntityInit
}

// Oracle is consumed exactly once per tile at world init.
type Oracle interface {
	Sample(pos world.Pos) Sample
}

// SimplexOracle derives terrain from layered simplex noise, the way the
// hex-grid generator this package's layout is modeled on derives elevation,
// rainfall and terrain from independent noise channels, adapted to a
// toroidal square grid and the 28-variant TileType set.
type SimplexOracle struct {
	cfg *config.Config

	elevation opensimplex.Noise
	moisture  opensimplex.Noise
	feature   opensimplex.Noise
}

// NewSimplexOracle builds a SimplexOracle seeded from cfg.Seed. Three
// independent noise channels (elevation, moisture, feature placement) are
// derived from adjacent seeds so that a single world seed deterministically
// reproduces the whole map.
func NewSimplexOracle(cfg *config.Config) *SimplexOracle {
	return &SimplexOracle{
		cfg:       cfg,
		elevation: opensimplex.NewNormalized(cfg.Seed),
		moisture:  opensimplex.NewNormalized(cfg.Seed + 1),
		feature:   opensimplex.NewNormalized(cfg.Seed + 2),
	}
}

func (o *SimplexOracle) Sample(pos world.Pos) Sample {
	x, y := float64(pos.X), float64(pos.Y)

	elev := int(octaveNoise(o.elevation, x, y, 4, 0.05, 0.5)*200) - 100
	tile := o.deriveTile(elev, octaveNoise(o.moisture, x, y, 3, 0.07, 0.5))

	feature := o.feature.Eval2(x*0.3, y*0.3)
	return Sample{Tile: tile, Entity: o.deriveEntity(tile, feature)}
}

func (o *SimplexOracle) deriveTile(elev int, moist float64) world.TileType {
	switch {
	case elev < o.cfg.OceanCutoff:
		return world.TileWater
	case elev < o.cfg.BeachCutoff:
		return world.TileSand
	case elev > 70:
		if moist < 0.3 {
			return world.TileRock
		}
		return world.TileSnow
	case moist < 0.2:
		return world.TileDirt
	case moist < 0.35:
		return world.TileTundra
	case moist > 0.75:
		return world.TileMud
	case moist > 0.55:
		return world.TileWood
	default:
		return world.TileGrass
	}
}

// deriveEntity places the sparse, hand-tuned feature set a finished world
// needs: rare Markets, somewhat-less-rare Boats on the shore, Huts for
// agent homes, and resource deposits scattered over the tiles able to
// support them.
func (o *SimplexOracle) deriveEntity(tile world.TileType, feature float64) *EntityInit {
	switch {
	case feature > 0.997 && tile.Walkable():
		return &EntityInit{Kind: InitMarket}
	case feature > 0.99 && tile.Sailable():
		return &EntityInit{Kind: InitBoat}
	case feature > 0.96 && tile.Walkable():
		return &EntityInit{Kind: InitHut}
	case feature > 0.80 && (tile.Walkable() || tile == world.TileWater):
		item, ok := resourceForTile(tile)
		if !ok {
			return nil
		}
		amount := o.cfg.ResourceAmountMean + (float32(feature)-0.8)*float32(o.cfg.ResourceAmountSD)*5
		if amount < 0 {
			amount = 0
		}
		return &EntityInit{Kind: InitResource, Resource: item, Amount: uint16(amount)}
	default:
		return nil
	}
}

func resourceForTile(t world.TileType) (world.ResourceItem, bool) {
	switch t {
	case world.TileGrass, world.TileDirt:
		return world.Wheat, true
	case world.TileWood, world.TileMud:
		return world.Berry, true
	case world.TileSnow, world.TileTundra, world.TileRock:
		return world.Meat, true
	case world.TileWater:
		return world.Fish, true
	default:
		return 0, false
	}
}

// octaveNoise layers octaves octaves of noise at increasing frequency and
// decreasing amplitude, normalized back into the noise's own [0,1] range.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return math.Max(0, math.Min(1, total/maxVal))
}
