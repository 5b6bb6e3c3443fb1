// Package config holds the simulation's tunable parameters (design doc
// Section 6) and loads them from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of simulation tunables. Default returns every field
// pre-filled with the value named in design doc Section 6; a loaded file may
// set any subset of fields (see Load).
type Config struct {
	OceanCutoff int `yaml:"ocean_cutoff"`
	BeachCutoff int `yaml:"beach_cutoff"`

	ClosingTime    uint32 `yaml:"closing_time"`
	CriticalEnergy uint32 `yaml:"critical_energy"`
	DayLength      uint32 `yaml:"day_length"`

	DefaultExpiration uint32 `yaml:"default_exp"`
	DefaultReEval     uint32 `yaml:"default_rval"`

	ExplorationTimeout uint16 `yaml:"exploration_timeout"`

	GreedMean float32 `yaml:"greed_mean"`
	GreedSD   float32 `yaml:"greed_sd"`

	InitialCash      uint32 `yaml:"initial_cash"`
	InitialEnergy    uint32 `yaml:"initial_energy"`
	InitialInventory uint32 `yaml:"initial_inventory"`
	InitialNutrition uint8  `yaml:"initial_nutrition"`

	MarketPriceUpdate float64 `yaml:"market_price_update"`

	MaxEnergy  uint32 `yaml:"max_energy"`
	EnergyCost uint32 `yaml:"energy_cost"`

	NutritionAdd uint8 `yaml:"nutrition_add"`
	NutritionSub uint8 `yaml:"nutrition_sub"`

	OrderPriceDecay uint32 `yaml:"order_price_decay"`

	ResourceAmountMean float32 `yaml:"resource_amount_mean"`
	ResourceAmountSD   float32 `yaml:"resource_amount_sd"`

	ExplorerFishPoints      uint32 `yaml:"explorer_fish_points"`
	ExplorerResourceDivisor uint32 `yaml:"explorer_resource_divisor"`

	ResourceTimeout uint16 `yaml:"resource_timeout"`
	SearchRadius    int    `yaml:"search_radius"`
	TimeoutQuota    uint16 `yaml:"timeout_quota"`

	UnstuckifierChance float64 `yaml:"unstuckifier_chance"`

	BatchTotalStepCount uint32 `yaml:"batch_total_step_count"`
	Repetitions         uint32 `yaml:"repetitions"`

	// World dimensions — not named as a standalone field in design doc
	// Section 6's parameter list, but required to construct a Grid; carried
	// here alongside the rest of the tunables for a single load path.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`
}

// Default returns a Config with every default named in design doc Section 6.
func Default() *Config {
	dayLength := uint32(200)
	c := &Config{
		OceanCutoff:             -30,
		BeachCutoff:             -10,
		DayLength:               dayLength,
		CriticalEnergy:          500,
		ExplorationTimeout:      500,
		GreedMean:               5.0,
		GreedSD:                 10.0,
		InitialCash:             20000,
		InitialEnergy:           5000,
		InitialInventory:        0,
		InitialNutrition:        100,
		MarketPriceUpdate:       0.01,
		MaxEnergy:               10000,
		EnergyCost:              2,
		NutritionAdd:            4,
		NutritionSub:            9,
		OrderPriceDecay:         75,
		ResourceAmountMean:      20,
		ResourceAmountSD:        10,
		ExplorerFishPoints:      50,
		ExplorerResourceDivisor: 10,
		SearchRadius:            15,
		UnstuckifierChance:      0.75,
		Width:                   96,
		Height:                  64,
		Seed:                    1,
	}
	c.ClosingTime = (dayLength * 3) / 4
	c.DefaultExpiration = dayLength * 10
	c.DefaultReEval = dayLength * 3
	c.ResourceTimeout = uint16(dayLength * 10)
	c.TimeoutQuota = uint16(dayLength * 10)
	c.BatchTotalStepCount = dayLength * 100
	c.Repetitions = 1
	return c
}

// Load reads a YAML config file at path, starting from Default and letting
// the file override only the fields it sets, so a partial config file is
// legal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML.
func Save(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
