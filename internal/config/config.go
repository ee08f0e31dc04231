// Package config loads game scenarios from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"ants-vs-bees/internal/game"
	"ants-vs-bees/pkg/maps"
)

// Scenario describes the board, economy and bee plan of one game.
type Scenario struct {
	Name    string `yaml:"name"`
	Food    int    `yaml:"food"`
	Tunnels int    `yaml:"tunnels"`
	Length  int    `yaml:"length"`
	Layout  string `yaml:"layout"` // dry, wet, narrow, moat, moat:N, noise
	Seed    int64  `yaml:"seed"`   // 0 = random

	// Boosts overrides the starting boost inventory when set.
	Boosts map[string]int `yaml:"boosts"`

	BeeArmor  int         `yaml:"bee_armor"`
	BeeDamage int         `yaml:"bee_damage"`
	Waves     []game.Wave `yaml:"waves"`
}

// Default returns the stock scenario.
func Default() *Scenario {
	return &Scenario{
		Name:      "default",
		Food:      2,
		Tunnels:   3,
		Length:    8,
		Layout:    "dry",
		BeeArmor:  3,
		BeeDamage: 1,
		Waves: []game.Wave{
			{Turn: 2, Count: 1},
			{Turn: 4, Count: 1},
			{Turn: 6, Count: 2},
			{Turn: 9, Count: 2},
			{Turn: 12, Count: 3},
			{Turn: 15, Count: 3},
		},
	}
}

// Load reads a scenario file. Fields missing from the file keep their
// defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML over the defaults and validates it.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyEnv overrides fields from ANTS_FOOD and ANTS_SEED when set.
func (s *Scenario) ApplyEnv() error {
	if v := os.Getenv("ANTS_FOOD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ANTS_FOOD: %w", err)
		}
		s.Food = n
	}
	if v := os.Getenv("ANTS_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ANTS_SEED: %w", err)
		}
		s.Seed = n
	}
	return nil
}

// Validate checks that the scenario can build a board.
func (s *Scenario) Validate() error {
	if s.Tunnels < 1 || s.Length < 1 {
		return fmt.Errorf("scenario %q: board must be at least 1x1, got %dx%d", s.Name, s.Tunnels, s.Length)
	}
	if s.Food < 0 {
		return fmt.Errorf("scenario %q: negative starting food", s.Name)
	}
	if s.BeeArmor < 1 {
		return fmt.Errorf("scenario %q: bee armor must be positive", s.Name)
	}
	if s.BeeDamage < 0 {
		return fmt.Errorf("scenario %q: negative bee damage", s.Name)
	}
	for name, n := range s.Boosts {
		if n < 0 {
			return fmt.Errorf("scenario %q: negative %s boost count", s.Name, name)
		}
	}
	for _, w := range s.Waves {
		if w.Turn < 0 || w.Count < 0 {
			return fmt.Errorf("scenario %q: bad wave %+v", s.Name, w)
		}
	}
	if _, err := maps.ByName(s.Layout, s.Seed); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}

// Options builds colony options for this scenario. Logger and Recorder are
// left for the caller.
func (s *Scenario) Options() (game.Options, error) {
	gen, err := maps.ByName(s.Layout, s.Seed)
	if err != nil {
		return game.Options{}, err
	}
	layout := gen.Generate(s.Tunnels, s.Length)
	return game.Options{
		Food:      s.Food,
		Tunnels:   s.Tunnels,
		Length:    s.Length,
		Water:     layout.IsWater,
		BeeArmor:  s.BeeArmor,
		BeeDamage: game.Some(s.BeeDamage),
		Boosts:    s.Boosts,
		Rand:      game.NewRand(s.Seed),
	}, nil
}

// NewGame builds a ready game from the scenario.
func (s *Scenario) NewGame(rec game.Recorder) (*game.Game, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	opts.Recorder = rec
	return game.NewGame(opts, s.Waves), nil
}
