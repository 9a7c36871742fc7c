// Package config provides YAML-based configuration loading and difficulty
// management for the snake variants.
package config

import (
	"fmt"
	"time"
)

// SnakeConfig contains all configuration for one snake variant.
type SnakeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Snake      SnakeBody        `yaml:"snake"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Target     TargetConfig     `yaml:"target"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the playing field.
type GridConfig struct {
	Size int `yaml:"size"`
}

// SnakeBody defines the snake's starting shape and pace.
type SnakeBody struct {
	InitialLength  int `yaml:"initial_length"`
	MoveIntervalMS int `yaml:"move_interval_ms"`
}

// MoveInterval returns the configured step interval.
func (b SnakeBody) MoveInterval() time.Duration {
	return time.Duration(b.MoveIntervalMS) * time.Millisecond
}

// ScoringConfig defines points, growth and the win threshold.
type ScoringConfig struct {
	CaptureValue     int `yaml:"capture_value"`
	GrowthPerCapture int `yaml:"growth_per_capture"`
	WinScore         int `yaml:"win_score"` // 0 = no win condition
}

// TerrainConfig defines the obstacles.
type TerrainConfig struct {
	BoundaryKnives bool `yaml:"boundary_knives"`
	Clusters       int  `yaml:"clusters"`
}

// Target kinds accepted in TargetConfig.Kind.
const (
	TargetFood  = "food"
	TargetHuman = "human"
)

// TargetConfig defines what the snake chases.
type TargetConfig struct {
	Kind       string  `yaml:"kind"`
	FleeChance float64 `yaml:"flee_chance"` // Per-step evasion probability
}

// DifficultyConfig defines the speed progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over the game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra speed at max difficulty
	MinIntervalMS   int     `yaml:"min_interval_ms"`  // Fastest allowed step interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// means "leave the config alone".
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Evasive targets get quicker feet on harder settings
	if cfg.Target.Kind == TargetHuman {
		switch preset {
		case DifficultyEasy:
			cfg.Target.FleeChance = 0.15
		case DifficultyHard:
			cfg.Target.FleeChance = 0.5
		}
	}
}

// Summary describes the rules of the variant in one short line.
func (c SnakeConfig) Summary() string {
	prey := "food"
	if c.Target.Kind == TargetHuman {
		prey = "human"
	}
	goal := "endless"
	if c.Scoring.WinScore > 0 {
		goal = fmt.Sprintf("win at %d", c.Scoring.WinScore)
	}
	return fmt.Sprintf("%dx%d  +%d per %s  %s", c.Grid.Size, c.Grid.Size, c.Scoring.CaptureValue, prey, goal)
}
