package config

import (
	"math"
	"time"
)

// defaultMinInterval applies when the config leaves min_interval_ms unset.
const defaultMinInterval = 60 * time.Millisecond

// DifficultyManager derives the snake's step interval from the score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) for a score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type != "score" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Interval returns the step interval for a score. The base interval is
// divided by 1 + level*speed_multiplier and never drops below the minimum.
func (d *DifficultyManager) Interval(base time.Duration, score int) time.Duration {
	if !d.cfg.Enabled {
		return base
	}

	speed := 1.0 + d.Level(score)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	interval := time.Duration(float64(base) / speed)

	floor := defaultMinInterval
	if d.cfg.Scaling.MinIntervalMS > 0 {
		floor = time.Duration(d.cfg.Scaling.MinIntervalMS) * time.Millisecond
	}
	if interval < floor {
		interval = floor
	}
	if interval > base {
		interval = base
	}
	return interval
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
