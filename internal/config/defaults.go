package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/snake_capture.yaml
var defaultCaptureYAML []byte

// Game IDs with built-in configurations.
const (
	ClassicID = "snake"
	CaptureID = "snake_capture"
)

// DefaultSnakeConfig returns the knife-bordered food variant.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{Size: 20},
		Snake: SnakeBody{
			InitialLength:  3,
			MoveIntervalMS: 200,
		},
		Scoring: ScoringConfig{
			CaptureValue:     1,
			GrowthPerCapture: 1,
			WinScore:         0,
		},
		Terrain: TerrainConfig{
			BoundaryKnives: true,
			Clusters:       0,
		},
		Target: TargetConfig{
			Kind:       TargetFood,
			FleeChance: 0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				MinIntervalMS:   70,
			},
		},
	}
}

// DefaultCaptureConfig returns the village variant with a fleeing human.
func DefaultCaptureConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{Size: 20},
		Snake: SnakeBody{
			InitialLength:  3,
			MoveIntervalMS: 200,
		},
		Scoring: ScoringConfig{
			CaptureValue:     5,
			GrowthPerCapture: 1,
			WinScore:         20,
		},
		Terrain: TerrainConfig{
			BoundaryKnives: false,
			Clusters:       8,
		},
		Target: TargetConfig{
			Kind:       TargetHuman,
			FleeChance: 0.3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				MinIntervalMS:   90,
			},
		},
	}
}

// DefaultFor returns the hard-coded config for a game ID.
func DefaultFor(gameID string) SnakeConfig {
	if gameID == CaptureID {
		return DefaultCaptureConfig()
	}
	return DefaultSnakeConfig()
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case ClassicID:
		return defaultSnakeYAML
	case CaptureID:
		return defaultCaptureYAML
	default:
		return nil
	}
}
