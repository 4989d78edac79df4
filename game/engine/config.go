package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ValidatePhysicsParams checks the car model tuning for sanity
func ValidatePhysicsParams(p PhysicsParams) error {
	if p.Accel <= 0 || p.Brake <= 0 || p.Friction <= 0 {
		return fmt.Errorf("physics validation: accel, brake and friction must be positive")
	}
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("physics validation: max_speed must be positive, got %v", p.MaxSpeed)
	}
	if p.PixelsPerKMH <= 0 {
		return fmt.Errorf("physics validation: pixels_per_kmh must be positive, got %v", p.PixelsPerKMH)
	}
	if p.CarHalfLength < 0 {
		return fmt.Errorf("physics validation: car_half_length must not be negative, got %v", p.CarHalfLength)
	}
	if p.MaxFrameDelta <= 0 {
		return fmt.Errorf("physics validation: max_frame_delta must be positive, got %v", p.MaxFrameDelta)
	}
	return nil
}

// ValidateLevelConfig validates an authored level for correctness and
// playability. Light ordering and finish placement are authoring invariants
// the engine relies on, so defects fail here instead of mid-attempt.
func ValidateLevelConfig(lvl *LevelConfig, p PhysicsParams) error {
	if lvl == nil {
		return fmt.Errorf("level validation: level is nil")
	}
	if lvl.Name == "" {
		return fmt.Errorf("level validation: name is required")
	}
	if lvl.StartSpeed < 0 || lvl.StartSpeed > p.MaxSpeed {
		return fmt.Errorf("level validation: start_speed must be between 0 and %v, got %v", p.MaxSpeed, lvl.StartSpeed)
	}
	if lvl.FinishPosition <= 0 {
		return fmt.Errorf("level validation: finish_position must be positive, got %v", lvl.FinishPosition)
	}

	prevPos := 0.0
	for i, light := range lvl.Lights {
		if light.GreenDuration <= 0 {
			return fmt.Errorf("level validation: light %d green_duration must be positive, got %v", i+1, light.GreenDuration)
		}
		if light.RedDuration <= 0 {
			return fmt.Errorf("level validation: light %d red_duration must be positive, got %v", i+1, light.RedDuration)
		}
		if light.PhaseOffset < 0 {
			return fmt.Errorf("level validation: light %d phase_offset must not be negative, got %v", i+1, light.PhaseOffset)
		}
		if light.Position <= prevPos {
			return fmt.Errorf("level validation: light %d position %v must exceed the previous light's position %v", i+1, light.Position, prevPos)
		}
		prevPos = light.Position
	}

	if lvl.FinishPosition <= prevPos {
		return fmt.Errorf("level validation: finish_position %v must exceed the last light's position %v", lvl.FinishPosition, prevPos)
	}
	return nil
}

// LoadLevelConfig reads and parses a level definition from a JSON file. The
// caller is expected to validate it against the physics tuning in use.
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	var lvl LevelConfig
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("failed to parse level file: %w", err)
	}
	return &lvl, nil
}
