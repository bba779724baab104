package script

import (
	"fmt"

	"github.com/d5/tengo/v2"

	"github.com/troupo/invaders/assets"
)

// Difficulty is the set of per-wave tuning values produced by the
// difficulty script.
type Difficulty struct {
	SpeedScale   float64 // multiplier on formation march speed
	FireInterval float64 // seconds between enemy volleys
	DiveChance   float64 // per-second chance an invader breaks formation
}

// Evaluator runs the wave-difficulty tengo script. The script is
// compiled once; each wave runs against a clone.
type Evaluator struct {
	compiled *tengo.Compiled
}

// NewEvaluator compiles a difficulty script. The script reads the
// 1-based `wave` variable and must define speed_scale, fire_interval,
// and dive_chance.
func NewEvaluator(src []byte) (*Evaluator, error) {
	s := tengo.NewScript(src)
	if err := s.Add("wave", 1); err != nil {
		return nil, fmt.Errorf("script: add wave variable: %w", err)
	}
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile difficulty script: %w", err)
	}
	return &Evaluator{compiled: compiled}, nil
}

// LoadEvaluator compiles the embedded difficulty script.
func LoadEvaluator() (*Evaluator, error) {
	src, err := assets.LoadFile("scripts/difficulty.tengo")
	if err != nil {
		return nil, fmt.Errorf("script: load difficulty script: %w", err)
	}
	return NewEvaluator(src)
}

// ForWave evaluates the script for a 1-based wave number.
func (e *Evaluator) ForWave(wave int) (Difficulty, error) {
	c := e.compiled.Clone()
	if err := c.Set("wave", wave); err != nil {
		return Difficulty{}, fmt.Errorf("script: set wave=%d: %w", wave, err)
	}
	if err := c.Run(); err != nil {
		return Difficulty{}, fmt.Errorf("script: run difficulty script for wave %d: %w", wave, err)
	}
	return Difficulty{
		SpeedScale:   c.Get("speed_scale").Float(),
		FireInterval: c.Get("fire_interval").Float(),
		DiveChance:   c.Get("dive_chance").Float(),
	}, nil
}
