package netconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// PredictionConfig holds the tunables shared by client-side prediction and the
// authoritative movement simulation. Distances are world units, speeds are
// units per second.
type PredictionConfig struct {
	// Reconciliation
	PositionThreshold float64 `env:"PREDICT_POSITION_THRESHOLD"` // Linear divergence tolerated without correction
	GroundBlend       float64 `env:"PREDICT_GROUND_BLEND"`       // Correction factor while grounded
	AirBlend          float64 `env:"PREDICT_AIR_BLEND"`          // Correction factor while airborne
	ServerTickRate    int     `env:"PREDICT_SERVER_TICK_RATE"`   // Nominal replay step is 1/ServerTickRate

	// Movement
	MoveSpeed     float64 `env:"PREDICT_MOVE_SPEED"`
	VelocityBlend float64 `env:"PREDICT_VELOCITY_BLEND"` // Per-frame smoothing toward target velocity at 60 Hz
	JumpImpulse   float64 `env:"PREDICT_JUMP_IMPULSE"`
	Gravity       float64 `env:"PREDICT_GRAVITY"`
	MaxFallSpeed  float64 `env:"PREDICT_MAX_FALL_SPEED"`

	// Damping
	DampingFactor    float64 `env:"PREDICT_DAMPING_FACTOR"`
	DampingStopSpeed float64 `env:"PREDICT_DAMPING_STOP_SPEED"`

	// Timers
	JumpCooldown   time.Duration `env:"PREDICT_JUMP_COOLDOWN"`
	JumpStateReset time.Duration `env:"PREDICT_JUMP_STATE_RESET"`
	LedgerHorizon  time.Duration `env:"PREDICT_LEDGER_HORIZON"`
}

// Prediction is the process-wide tuning, initialised to defaults.
var Prediction = DefaultPrediction()

// DefaultPrediction returns the empirically tuned defaults.
func DefaultPrediction() PredictionConfig {
	return PredictionConfig{
		PositionThreshold: 0.2,
		GroundBlend:       0.1,
		AirBlend:          0.15,
		ServerTickRate:    20,

		MoveSpeed:     5.0,
		VelocityBlend: 0.2,
		JumpImpulse:   6.0,
		Gravity:       18.0,
		MaxFallSpeed:  20.0,

		DampingFactor:    0.9,
		DampingStopSpeed: 0.01,

		JumpCooldown:   500 * time.Millisecond,
		JumpStateReset: 1000 * time.Millisecond,
		LedgerHorizon:  1000 * time.Millisecond,
	}
}

// LoadPrediction returns the defaults overridden by any PREDICT_* environment
// variables.
func LoadPrediction() (PredictionConfig, error) {
	cfg := DefaultPrediction()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse prediction env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects tunables that would break convergence or timing.
func (c PredictionConfig) Validate() error {
	if c.PositionThreshold < 0 {
		return fmt.Errorf("position threshold must not be negative, got %v", c.PositionThreshold)
	}
	for name, f := range map[string]float64{
		"ground blend":   c.GroundBlend,
		"air blend":      c.AirBlend,
		"velocity blend": c.VelocityBlend,
		"damping factor": c.DampingFactor,
	} {
		if f <= 0 || f >= 1 {
			return fmt.Errorf("%s must be in (0, 1), got %v", name, f)
		}
	}
	if c.ServerTickRate <= 0 {
		return fmt.Errorf("server tick rate must be positive, got %d", c.ServerTickRate)
	}
	if c.LedgerHorizon <= 0 {
		return fmt.Errorf("ledger horizon must be positive, got %v", c.LedgerHorizon)
	}
	return nil
}

// ReplayStep is the nominal timestep used when replaying buffered inputs.
func (c PredictionConfig) ReplayStep() float64 {
	return 1 / float64(c.ServerTickRate)
}
