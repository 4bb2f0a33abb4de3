// Package config holds the simulation tuning constants and the per-tick
// difficulty record. Tuning is loaded once at startup; difficulty is
// passed into every tick explicitly, never read from ambient state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the base balance configuration for the simulation core.
type Tuning struct {
	// TimeScale rescales incoming frame deltas to the fixed reference
	// rate the movement formulas were tuned against.
	TimeScale float64 `yaml:"time_scale"`

	DefaultMaxSpeed float64 `yaml:"default_max_speed"`
	BoostMultiplier float64 `yaml:"boost_multiplier"`
	Restitution     float64 `yaml:"restitution"`

	PatrolRadius         float64 `yaml:"patrol_radius"`
	PatrolAngularRate    float64 `yaml:"patrol_angular_rate"`
	SeparationMagnitude  float64 `yaml:"separation_magnitude"`
	SeparationRadiusMult float64 `yaml:"separation_radius_mult"`
	KamikazeRange        float64 `yaml:"kamikaze_range"`

	BaseEnemyDamage float64 `yaml:"base_enemy_damage"`
	BaseEnemySpeed  float64 `yaml:"base_enemy_speed"`
	BaseEnemyHealth float64 `yaml:"base_enemy_health"`
}

// Default returns the reference tuning values.
func Default() Tuning {
	return Tuning{
		TimeScale:            1.0,
		DefaultMaxSpeed:      1200,
		BoostMultiplier:      2.0,
		Restitution:          0.5,
		PatrolRadius:         200,
		PatrolAngularRate:    0.5,
		SeparationMagnitude:  150,
		SeparationRadiusMult: 2.5,
		KamikazeRange:        75,
		BaseEnemyDamage:      15,
		BaseEnemySpeed:       700,
		BaseEnemyHealth:      20,
	}
}

// Load reads tuning from a YAML file, filling unset fields with defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning: %w", err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("parse tuning: %w", err)
	}

	if t.TimeScale <= 0 {
		t.TimeScale = 1.0
	}
	return t, nil
}

// Difficulty is the per-tick scaling record supplied by the settings
// collaborator. The zero value leaves all scaling at identity.
type Difficulty struct {
	HealthMultiplier  float64 `yaml:"health_multiplier"`
	DamageMultiplier  float64 `yaml:"damage_multiplier"`
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`
	HordeMode         bool    `yaml:"horde_mode"`
	HordeSurvivalTime float64 `yaml:"horde_survival_time"`
}
