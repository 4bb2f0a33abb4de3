package ai

import (
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/ecs"
)

const (
	hordeHealthPerMinute = 0.5
	hordeDamagePerMinute = 0.3
	hordeSpeedPerMinute  = 0.2
)

// ScaleDifficulty recomputes enemy stats from the base tuning values when
// horde mode is active. Explicit multipliers in the difficulty record
// override the per-minute linear defaults. Current health is only ever
// reduced by a shrinking cap, never directly.
func (e *Engine) ScaleDifficulty(handles []ecs.Handle, diff config.Difficulty) {
	if !diff.HordeMode || diff.HordeSurvivalTime <= 0 {
		return
	}

	minutes := diff.HordeSurvivalTime / 60.0

	healthMult := diff.HealthMultiplier
	if healthMult <= 0 {
		healthMult = 1 + hordeHealthPerMinute*minutes
	}
	damageMult := diff.DamageMultiplier
	if damageMult <= 0 {
		damageMult = 1 + hordeDamagePerMinute*minutes
	}
	speedMult := diff.SpeedMultiplier
	if speedMult <= 0 {
		speedMult = 1 + hordeSpeedPerMinute*minutes
	}

	for _, h := range handles {
		ai := e.Enemies.Get(h)
		if ai == nil {
			continue
		}

		ai.Damage = e.Tuning.BaseEnemyDamage * damageMult
		ai.Speed = e.Tuning.BaseEnemySpeed * speedMult

		if health := e.Healths.Get(h); health != nil {
			health.Max = e.Tuning.BaseEnemyHealth * healthMult
			if health.Current > health.Max {
				health.Current = health.Max
			}
		}
	}
}
