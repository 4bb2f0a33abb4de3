// Package combat resolves damage from collision events, regenerates
// shields over time, and ages time-limited entities. It drives health
// toward zero but never removes entities; death detection belongs to the
// orchestrator so destruction events can be published first.
package combat

import (
	"math"

	"github.com/plus3/voidfall/collision"
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
)

const (
	feedbackReferenceDamage = 50.0
	feedbackDuration        = 0.2
)

// Engine applies damage with shield absorption and runs shield
// regeneration and lifetime aging.
type Engine struct {
	Healths   *ecs.Store[component.Health]
	Weapons   *ecs.Store[component.Weapon]
	Lifetimes *ecs.Store[component.Lifetime]
	Bosses    *ecs.Store[component.BossAI]

	Roster *ecs.Roster
	Events *event.Queue
}

func NewEngine(
	healths *ecs.Store[component.Health],
	weapons *ecs.Store[component.Weapon],
	lifetimes *ecs.Store[component.Lifetime],
	bosses *ecs.Store[component.BossAI],
	roster *ecs.Roster,
	events *event.Queue,
) *Engine {
	return &Engine{
		Healths:   healths,
		Weapons:   weapons,
		Lifetimes: lifetimes,
		Bosses:    bosses,
		Roster:    roster,
		Events:    events,
	}
}

// ApplyHits consumes trigger collision events, reading each impactor's
// weapon damage and applying it to the target.
func (e *Engine) ApplyHits(hits []collision.Hit) {
	for _, hit := range hits {
		weapon := e.Weapons.Get(hit.Impactor)
		if weapon == nil || weapon.Damage <= 0 {
			continue
		}
		e.Damage(hit.Target, weapon.Damage)
	}
}

// Damage applies damage to the target with resistance and shield
// absorption: shields absorb first, any remainder subtracts from health
// floored at zero. Returns true when any damage landed. A target in an
// invulnerable boss phase takes nothing.
func (e *Engine) Damage(target ecs.Handle, damage float64) bool {
	if damage <= 0 {
		return false
	}
	health := e.Healths.Get(target)
	if health == nil {
		return false
	}
	if boss := e.Bosses.Get(target); boss != nil && boss.PhaseActive {
		return false
	}

	resistance := clamp01(health.Resistance)
	effective := damage * (1 - resistance)
	if effective <= 0 {
		return false
	}

	if health.Shield > 0 {
		if effective <= health.Shield {
			health.Shield -= effective
		} else {
			remainder := effective - health.Shield
			health.Shield = 0
			health.Current = math.Max(0, health.Current-remainder)
		}
	} else {
		health.Current = math.Max(0, health.Current-effective)
	}

	health.SinceDamage = 0

	if player, ok := e.Roster.Player(); ok && player == target {
		e.Events.Push(event.TypePlayerDamageFeedback, &event.PlayerDamageFeedbackPayload{
			Intensity: math.Min(1, effective/feedbackReferenceDamage),
			Duration:  feedbackDuration,
		})
	}
	return true
}

// RegenerateShields advances the no-damage accumulator and, once past the
// regen delay, restores shields toward their maximum.
func (e *Engine) RegenerateShields(handles []ecs.Handle, dt float64) {
	for _, h := range handles {
		health := e.Healths.Get(h)
		if health == nil {
			continue
		}

		health.SinceDamage += dt

		if health.SinceDamage <= health.RegenDelay {
			continue
		}
		if health.Shield >= health.MaxShield {
			continue
		}

		health.Shield = math.Min(health.MaxShield, health.Shield+health.RegenRate*dt)
	}
}

// AgeLifetimes advances age for every tracked entity. Expiry is reported
// through Lifetime.Expired for caller-driven removal.
func (e *Engine) AgeLifetimes(dt float64) {
	for _, lifetime := range e.Lifetimes.All() {
		lifetime.Age += dt
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
