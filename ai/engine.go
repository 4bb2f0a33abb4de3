// Package ai drives enemy behavior: the per-entity state machine,
// per-archetype movement formulas, flocking separation, kamikaze attacks,
// difficulty scaling and the boss behavior scripts.
package ai

import (
	"math/rand/v2"

	"github.com/plus3/voidfall/combat"
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
	"github.com/plus3/voidfall/vmath"
)

const (
	evadeHealthEnter   = 0.25
	evadeHealthRecover = 0.40
	evadeTimeout       = 3.0
)

// Engine updates enemy AI. Every per-player-relative rule degrades to a
// Patrol fallback or a skipped tick when no player is registered.
type Engine struct {
	Transforms  *ecs.Store[component.Transform]
	Motions     *ecs.Store[component.Motion]
	Bodies      *ecs.Store[component.RigidBody]
	Healths     *ecs.Store[component.Health]
	Lifetimes   *ecs.Store[component.Lifetime]
	Enemies     *ecs.Store[component.EnemyAI]
	Bosses      *ecs.Store[component.BossAI]
	Separations *ecs.Store[component.Separation]

	Roster *ecs.Roster
	Events *event.Queue
	Combat *combat.Engine
	Rand   *rand.Rand

	Tuning config.Tuning
}

func NewEngine(
	transforms *ecs.Store[component.Transform],
	motions *ecs.Store[component.Motion],
	bodies *ecs.Store[component.RigidBody],
	healths *ecs.Store[component.Health],
	lifetimes *ecs.Store[component.Lifetime],
	enemies *ecs.Store[component.EnemyAI],
	bosses *ecs.Store[component.BossAI],
	separations *ecs.Store[component.Separation],
	roster *ecs.Roster,
	events *event.Queue,
	combatEngine *combat.Engine,
	rng *rand.Rand,
	tuning config.Tuning,
) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		Transforms:  transforms,
		Motions:     motions,
		Bodies:      bodies,
		Healths:     healths,
		Lifetimes:   lifetimes,
		Enemies:     enemies,
		Bosses:      bosses,
		Separations: separations,
		Roster:      roster,
		Events:      events,
		Combat:      combatEngine,
		Rand:        rng,
		Tuning:      tuning,
	}
}

// playerPosition resolves the player's transform. The second return is
// false when there is no player or the player carries no transform.
func (e *Engine) playerPosition() (vmath.Vec3, bool) {
	player, ok := e.Roster.Player()
	if !ok {
		return vmath.Vec3{}, false
	}
	transform := e.Transforms.Get(player)
	if transform == nil {
		return vmath.Vec3{}, false
	}
	return transform.Position, true
}

// UpdateStates runs the state transition rules for every enemy, in the
// fixed order that keeps same-tick reads consistent: detection first,
// then the low-health Evade check, then the no-player fallback, then the
// Evade return conditions. Movement later in the tick dispatches on the
// state written here.
func (e *Engine) UpdateStates(handles []ecs.Handle, dt float64) {
	playerPos, hasPlayer := e.playerPosition()

	for _, h := range handles {
		ai := e.Enemies.Get(h)
		transform := e.Transforms.Get(h)
		if ai == nil || transform == nil {
			continue
		}

		ai.TimeAlive += dt

		// First sighting: capture the patrol anchor.
		if ai.State == component.StateIdle {
			ai.Anchor = transform.Position
			ai.State = component.StatePatrol
		}

		if hasPlayer && ai.State != component.StateChase && ai.State != component.StateEvade {
			distSq := vmath.MagSq(vmath.Sub(playerPos, transform.Position))
			if distSq < ai.DetectionRange*ai.DetectionRange {
				ai.State = component.StateChase
				ai.PlayerFound = true
			}
		}

		health := e.Healths.Get(h)

		if ai.State == component.StateChase && health != nil && health.Max > 0 {
			if health.Current < evadeHealthEnter*health.Max {
				ai.State = component.StateEvade
				ai.StateTimer = 0
			}
		}

		if !hasPlayer && (ai.State == component.StateChase || ai.State == component.StateEvade) {
			ai.State = component.StatePatrol
		}

		if ai.State == component.StateEvade {
			ai.StateTimer += dt
			recovered := health != nil && health.Max > 0 &&
				health.Current > evadeHealthRecover*health.Max
			if ai.StateTimer >= evadeTimeout || recovered {
				ai.State = component.StateChase
			}
		}
	}
}

// Kamikaze applies melee damage to the player from every enemy within
// attack range and forces the attacker's lifetime to expire, marking it
// for removal through the normal expiry path. Bosses do not kamikaze.
func (e *Engine) Kamikaze(handles []ecs.Handle) {
	player, ok := e.Roster.Player()
	if !ok {
		return
	}
	playerPos, ok := e.playerPosition()
	if !ok {
		return
	}

	rangeSq := e.Tuning.KamikazeRange * e.Tuning.KamikazeRange

	for _, h := range handles {
		if e.Bosses.Has(h) {
			continue
		}
		ai := e.Enemies.Get(h)
		transform := e.Transforms.Get(h)
		if ai == nil || transform == nil {
			continue
		}

		if vmath.MagSq(vmath.Sub(playerPos, transform.Position)) >= rangeSq {
			continue
		}

		e.Combat.Damage(player, ai.Damage)
		if lifetime := e.Lifetimes.Get(h); lifetime != nil {
			lifetime.Expire()
		}
	}
}
