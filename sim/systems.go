package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
)

// The systems below are the fixed per-tick pass order. Later passes read
// state written by earlier passes in the same tick, so registration
// order in NewWorld is normative.

// detectionSystem runs the AI state transition rules.
type detectionSystem struct {
	world *World
}

func (s *detectionSystem) Execute(frame *ecs.Frame) {
	w := s.world
	w.ai.UpdateStates(w.roster.Enemies.Handles(), frame.DeltaTime)
}

// separationSystem recomputes the transient flocking forces consumed by
// this tick's movement pass.
type separationSystem struct {
	world *World
}

func (s *separationSystem) Execute(frame *ecs.Frame) {
	w := s.world
	w.ai.AccumulateSeparation(w.roster.Enemies.Handles())
}

// movementSystem computes enemy velocities from state and archetype.
type movementSystem struct {
	world *World
}

func (s *movementSystem) Execute(frame *ecs.Frame) {
	w := s.world
	w.ai.Move(w.roster.Enemies.Handles(), frame.DeltaTime)
}

// bossSystem runs boss behavior scripts after regular movement so boss
// velocity always wins over the generic formulas.
type bossSystem struct {
	world *World
}

func (s *bossSystem) Execute(frame *ecs.Frame) {
	s.world.ai.UpdateBosses(frame.DeltaTime)
}

// kamikazeSystem applies melee damage from enemies in attack range.
type kamikazeSystem struct {
	world *World
}

func (s *kamikazeSystem) Execute(frame *ecs.Frame) {
	w := s.world
	w.ai.Kamikaze(w.roster.Enemies.Handles())
}

// difficultySystem applies horde-mode stat scaling from the per-tick
// difficulty record.
type difficultySystem struct {
	world *World
}

func (s *difficultySystem) Execute(frame *ecs.Frame) {
	w := s.world
	w.ai.ScaleDifficulty(w.roster.Enemies.Handles(), w.difficulty)
}

// physicsSystem integrates motion for all entities. The physical
// collision response runs over the health-bearing set only; projectile
// overlaps are trigger pairs handled by the combat system.
type physicsSystem struct {
	world *World
}

func (s *physicsSystem) Execute(frame *ecs.Frame) {
	w := s.world
	all := w.roster.All.Handles()
	dt := frame.DeltaTime

	w.physics.ApplyThrust(all, dt)
	w.physics.IntegrateForces(all, dt)
	w.physics.ApplyDrag(all, dt)
	w.physics.IntegrateTransforms(all, dt)
	w.physics.ResolveCollisions(w.roster.Damageable.Handles())
}

// combatSystem detects projectile hits, applies their damage, spends the
// projectiles, then runs shield regeneration and lifetime aging.
type combatSystem struct {
	world *World
}

func (s *combatSystem) Execute(frame *ecs.Frame) {
	w := s.world

	hits := w.collisions.Detect(w.roster.Projectiles.Handles(), w.roster.Damageable.Handles())
	w.combat.ApplyHits(hits)

	// A projectile is consumed by its first hit.
	for _, hit := range hits {
		if lifetime := w.Lifetimes.Get(hit.Impactor); lifetime != nil {
			lifetime.Expire()
		}
	}

	w.combat.RegenerateShields(w.roster.Damageable.Handles(), frame.DeltaTime)
	w.combat.AgeLifetimes(frame.DeltaTime)
}

// cleanupSystem detects deaths and expiries, publishes destruction
// events, and queues removals for the between-tick flush.
type cleanupSystem struct {
	world *World
}

func (s *cleanupSystem) Execute(frame *ecs.Frame) {
	w := s.world
	destroyed := make(map[ecs.Handle]struct{})

	for _, h := range w.roster.Damageable.Handles() {
		health := w.Healths.Get(h)
		if health == nil || health.Alive() {
			continue
		}
		s.publishDestroyed(h, destroyed)
		frame.Commands.Remove(h)
	}

	for h, lifetime := range w.Lifetimes.All() {
		if !lifetime.Expired() {
			continue
		}
		s.publishDestroyed(h, destroyed)
		frame.Commands.Remove(h)
	}
}

func (s *cleanupSystem) publishDestroyed(h ecs.Handle, seen map[ecs.Handle]struct{}) {
	if _, ok := seen[h]; ok {
		return
	}
	seen[h] = struct{}{}

	w := s.world
	payload := &event.EntityDestroyedPayload{
		Entity:  h,
		IsEnemy: w.roster.Enemies.Contains(h),
	}
	if boss := w.BossAIs.Get(h); boss != nil {
		payload.IsBoss = true
		payload.BossKind = boss.Kind
	}

	w.events.Push(event.TypeEntityDestroyed, payload)

	w.log.WithFields(logrus.Fields{
		"entity": h,
		"enemy":  payload.IsEnemy,
		"boss":   payload.IsBoss,
	}).Debug("entity destroyed")
}
