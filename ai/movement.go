package ai

import (
	"math"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/vmath"
)

const (
	patrolSpeedFactor = 0.5
	heavySpeedFactor  = 0.7
	swiftSpeedFactor  = 1.5
	evadeSpeedFactor  = 1.2

	spiralDampenRange = 500.0
	swiftZigFrequency = 3.0
	swiftZigAmplitude = 80.0
	evadeJitter       = 0.1
)

// Move computes each enemy's velocity fresh for this tick from its state
// and archetype, blends in the separation force, and faces the entity
// along its travel (or chase) direction. Bosses are moved by their own
// behavior scripts instead.
func (e *Engine) Move(handles []ecs.Handle, dt float64) {
	playerPos, hasPlayer := e.playerPosition()

	for _, h := range handles {
		if e.Bosses.Has(h) {
			continue
		}
		ai := e.Enemies.Get(h)
		transform := e.Transforms.Get(h)
		motion := e.Motions.Get(h)
		if ai == nil || transform == nil || motion == nil {
			continue
		}

		switch ai.State {
		case component.StateIdle:
			// Transitions promote Idle to Patrol before movement runs.
		case component.StatePatrol:
			e.movePatrol(h, ai, transform, motion)
		case component.StateChase:
			if hasPlayer {
				e.moveChase(h, ai, transform, motion, playerPos)
			}
		case component.StateEvade:
			if hasPlayer {
				e.moveEvade(h, ai, transform, motion, playerPos)
			}
		}
	}
}

// movePatrol orbits the spawn anchor on a horizontal circle at half speed.
func (e *Engine) movePatrol(h ecs.Handle, ai *component.EnemyAI, transform *component.Transform, motion *component.Motion) {
	angle := ai.TimeAlive * e.Tuning.PatrolAngularRate
	target := vmath.Add(ai.Anchor, vmath.Vec3{
		X: math.Cos(angle) * e.Tuning.PatrolRadius,
		Z: math.Sin(angle) * e.Tuning.PatrolRadius,
	})

	dir := vmath.Normalize(vmath.Sub(target, transform.Position))
	velocity := vmath.Scale(dir, ai.Speed*patrolSpeedFactor)
	velocity = e.blendSeparation(h, ai, velocity)

	motion.Velocity = velocity
	e.face(transform, velocity)
}

// moveChase dispatches on archetype: spiral approach for Standard, slow
// direct for Heavy, fast zigzag for Swift.
func (e *Engine) moveChase(h ecs.Handle, ai *component.EnemyAI, transform *component.Transform, motion *component.Motion, playerPos vmath.Vec3) {
	toPlayer := vmath.Sub(playerPos, transform.Position)
	dist := vmath.Mag(toPlayer)
	if dist == 0 {
		return
	}
	dir := vmath.Scale(toPlayer, 1.0/dist)
	perp := horizontalPerp(dir)

	var velocity vmath.Vec3
	switch ai.Archetype {
	case component.ArchetypeStandard:
		amplitude := ai.SpiralAmplitude
		if dist < spiralDampenRange {
			amplitude *= dist / spiralDampenRange
		}
		phase := ai.TimeAlive*ai.SpiralFrequency + ai.SpiralPhase
		lateral := vmath.Scale(perp, math.Sin(phase)*amplitude)
		velocity = vmath.Add(vmath.Scale(dir, ai.Speed), lateral)
	case component.ArchetypeHeavy:
		velocity = vmath.Scale(dir, ai.Speed*heavySpeedFactor)
	case component.ArchetypeSwift:
		lateral := vmath.Scale(perp, math.Sin(ai.TimeAlive*swiftZigFrequency)*swiftZigAmplitude)
		velocity = vmath.Add(vmath.Scale(dir, ai.Speed*swiftSpeedFactor), lateral)
	}

	velocity = e.blendSeparation(h, ai, velocity)
	motion.Velocity = velocity
	e.face(transform, dir)
}

// moveEvade retreats from the player with small random jitter so the
// escape path is not predictable.
func (e *Engine) moveEvade(h ecs.Handle, ai *component.EnemyAI, transform *component.Transform, motion *component.Motion, playerPos vmath.Vec3) {
	away := vmath.Normalize(vmath.Sub(transform.Position, playerPos))
	away.X += (e.Rand.Float64()*2 - 1) * evadeJitter
	away.Y += (e.Rand.Float64()*2 - 1) * evadeJitter
	away.Z += (e.Rand.Float64()*2 - 1) * evadeJitter
	away = vmath.Normalize(away)
	if vmath.IsZero(away) {
		return
	}

	velocity := vmath.Scale(away, ai.Speed*evadeSpeedFactor)
	velocity = e.blendSeparation(h, ai, velocity)

	motion.Velocity = velocity
	e.face(transform, velocity)
}

func (e *Engine) face(transform *component.Transform, dir vmath.Vec3) {
	if vmath.IsZero(dir) {
		return
	}
	transform.Rotation = vmath.QuatLookAt(dir)
}

// horizontalPerp returns the horizontal perpendicular of dir, falling
// back to world X when dir is vertical.
func horizontalPerp(dir vmath.Vec3) vmath.Vec3 {
	perp := vmath.Cross(dir, vmath.Up)
	if vmath.IsZero(perp) {
		return vmath.Vec3{X: 1}
	}
	return vmath.Normalize(perp)
}
