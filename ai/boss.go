package ai

import (
	"math"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
	"github.com/plus3/voidfall/vmath"
)

const (
	dreadnoughtSpeedFactor  = 0.5
	dreadnoughtBeamRange    = 800.0
	dreadnoughtBeamCharge   = 3.0
	dreadnoughtBeamWindow   = 5.0
	dreadnoughtSpawnPeriod  = 15.0
	dreadnoughtMinionCap    = 4
	phaseShifterSpeedFactor = 1.2
	phaseShifterZigAmp      = 100.0
	phaseShifterZigFreq     = 4.0
	phaseActiveDuration     = 2.0
	phaseInactiveDuration   = 8.0
	swarmQueenStandoff      = 400.0
	swarmQueenOrbitGain     = 0.5
	swarmQueenOrbitFactor   = 0.5
	swarmQueenSpawnPeriod   = 5.0
	swarmQueenMinionCap     = 12
	minionSpawnRadius       = 150.0
	minionSpawnAngleStep    = math.Pi / 4
)

// UpdateBosses runs each boss's behavior script for the tick. Spawn and
// beam effects are published as events for external collaborators; this
// engine never creates entities itself. With no player registered, boss
// movement and attacks skip the tick; phase cycles still advance.
func (e *Engine) UpdateBosses(dt float64) {
	playerPos, hasPlayer := e.playerPosition()
	player, _ := e.Roster.Player()

	for h, boss := range e.Bosses.All() {
		ai := e.Enemies.Get(h)
		transform := e.Transforms.Get(h)
		motion := e.Motions.Get(h)
		if ai == nil || transform == nil || motion == nil {
			continue
		}

		switch boss.Kind {
		case component.BossDreadnought:
			e.updateDreadnought(h, boss, ai, transform, motion, player, playerPos, hasPlayer, dt)
		case component.BossPhaseShifter:
			e.updatePhaseShifter(h, boss, ai, transform, motion, playerPos, hasPlayer, dt)
		case component.BossSwarmQueen:
			e.updateSwarmQueen(h, boss, ai, transform, motion, playerPos, hasPlayer, dt)
		}
	}
}

// updateDreadnought approaches slowly, charges its beam inside range, and
// spawns single minions on a fixed cadence up to the cap.
func (e *Engine) updateDreadnought(
	h ecs.Handle, boss *component.BossAI, ai *component.EnemyAI,
	transform *component.Transform, motion *component.Motion,
	player ecs.Handle, playerPos vmath.Vec3, hasPlayer bool, dt float64,
) {
	boss.SpawnCooldown += dt
	if boss.SpawnCooldown >= dreadnoughtSpawnPeriod && boss.MinionCount < dreadnoughtMinionCap {
		e.Events.Push(event.TypeMinionSpawnRequest, &event.MinionSpawnPayload{
			Attacker: h,
			Position: minionSpawnPosition(transform.Position, boss.MinionCount),
		})
		boss.MinionCount++
		boss.SpawnCooldown = 0
	}

	if !hasPlayer {
		return
	}

	toPlayer := vmath.Sub(playerPos, transform.Position)
	dist := vmath.Mag(toPlayer)
	if dist == 0 {
		return
	}
	dir := vmath.Scale(toPlayer, 1.0/dist)

	motion.Velocity = vmath.Scale(dir, ai.Speed*dreadnoughtSpeedFactor)
	e.face(transform, dir)

	if dist > dreadnoughtBeamRange {
		return
	}

	boss.BeamCharge += dt
	if !boss.BeamActive && boss.BeamCharge >= dreadnoughtBeamCharge {
		boss.BeamActive = true
		e.Events.Push(event.TypeBeamAttack, &event.BeamAttackPayload{
			Attacker: h,
			Target:   player,
			Damage:   ai.Damage,
		})
	}
	if boss.BeamCharge >= dreadnoughtBeamWindow {
		boss.BeamActive = false
		boss.BeamCharge = 0
	}
}

// updatePhaseShifter toggles invulnerability on its duty cycle and moves
// with a fast zigzag toward the player.
func (e *Engine) updatePhaseShifter(
	h ecs.Handle, boss *component.BossAI, ai *component.EnemyAI,
	transform *component.Transform, motion *component.Motion,
	playerPos vmath.Vec3, hasPlayer bool, dt float64,
) {
	boss.PhaseTimer += dt
	if !boss.PhaseActive && boss.PhaseTimer >= phaseInactiveDuration {
		boss.PhaseActive = true
		boss.PhaseTimer = 0
		e.Events.Push(event.TypePhaseShift, &event.PhaseShiftPayload{Attacker: h, Active: true})
	} else if boss.PhaseActive && boss.PhaseTimer >= phaseActiveDuration {
		boss.PhaseActive = false
		boss.PhaseTimer = 0
		e.Events.Push(event.TypePhaseShift, &event.PhaseShiftPayload{Attacker: h, Active: false})
	}

	if !hasPlayer {
		return
	}

	toPlayer := vmath.Sub(playerPos, transform.Position)
	dir := vmath.Normalize(toPlayer)
	if vmath.IsZero(dir) {
		return
	}
	perp := horizontalPerp(dir)
	lateral := vmath.Scale(perp, math.Sin(ai.TimeAlive*phaseShifterZigFreq)*phaseShifterZigAmp)

	motion.Velocity = vmath.Add(vmath.Scale(dir, ai.Speed*phaseShifterSpeedFactor), lateral)
	e.face(transform, dir)
}

// updateSwarmQueen holds a standoff orbit around the player with a
// proportional controller on the distance error and spawns minions in
// pairs at increasing angular offsets.
func (e *Engine) updateSwarmQueen(
	h ecs.Handle, boss *component.BossAI, ai *component.EnemyAI,
	transform *component.Transform, motion *component.Motion,
	playerPos vmath.Vec3, hasPlayer bool, dt float64,
) {
	boss.SpawnCooldown += dt
	if boss.SpawnCooldown >= swarmQueenSpawnPeriod && boss.MinionCount < swarmQueenMinionCap {
		angle := float64(boss.MinionCount) * minionSpawnAngleStep
		for _, offset := range []float64{angle, angle + math.Pi} {
			e.Events.Push(event.TypeMinionSpawnRequest, &event.MinionSpawnPayload{
				Attacker: h,
				Position: vmath.Add(transform.Position, vmath.Vec3{
					X: math.Cos(offset) * minionSpawnRadius,
					Z: math.Sin(offset) * minionSpawnRadius,
				}),
			})
		}
		boss.MinionCount += 2
		boss.SpawnCooldown = 0
	}

	if !hasPlayer {
		return
	}

	toPlayer := vmath.Sub(playerPos, transform.Position)
	dist := vmath.Mag(toPlayer)
	if dist == 0 {
		return
	}
	dir := vmath.Scale(toPlayer, 1.0/dist)
	tangent := horizontalPerp(dir)

	radial := vmath.Scale(dir, (dist-swarmQueenStandoff)*swarmQueenOrbitGain)
	orbit := vmath.Scale(tangent, ai.Speed*swarmQueenOrbitFactor)

	motion.Velocity = vmath.Add(radial, orbit)
	e.face(transform, motion.Velocity)
}

// minionSpawnPosition places a single minion around the boss at an angle
// advancing with each spawn.
func minionSpawnPosition(center vmath.Vec3, index int) vmath.Vec3 {
	angle := float64(index) * (math.Pi / 2)
	return vmath.Add(center, vmath.Vec3{
		X: math.Cos(angle) * minionSpawnRadius,
		Z: math.Sin(angle) * minionSpawnRadius,
	})
}
