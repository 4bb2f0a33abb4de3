package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/vmath"
)

func TestPatrolOrbitsAtHalfSpeed(t *testing.T) {
	f := newFixture()
	h := f.spawnEnemy(1, vmath.Vec3{X: 1000}, component.EnemyAI{
		State: component.StatePatrol, Speed: 700,
		Anchor: vmath.Vec3{},
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	vel := f.engine.Motions.Get(h).Velocity
	assert.InDelta(t, 350.0, vmath.Mag(vel), 1e-9)
}

func TestChaseHeavyMovesStraightAtReducedSpeed(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{X: 1000})
	h := f.spawnEnemy(1, vmath.Vec3{}, component.EnemyAI{
		State: component.StateChase, Archetype: component.ArchetypeHeavy, Speed: 700,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	vel := f.engine.Motions.Get(h).Velocity
	assert.InDelta(t, 490.0, vel.X, 1e-9)
	assert.InDelta(t, 0.0, vel.Y, 1e-9)
	assert.InDelta(t, 0.0, vel.Z, 1e-9)
}

func TestChaseStandardSpiralLateral(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{X: 1000})
	h := f.spawnEnemy(1, vmath.Vec3{}, component.EnemyAI{
		State: component.StateChase, Archetype: component.ArchetypeStandard, Speed: 700,
		SpiralAmplitude: 120, SpiralFrequency: 0, SpiralPhase: 1.5707963267948966,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	// Beyond the dampening range: full amplitude along the horizontal
	// perpendicular, full speed along the approach axis.
	vel := f.engine.Motions.Get(h).Velocity
	assert.InDelta(t, 700.0, vel.X, 1e-9)
	assert.InDelta(t, 120.0, vel.Z, 1e-6)
}

func TestChaseStandardSpiralDampensNearPlayer(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{X: 250})
	h := f.spawnEnemy(1, vmath.Vec3{}, component.EnemyAI{
		State: component.StateChase, Archetype: component.ArchetypeStandard, Speed: 700,
		SpiralAmplitude: 120, SpiralFrequency: 0, SpiralPhase: 1.5707963267948966,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	// Inside half the dampening range the amplitude halves.
	vel := f.engine.Motions.Get(h).Velocity
	assert.InDelta(t, 60.0, vel.Z, 1e-6)
}

func TestChaseSwiftIsFaster(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{X: 1000})
	h := f.spawnEnemy(1, vmath.Vec3{}, component.EnemyAI{
		State: component.StateChase, Archetype: component.ArchetypeSwift, Speed: 700,
	})

	// TimeAlive of zero keeps the zigzag at its neutral point.
	f.engine.Move(f.enemyHandles(), 0.016)

	vel := f.engine.Motions.Get(h).Velocity
	assert.InDelta(t, 1050.0, vel.X, 1e-9)
	assert.InDelta(t, 0.0, vel.Z, 1e-9)
}

func TestEvadeRetreatsAtBoostedSpeed(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{})
	h := f.spawnEnemy(1, vmath.Vec3{X: 100}, component.EnemyAI{
		State: component.StateEvade, Speed: 700,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	vel := f.engine.Motions.Get(h).Velocity
	assert.InDelta(t, 840.0, vmath.Mag(vel), 1e-9)
	// Jitter is small; the retreat heading still points away from the
	// player.
	assert.Greater(t, vel.X, 0.0)
}

func TestChaseFacesThePlayer(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{Z: 1000})
	h := f.spawnEnemy(1, vmath.Vec3{}, component.EnemyAI{
		State: component.StateChase, Archetype: component.ArchetypeHeavy, Speed: 700,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	forward := vmath.QuatRotate(f.engine.Transforms.Get(h).Rotation, vmath.Vec3{Z: 1})
	assert.InDelta(t, 1.0, forward.Z, 1e-9)
}

func TestMoveSkipsBosses(t *testing.T) {
	f := newFixture()
	f.spawnPlayer(vmath.Vec3{X: 1000})
	h := f.spawnBoss(1, vmath.Vec3{}, component.BossDreadnought, component.EnemyAI{
		State: component.StateChase, Speed: 700,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	assert.True(t, vmath.IsZero(f.engine.Motions.Get(h).Velocity))
}

func TestChaseWithoutPlayerHolds(t *testing.T) {
	f := newFixture()
	h := f.spawnEnemy(1, vmath.Vec3{}, component.EnemyAI{
		State: component.StateChase, Speed: 700,
	})

	f.engine.Move(f.enemyHandles(), 0.016)

	assert.True(t, vmath.IsZero(f.engine.Motions.Get(h).Velocity))
}
