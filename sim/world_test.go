package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/event"
	"github.com/plus3/voidfall/sim"
	"github.com/plus3/voidfall/vmath"
)

func newWorld() *sim.World {
	return sim.NewWorld(config.Default())
}

func eventsOfType(events []event.Event, want event.Type) []event.Event {
	var out []event.Event
	for _, ev := range events {
		if ev.Type == want {
			out = append(out, ev)
		}
	}
	return out
}

func TestProjectileHitDamagesTarget(t *testing.T) {
	w := newWorld()
	target := w.SpawnPlayer(vmath.Vec3{X: 1},
		component.Health{Current: 100, Max: 100},
		component.RigidBody{Mass: 1, Radius: 1},
	)
	projectile := w.SpawnProjectile(vmath.Vec3{}, vmath.Vec3{}, 50, 1, 5)

	events := w.Step(0.016, config.Difficulty{})

	// Spheres one unit apart with radius sum two: a trigger hit lands
	// this tick and the full damage reaches health.
	assert.InDelta(t, 50.0, w.Healths.Get(target).Current, 1e-9)

	// The projectile is consumed by its first hit and removed between
	// ticks, announced by a destruction event.
	assert.Empty(t, w.Projectiles())
	assert.Nil(t, w.Transforms.Get(projectile))

	destroyed := eventsOfType(events, event.TypeEntityDestroyed)
	require.Len(t, destroyed, 1)
	payload := destroyed[0].Payload.(*event.EntityDestroyedPayload)
	assert.Equal(t, projectile, payload.Entity)
	assert.False(t, payload.IsEnemy)

	// The player took damage, so a feedback hint is published too.
	assert.Len(t, eventsOfType(events, event.TypePlayerDamageFeedback), 1)
}

func TestProjectileMissLeavesTargetUntouched(t *testing.T) {
	w := newWorld()
	target := w.SpawnPlayer(vmath.Vec3{X: 10},
		component.Health{Current: 100, Max: 100},
		component.RigidBody{Mass: 1, Radius: 1},
	)
	w.SpawnProjectile(vmath.Vec3{}, vmath.Vec3{}, 50, 1, 5)

	events := w.Step(0.016, config.Difficulty{})

	assert.Equal(t, 100.0, w.Healths.Get(target).Current)
	assert.Len(t, w.Projectiles(), 1)
	assert.Empty(t, events)
}

func TestEnemyDeathPublishesDestroyedEvent(t *testing.T) {
	w := newWorld()
	h := w.SpawnEnemy(vmath.Vec3{},
		component.EnemyAI{Speed: 0, DetectionRange: 100},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)
	w.Healths.Get(h).Current = 0

	events := w.Step(0.016, config.Difficulty{})

	destroyed := eventsOfType(events, event.TypeEntityDestroyed)
	require.Len(t, destroyed, 1)
	payload := destroyed[0].Payload.(*event.EntityDestroyedPayload)
	assert.Equal(t, h, payload.Entity)
	assert.True(t, payload.IsEnemy)
	assert.False(t, payload.IsBoss)

	assert.Empty(t, w.Enemies())
	assert.Equal(t, 0, w.EntityCount())
}

func TestBossDeathEventCarriesKind(t *testing.T) {
	w := newWorld()
	h := w.SpawnBoss(vmath.Vec3{},
		component.EnemyAI{Speed: 0},
		component.BossAI{Kind: component.BossSwarmQueen},
		component.Health{Current: 500, Max: 500},
		component.RigidBody{Mass: 1, Radius: 20},
	)
	w.Healths.Get(h).Current = 0

	events := w.Step(0.016, config.Difficulty{})

	destroyed := eventsOfType(events, event.TypeEntityDestroyed)
	require.Len(t, destroyed, 1)
	payload := destroyed[0].Payload.(*event.EntityDestroyedPayload)
	assert.True(t, payload.IsBoss)
	assert.Equal(t, component.BossSwarmQueen, payload.BossKind)
}

func TestProjectileExpiresByLifetime(t *testing.T) {
	w := newWorld()
	w.SpawnProjectile(vmath.Vec3{}, vmath.Vec3{X: 100}, 50, 1, 0.5)

	events := w.Step(0.25, config.Difficulty{})
	assert.Empty(t, events)
	assert.Len(t, w.Projectiles(), 1)

	events = w.Step(0.5, config.Difficulty{})
	assert.Len(t, eventsOfType(events, event.TypeEntityDestroyed), 1)
	assert.Empty(t, w.Projectiles())
}

func TestPlayerDeathClearsPlayerReference(t *testing.T) {
	w := newWorld()
	h := w.SpawnPlayer(vmath.Vec3{},
		component.Health{Current: 10, Max: 10},
		component.RigidBody{Mass: 1, Radius: 1},
	)
	w.Healths.Get(h).Current = 0

	w.Step(0.016, config.Difficulty{})

	_, ok := w.Player()
	assert.False(t, ok)
	assert.Equal(t, 0, w.EntityCount())
}

func TestDestroyIsIdempotent(t *testing.T) {
	w := newWorld()
	h := w.SpawnEnemy(vmath.Vec3{},
		component.EnemyAI{Speed: 0},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)

	w.Destroy(h)
	w.Destroy(h)

	assert.Equal(t, 0, w.EntityCount())
	assert.Nil(t, w.EnemyAIs.Get(h))
}

func TestEventsDrainOnce(t *testing.T) {
	w := newWorld()
	h := w.SpawnEnemy(vmath.Vec3{},
		component.EnemyAI{Speed: 0},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)
	w.Healths.Get(h).Current = 0

	first := w.Step(0.016, config.Difficulty{})
	second := w.Step(0.016, config.Difficulty{})

	assert.NotEmpty(t, first)
	assert.Empty(t, second)
}

func TestTimeScaleRescalesDelta(t *testing.T) {
	tuning := config.Default()
	tuning.TimeScale = 2
	w := sim.NewWorld(tuning)
	h := w.SpawnProjectile(vmath.Vec3{}, vmath.Vec3{X: 100}, 0, 1, 60)

	w.Step(0.5, config.Difficulty{})

	assert.InDelta(t, 100.0, w.Transforms.Get(h).Position.X, 1e-9)
}

func TestEnemyChasesPlayerAcrossTicks(t *testing.T) {
	w := newWorld()
	w.SpawnPlayer(vmath.Vec3{},
		component.Health{Current: 100, Max: 100},
		component.RigidBody{Mass: 1, Radius: 5},
	)
	h := w.SpawnEnemy(vmath.Vec3{X: 400},
		component.EnemyAI{
			Archetype: component.ArchetypeHeavy, Speed: 700, DetectionRange: 600,
		},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)

	start := w.Transforms.Get(h).Position.X
	for i := 0; i < 10; i++ {
		w.Step(0.016, config.Difficulty{})
	}

	assert.Equal(t, component.StateChase, w.EnemyAIs.Get(h).State)
	assert.Less(t, w.Transforms.Get(h).Position.X, start)
}

func TestLowHealthChaserEvadesWithoutChasing(t *testing.T) {
	w := newWorld()
	w.SpawnPlayer(vmath.Vec3{},
		component.Health{Current: 100, Max: 100},
		component.RigidBody{Mass: 1, Radius: 5},
	)
	h := w.SpawnEnemy(vmath.Vec3{X: 400},
		component.EnemyAI{
			State: component.StateChase, Archetype: component.ArchetypeHeavy,
			Speed: 700, DetectionRange: 600,
		},
		component.Health{Current: 4, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)

	w.Step(0.016, config.Difficulty{})

	// The transition lands before movement dispatch, so the same tick
	// already moves away from the player instead of toward it.
	assert.Equal(t, component.StateEvade, w.EnemyAIs.Get(h).State)
	assert.Greater(t, w.Transforms.Get(h).Position.X, 400.0)
}

func TestKamikazeEnemyDamagesPlayerThroughStep(t *testing.T) {
	w := newWorld()
	player := w.SpawnPlayer(vmath.Vec3{},
		component.Health{Current: 100, Max: 100},
		component.RigidBody{Mass: 1, Radius: 5},
	)
	w.SpawnEnemy(vmath.Vec3{X: 200},
		component.EnemyAI{Speed: 0, Damage: 15, DetectionRange: 100},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)

	w.Step(0.016, config.Difficulty{})
	assert.Equal(t, 100.0, w.Healths.Get(player).Current)

	// Teleport the enemy into melee range.
	w.SpawnEnemy(vmath.Vec3{X: 20},
		component.EnemyAI{Speed: 0, Damage: 15, DetectionRange: 100},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)
	w.Step(0.016, config.Difficulty{})

	assert.InDelta(t, 85.0, w.Healths.Get(player).Current, 1e-9)
}

func TestHordeDifficultyScalesThroughStep(t *testing.T) {
	w := newWorld()
	h := w.SpawnEnemy(vmath.Vec3{},
		component.EnemyAI{Speed: 700, Damage: 15},
		component.Health{Current: 20, Max: 20},
		component.RigidBody{Mass: 1, Radius: 5},
	)

	w.Step(0.016, config.Difficulty{
		HordeMode:         true,
		HordeSurvivalTime: 120,
	})

	assert.InDelta(t, 15.0*1.6, w.EnemyAIs.Get(h).Damage, 1e-9)
	assert.InDelta(t, 20.0*2.0, w.Healths.Get(h).Max, 1e-9)
}

func TestStatsCoverEveryPass(t *testing.T) {
	w := newWorld()
	w.Step(0.016, config.Difficulty{})

	stats := w.Stats()
	assert.Equal(t, 9, stats.SystemCount)
	assert.Equal(t, int64(9), stats.TotalExecutions)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(1), s.ExecutionCount)
	}
}

func TestHandlesAreNeverReused(t *testing.T) {
	w := newWorld()
	a := w.SpawnProjectile(vmath.Vec3{}, vmath.Vec3{}, 0, 1, 60)
	w.Destroy(a)
	b := w.SpawnProjectile(vmath.Vec3{}, vmath.Vec3{}, 0, 1, 60)

	assert.NotEqual(t, a, b)
}
