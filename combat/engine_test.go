package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/voidfall/collision"
	"github.com/plus3/voidfall/combat"
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
)

func newTestEngine() *combat.Engine {
	return combat.NewEngine(
		ecs.NewStore[component.Health](),
		ecs.NewStore[component.Weapon](),
		ecs.NewStore[component.Lifetime](),
		ecs.NewStore[component.BossAI](),
		ecs.NewRoster(),
		event.NewQueue(),
	)
}

func TestDamageShieldAbsorbsFirst(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 50, Max: 50, Shield: 30, MaxShield: 30})

	assert.True(t, e.Damage(1, 50))

	health := e.Healths.Get(1)
	assert.Equal(t, 0.0, health.Shield)
	assert.InDelta(t, 30.0, health.Current, 1e-9)
}

func TestDamageFullyAbsorbedByShield(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100, Shield: 40, MaxShield: 40})

	assert.True(t, e.Damage(1, 25))

	health := e.Healths.Get(1)
	assert.InDelta(t, 15.0, health.Shield, 1e-9)
	assert.Equal(t, 100.0, health.Current)
}

func TestDamageFloorsHealthAtZero(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 10, Max: 10})

	e.Damage(1, 1000)

	assert.Equal(t, 0.0, e.Healths.Get(1).Current)
	assert.False(t, e.Healths.Get(1).Alive())
}

func TestDamageResistanceScales(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100, Resistance: 0.5})

	e.Damage(1, 40)

	assert.InDelta(t, 80.0, e.Healths.Get(1).Current, 1e-9)
}

func TestDamageResistanceClampedToOne(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100, Resistance: 1.5})

	assert.False(t, e.Damage(1, 40))
	assert.Equal(t, 100.0, e.Healths.Get(1).Current)
}

func TestDamageResetsRegenTimer(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100, SinceDamage: 7})

	e.Damage(1, 1)

	assert.Equal(t, 0.0, e.Healths.Get(1).SinceDamage)
}

func TestDamageMissingHealthIsIgnored(t *testing.T) {
	e := newTestEngine()

	assert.False(t, e.Damage(99, 50))
}

func TestDamagePhaseActiveBossIsInvulnerable(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100})
	e.Bosses.Set(1, component.BossAI{Kind: component.BossPhaseShifter, PhaseActive: true})

	assert.False(t, e.Damage(1, 50))
	assert.Equal(t, 100.0, e.Healths.Get(1).Current)

	e.Bosses.Get(1).PhaseActive = false
	assert.True(t, e.Damage(1, 50))
	assert.InDelta(t, 50.0, e.Healths.Get(1).Current, 1e-9)
}

func TestPlayerDamagePublishesFeedback(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100})
	e.Roster.SetPlayer(1)

	e.Damage(1, 25)

	events := e.Events.Drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, event.TypePlayerDamageFeedback, events[0].Type)
		payload := events[0].Payload.(*event.PlayerDamageFeedbackPayload)
		assert.InDelta(t, 0.5, payload.Intensity, 1e-9)
		assert.InDelta(t, 0.2, payload.Duration, 1e-9)
	}
}

func TestPlayerFeedbackIntensityCapsAtOne(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 1000, Max: 1000})
	e.Roster.SetPlayer(1)

	e.Damage(1, 500)

	events := e.Events.Drain()
	if assert.Len(t, events, 1) {
		payload := events[0].Payload.(*event.PlayerDamageFeedbackPayload)
		assert.Equal(t, 1.0, payload.Intensity)
	}
}

func TestNonPlayerDamagePublishesNothing(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{Current: 100, Max: 100})

	e.Damage(1, 25)

	assert.Zero(t, e.Events.Len())
}

func TestApplyHitsReadsImpactorWeapon(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(2, component.Health{Current: 100, Max: 100})
	e.Weapons.Set(1, component.Weapon{Damage: 50})

	e.ApplyHits([]collision.Hit{{Impactor: 1, Target: 2}})

	assert.InDelta(t, 50.0, e.Healths.Get(2).Current, 1e-9)
}

func TestApplyHitsSkipsUnarmedImpactor(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(2, component.Health{Current: 100, Max: 100})

	e.ApplyHits([]collision.Hit{{Impactor: 1, Target: 2}})

	assert.Equal(t, 100.0, e.Healths.Get(2).Current)
}

func TestRegenerateShieldsGatedByDelay(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{
		Current: 100, Max: 100,
		Shield: 10, MaxShield: 50,
		RegenRate: 20, RegenDelay: 3,
	})

	// Still inside the delay window after this tick.
	e.RegenerateShields([]ecs.Handle{1}, 2.9)
	assert.Equal(t, 10.0, e.Healths.Get(1).Shield)

	// Past the delay, one tick of regen lands.
	e.RegenerateShields([]ecs.Handle{1}, 0.2)
	assert.InDelta(t, 14.0, e.Healths.Get(1).Shield, 1e-9)
}

func TestRegenerateShieldsCapsAtMax(t *testing.T) {
	e := newTestEngine()
	e.Healths.Set(1, component.Health{
		Current: 100, Max: 100,
		Shield: 49.9, MaxShield: 50,
		RegenRate: 100, RegenDelay: 0, SinceDamage: 10,
	})

	e.RegenerateShields([]ecs.Handle{1}, 1.0)

	assert.Equal(t, 50.0, e.Healths.Get(1).Shield)
}

func TestAgeLifetimes(t *testing.T) {
	e := newTestEngine()
	e.Lifetimes.Set(1, component.Lifetime{Age: 9.9, MaxAge: 10})
	e.Lifetimes.Set(2, component.Lifetime{MaxAge: 0})

	e.AgeLifetimes(0.2)

	assert.True(t, e.Lifetimes.Get(1).Expired())
	assert.False(t, e.Lifetimes.Get(2).Expired())
}

func TestExpireNoOpForImmortal(t *testing.T) {
	lifetime := component.Lifetime{MaxAge: 0}
	lifetime.Expire()
	assert.False(t, lifetime.Expired())
}
