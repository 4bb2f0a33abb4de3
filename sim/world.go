// Package sim is the frame orchestrator: it owns the component stores and
// category lists, runs the engines in fixed tick order, and applies
// entity removal strictly between ticks.
package sim

import (
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/plus3/voidfall/ai"
	"github.com/plus3/voidfall/collision"
	"github.com/plus3/voidfall/combat"
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
	"github.com/plus3/voidfall/physics"
	"github.com/plus3/voidfall/vmath"
)

// World is the simulation core. All component buffers are exclusively
// owned by the world and mutated in place; the simulation is
// single-threaded and advanced by calling Step once per frame.
type World struct {
	Transforms  *ecs.Store[component.Transform]
	Motions     *ecs.Store[component.Motion]
	Bodies      *ecs.Store[component.RigidBody]
	Thrusts     *ecs.Store[component.Thrust]
	Healths     *ecs.Store[component.Health]
	Weapons     *ecs.Store[component.Weapon]
	Lifetimes   *ecs.Store[component.Lifetime]
	EnemyAIs    *ecs.Store[component.EnemyAI]
	BossAIs     *ecs.Store[component.BossAI]
	Separations *ecs.Store[component.Separation]

	alloc     ecs.Allocator
	roster    *ecs.Roster
	scheduler *ecs.Scheduler
	commands  *ecs.Commands
	events    *event.Queue

	physics    *physics.Engine
	collisions *collision.Engine
	combat     *combat.Engine
	ai         *ai.Engine

	tuning     config.Tuning
	difficulty config.Difficulty
	log        *logrus.Logger
}

// Option customizes world construction.
type Option func(*World)

// WithLogger installs a logger for lifecycle events. Without it the world
// logs to a discarded sink.
func WithLogger(log *logrus.Logger) Option {
	return func(w *World) {
		w.log = log
	}
}

// WithRand seeds AI randomness for reproducible simulation.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		w.ai.Rand = rng
	}
}

// NewWorld builds a world with the given tuning and registers the
// simulation passes in tick order.
func NewWorld(tuning config.Tuning, opts ...Option) *World {
	w := &World{
		Transforms:  ecs.NewStore[component.Transform](),
		Motions:     ecs.NewStore[component.Motion](),
		Bodies:      ecs.NewStore[component.RigidBody](),
		Thrusts:     ecs.NewStore[component.Thrust](),
		Healths:     ecs.NewStore[component.Health](),
		Weapons:     ecs.NewStore[component.Weapon](),
		Lifetimes:   ecs.NewStore[component.Lifetime](),
		EnemyAIs:    ecs.NewStore[component.EnemyAI](),
		BossAIs:     ecs.NewStore[component.BossAI](),
		Separations: ecs.NewStore[component.Separation](),

		roster:    ecs.NewRoster(),
		scheduler: ecs.NewScheduler(),
		commands:  ecs.NewCommands(),
		events:    event.NewQueue(),
		tuning:    tuning,
	}

	w.physics = physics.NewEngine(w.Transforms, w.Motions, w.Bodies, w.Thrusts, tuning)
	w.collisions = collision.NewEngine(w.Transforms, w.Bodies)
	w.combat = combat.NewEngine(w.Healths, w.Weapons, w.Lifetimes, w.BossAIs, w.roster, w.events)
	w.ai = ai.NewEngine(
		w.Transforms, w.Motions, w.Bodies, w.Healths, w.Lifetimes,
		w.EnemyAIs, w.BossAIs, w.Separations,
		w.roster, w.events, w.combat, nil, tuning,
	)

	w.log = logrus.New()
	w.log.SetOutput(io.Discard)

	for _, opt := range opts {
		opt(w)
	}

	w.scheduler.Register(&detectionSystem{world: w})
	w.scheduler.Register(&separationSystem{world: w})
	w.scheduler.Register(&movementSystem{world: w})
	w.scheduler.Register(&bossSystem{world: w})
	w.scheduler.Register(&kamikazeSystem{world: w})
	w.scheduler.Register(&difficultySystem{world: w})
	w.scheduler.Register(&physicsSystem{world: w})
	w.scheduler.Register(&combatSystem{world: w})
	w.scheduler.Register(&cleanupSystem{world: w})

	return w
}

// Step advances the simulation one tick. dt is rescaled to the reference
// rate; the difficulty record is whatever the settings collaborator
// supplies this tick (the zero value leaves scaling at identity). All
// events produced during the tick are drained and returned.
func (w *World) Step(dt float64, diff config.Difficulty) []event.Event {
	scaled := dt * w.tuning.TimeScale
	w.difficulty = diff

	frame := ecs.NewFrame(scaled, w.commands)
	w.scheduler.Once(frame)
	w.commands.Flush(w.remove)

	return w.events.Drain()
}

// Stats returns per-pass execution statistics.
func (w *World) Stats() *ecs.SchedulerStats {
	return w.scheduler.GetStats()
}

// SpawnPlayer registers the player entity. Any previous player reference
// is replaced.
func (w *World) SpawnPlayer(pos vmath.Vec3, health component.Health, body component.RigidBody) ecs.Handle {
	h := w.alloc.Alloc()
	w.Transforms.Set(h, component.NewTransform(pos))
	w.Motions.Set(h, component.Motion{})
	w.Thrusts.Set(h, component.Thrust{})
	w.Bodies.Set(h, body)
	w.Healths.Set(h, health)

	w.roster.All.Add(h)
	w.roster.Damageable.Add(h)
	w.roster.SetPlayer(h)
	return h
}

// SpawnEnemy registers an enemy entity with the given behavior profile.
func (w *World) SpawnEnemy(pos vmath.Vec3, enemy component.EnemyAI, health component.Health, body component.RigidBody) ecs.Handle {
	h := w.alloc.Alloc()
	w.Transforms.Set(h, component.NewTransform(pos))
	w.Motions.Set(h, component.Motion{})
	w.Bodies.Set(h, body)
	w.Healths.Set(h, health)
	w.EnemyAIs.Set(h, enemy)
	w.Separations.Set(h, component.Separation{})
	w.Lifetimes.Set(h, component.Lifetime{MaxAge: 0})

	w.roster.All.Add(h)
	w.roster.Enemies.Add(h)
	w.roster.Damageable.Add(h)
	return h
}

// SpawnBoss registers a boss: an enemy carrying the boss extension.
func (w *World) SpawnBoss(pos vmath.Vec3, enemy component.EnemyAI, boss component.BossAI, health component.Health, body component.RigidBody) ecs.Handle {
	h := w.SpawnEnemy(pos, enemy, health, body)
	w.BossAIs.Set(h, boss)

	w.log.WithFields(logrus.Fields{
		"entity": h,
		"kind":   boss.Kind.String(),
	}).Info("boss spawned")
	return h
}

// SpawnProjectile registers a projectile carrying weapon damage, a
// collider and a finite lifetime.
func (w *World) SpawnProjectile(pos, velocity vmath.Vec3, damage, radius, maxAge float64) ecs.Handle {
	h := w.alloc.Alloc()
	w.Transforms.Set(h, component.NewTransform(pos))
	w.Motions.Set(h, component.Motion{Velocity: velocity})
	w.Bodies.Set(h, component.RigidBody{Mass: 1, Radius: radius, Kinematic: true})
	w.Weapons.Set(h, component.Weapon{Damage: damage})
	w.Lifetimes.Set(h, component.Lifetime{MaxAge: maxAge})

	w.roster.All.Add(h)
	w.roster.Projectiles.Add(h)
	return h
}

// Destroy removes an entity immediately: from every category list and
// every component store. Idempotent; removing an absent handle is a no-op.
func (w *World) Destroy(h ecs.Handle) {
	w.remove(h)
}

func (w *World) remove(h ecs.Handle) {
	w.roster.Drop(h)

	w.Transforms.Remove(h)
	w.Motions.Remove(h)
	w.Bodies.Remove(h)
	w.Thrusts.Remove(h)
	w.Healths.Remove(h)
	w.Weapons.Remove(h)
	w.Lifetimes.Remove(h)
	w.EnemyAIs.Remove(h)
	w.BossAIs.Remove(h)
	w.Separations.Remove(h)
}

// Player returns the player handle, or false when none is registered.
func (w *World) Player() (ecs.Handle, bool) {
	return w.roster.Player()
}

// ClearPlayer drops the player reference without destroying the entity.
func (w *World) ClearPlayer() {
	w.roster.ClearPlayer()
}

// Enemies returns a copy of the current enemy handles.
func (w *World) Enemies() []ecs.Handle {
	return copyHandles(w.roster.Enemies.Handles())
}

// Projectiles returns a copy of the current projectile handles.
func (w *World) Projectiles() []ecs.Handle {
	return copyHandles(w.roster.Projectiles.Handles())
}

// EntityCount reports the number of tracked entities.
func (w *World) EntityCount() int {
	return w.roster.All.Len()
}

func copyHandles(src []ecs.Handle) []ecs.Handle {
	out := make([]ecs.Handle, len(src))
	copy(out, src)
	return out
}
