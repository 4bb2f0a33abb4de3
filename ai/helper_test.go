package ai_test

import (
	"math/rand/v2"

	"github.com/plus3/voidfall/ai"
	"github.com/plus3/voidfall/combat"
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/event"
	"github.com/plus3/voidfall/vmath"
)

// fixture wires an AI engine with all its collaborators over shared
// stores, with a deterministic random source.
type fixture struct {
	engine *ai.Engine
	combat *combat.Engine
	events *event.Queue
	roster *ecs.Roster
}

func newFixture() *fixture {
	transforms := ecs.NewStore[component.Transform]()
	motions := ecs.NewStore[component.Motion]()
	bodies := ecs.NewStore[component.RigidBody]()
	healths := ecs.NewStore[component.Health]()
	weapons := ecs.NewStore[component.Weapon]()
	lifetimes := ecs.NewStore[component.Lifetime]()
	enemies := ecs.NewStore[component.EnemyAI]()
	bosses := ecs.NewStore[component.BossAI]()
	separations := ecs.NewStore[component.Separation]()

	roster := ecs.NewRoster()
	events := event.NewQueue()

	combatEngine := combat.NewEngine(healths, weapons, lifetimes, bosses, roster, events)

	engine := ai.NewEngine(
		transforms, motions, bodies, healths, lifetimes,
		enemies, bosses, separations,
		roster, events, combatEngine,
		rand.New(rand.NewPCG(1, 2)),
		config.Default(),
	)

	return &fixture{
		engine: engine,
		combat: combatEngine,
		events: events,
		roster: roster,
	}
}

func (f *fixture) spawnPlayer(pos vmath.Vec3) ecs.Handle {
	const h = ecs.Handle(1000)
	f.engine.Transforms.Set(h, component.NewTransform(pos))
	f.engine.Motions.Set(h, component.Motion{})
	f.engine.Bodies.Set(h, component.RigidBody{Mass: 1, Radius: 5})
	f.engine.Healths.Set(h, component.Health{Current: 100, Max: 100, Shield: 50, MaxShield: 50})
	f.roster.SetPlayer(h)
	return h
}

func (f *fixture) spawnEnemy(h ecs.Handle, pos vmath.Vec3, state component.EnemyAI) ecs.Handle {
	f.engine.Transforms.Set(h, component.NewTransform(pos))
	f.engine.Motions.Set(h, component.Motion{})
	f.engine.Bodies.Set(h, component.RigidBody{Mass: 1, Radius: 5})
	f.engine.Healths.Set(h, component.Health{Current: 20, Max: 20})
	f.engine.Lifetimes.Set(h, component.Lifetime{})
	f.engine.Enemies.Set(h, state)
	f.engine.Separations.Set(h, component.Separation{})
	f.roster.Enemies.Add(h)
	return h
}

func (f *fixture) spawnBoss(h ecs.Handle, pos vmath.Vec3, kind component.BossKind, enemy component.EnemyAI) ecs.Handle {
	f.spawnEnemy(h, pos, enemy)
	f.engine.Bosses.Set(h, component.BossAI{Kind: kind})
	return h
}

func (f *fixture) enemyHandles() []ecs.Handle {
	return f.roster.Enemies.Handles()
}
