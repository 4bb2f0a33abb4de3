package event

import (
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/vmath"
)

// Event is one outbound notification. Payload type depends on Type; see
// the Type constants.
type Event struct {
	Type    Type
	Payload any
}

// EntityDestroyedPayload describes an entity leaving the simulation.
// BossKind is only meaningful when IsBoss is set.
type EntityDestroyedPayload struct {
	Entity   ecs.Handle
	IsEnemy  bool
	IsBoss   bool
	BossKind component.BossKind
}

// BeamAttackPayload describes a boss beam attack on a target.
type BeamAttackPayload struct {
	Attacker ecs.Handle
	Target   ecs.Handle
	Damage   float64
}

// MinionSpawnPayload asks for a minion to be created at Position.
type MinionSpawnPayload struct {
	Attacker ecs.Handle
	Position vmath.Vec3
}

// PhaseShiftPayload reports an invulnerability phase toggle.
type PhaseShiftPayload struct {
	Attacker ecs.Handle
	Active   bool
}

// PlayerDamageFeedbackPayload hints intensity and duration for haptic
// feedback on the presentation side.
type PlayerDamageFeedbackPayload struct {
	Intensity float64
	Duration  float64
}
