package component

import "github.com/plus3/voidfall/vmath"

// AIState is the discrete behavior state of an enemy.
type AIState int

const (
	StateIdle AIState = iota
	StatePatrol
	StateChase
	StateEvade
)

func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateEvade:
		return "evade"
	default:
		return "unknown"
	}
}

// Archetype selects the enemy movement and stat profile.
type Archetype int

const (
	ArchetypeStandard Archetype = iota
	ArchetypeHeavy
	ArchetypeSwift
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeStandard:
		return "standard"
	case ArchetypeHeavy:
		return "heavy"
	case ArchetypeSwift:
		return "swift"
	default:
		return "unknown"
	}
}

// EnemyAI is the per-enemy behavior state: FSM state, movement tuning and
// the accumulators the movement formulas read.
type EnemyAI struct {
	State     AIState
	Archetype Archetype

	// Anchor is the patrol orbit center, captured on the Idle→Patrol
	// transition.
	Anchor vmath.Vec3

	SpiralAmplitude  float64
	SpiralFrequency  float64
	SpiralPhase      float64
	SeparationWeight float64

	DetectionRange float64
	Speed          float64
	Damage         float64

	TimeAlive   float64
	StateTimer  float64
	PlayerFound bool
}

// Separation is the transient per-tick flocking force. It is recomputed
// from scratch every tick and consumed by the same tick's movement pass.
type Separation struct {
	Force vmath.Vec3
}
