package event

// Type identifies an outbound simulation event.
type Type int

const (
	// TypeEntityDestroyed signals an entity leaving the simulation.
	// Trigger: health reaching zero or lifetime expiry
	// Payload: *EntityDestroyedPayload
	TypeEntityDestroyed Type = iota

	// TypeBeamAttack signals a Dreadnought beam firing on its target.
	// Trigger: beam charge completing within range
	// Payload: *BeamAttackPayload
	TypeBeamAttack

	// TypeMinionSpawnRequest asks the entity-creation collaborator to
	// spawn a boss minion at a world position.
	// Trigger: Dreadnought/SwarmQueen spawn cadence
	// Payload: *MinionSpawnPayload
	TypeMinionSpawnRequest

	// TypePhaseShift signals a PhaseShifter toggling its invulnerable phase.
	// Trigger: phase duty cycle edges
	// Payload: *PhaseShiftPayload
	TypePhaseShift

	// TypePlayerDamageFeedback is a haptic feedback hint for presentation.
	// Trigger: the player taking damage
	// Payload: *PlayerDamageFeedbackPayload
	TypePlayerDamageFeedback
)

func (t Type) String() string {
	switch t {
	case TypeEntityDestroyed:
		return "entity-destroyed"
	case TypeBeamAttack:
		return "beam-attack"
	case TypeMinionSpawnRequest:
		return "minion-spawn-request"
	case TypePhaseShift:
		return "phase-shift"
	case TypePlayerDamageFeedback:
		return "player-damage-feedback"
	default:
		return "unknown"
	}
}
