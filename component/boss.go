package component

// BossKind selects a boss behavior script.
type BossKind int

const (
	BossDreadnought BossKind = iota
	BossPhaseShifter
	BossSwarmQueen
)

func (k BossKind) String() string {
	switch k {
	case BossDreadnought:
		return "dreadnought"
	case BossPhaseShifter:
		return "phase-shifter"
	case BossSwarmQueen:
		return "swarm-queen"
	default:
		return "unknown"
	}
}

// BossAI is the boss extension state: per-archetype timers and counters
// driven by the boss behavior scripts.
type BossAI struct {
	Kind BossKind

	// Dreadnought beam attack.
	BeamCharge float64
	BeamActive bool

	// PhaseShifter invulnerability duty cycle.
	PhaseTimer  float64
	PhaseActive bool

	// Minion spawning (Dreadnought and SwarmQueen).
	SpawnCooldown float64
	MinionCount   int
}
