package component

// Health is hit-point state with shield absorption and delayed shield
// regeneration. SinceDamage accumulates time with no incoming damage and
// gates regen; Resistance is the fraction of incoming damage negated,
// clamped to [0,1] at use time.
type Health struct {
	Current     float64
	Max         float64
	Shield      float64
	MaxShield   float64
	RegenRate   float64
	RegenDelay  float64
	SinceDamage float64
	Resistance  float64
}

// Alive reports whether the entity still has hit points.
func (h *Health) Alive() bool {
	return h.Current > 0
}

// Weapon is the damage carried by a projectile entity.
type Weapon struct {
	Damage float64
}

// Lifetime ages an entity toward caller-driven removal. MaxAge of zero
// means the entity never expires through this path.
type Lifetime struct {
	Age    float64
	MaxAge float64
}

// Expired reports whether the entity has outlived its maximum age.
func (l *Lifetime) Expired() bool {
	return l.MaxAge > 0 && l.Age > l.MaxAge
}

// Expire forces the lifetime past its maximum so the entity is collected
// by the normal expiry path. No-op for immortal entities.
func (l *Lifetime) Expire() {
	if l.MaxAge > 0 {
		l.Age = l.MaxAge + 1
	}
}
