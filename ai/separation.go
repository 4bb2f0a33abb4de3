package ai

import (
	"math"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/vmath"
)

// separation force magnitude at which the blend weight reaches full
// strength
const separationFullForce = 100.0

// AccumulateSeparation recomputes the transient flocking force for every
// enemy from scratch. Each pair closer than its separation threshold
// pushes both members apart proportionally to their overlap. O(n²) over
// the enemy list.
func (e *Engine) AccumulateSeparation(handles []ecs.Handle) {
	for _, h := range handles {
		if e.Enemies.Has(h) {
			e.Separations.Set(h, component.Separation{})
		}
	}

	for i := 0; i < len(handles); i++ {
		ta := e.Transforms.Get(handles[i])
		ba := e.Bodies.Get(handles[i])
		sa := e.Separations.Get(handles[i])
		if ta == nil || ba == nil || sa == nil {
			continue
		}

		for j := i + 1; j < len(handles); j++ {
			tb := e.Transforms.Get(handles[j])
			bb := e.Bodies.Get(handles[j])
			sb := e.Separations.Get(handles[j])
			if tb == nil || bb == nil || sb == nil {
				continue
			}

			threshold := (ba.Radius + bb.Radius) * 0.5 * e.Tuning.SeparationRadiusMult
			if threshold <= 0 {
				continue
			}

			delta := vmath.Sub(ta.Position, tb.Position)
			dist := vmath.Mag(delta)
			if dist >= threshold {
				continue
			}

			// Coincident entities push apart along world X.
			dir := vmath.Vec3{X: 1}
			if dist > 0 {
				dir = vmath.Scale(delta, 1.0/dist)
			}

			strength := (threshold - dist) / threshold * e.Tuning.SeparationMagnitude
			push := vmath.Scale(dir, strength)

			sa.Force = vmath.Add(sa.Force, push)
			sb.Force = vmath.Sub(sb.Force, push)
		}
	}
}

// blendSeparation lerps the computed velocity toward the separation force
// by the entity's influence weight. The weight ramps from half strength
// at zero force to full strength once the force magnitude reaches the
// saturation constant; the force itself lives for exactly one tick.
func (e *Engine) blendSeparation(h ecs.Handle, ai *component.EnemyAI, velocity vmath.Vec3) vmath.Vec3 {
	sep := e.Separations.Get(h)
	if sep == nil || vmath.IsZero(sep.Force) {
		return velocity
	}

	mag := vmath.Mag(sep.Force)
	ramp := 0.5 + 0.5*math.Min(1, mag/separationFullForce)
	weight := ai.SeparationWeight * ramp
	if weight <= 0 {
		return velocity
	}
	if weight > 1 {
		weight = 1
	}

	return vmath.Lerp(velocity, sep.Force, weight)
}
