// Package collision is the detection-only trigger pass: it reports
// overlapping (impactor, target) pairs as events for the combat engine to
// interpret, and never mutates state itself.
package collision

import (
	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/vmath"
)

// Hit is one detected overlap. Point is the target's surface point facing
// the impactor, or the target center when the two centers coincide.
type Hit struct {
	Impactor ecs.Handle
	Target   ecs.Handle
	Point    vmath.Vec3
}

// Engine detects sphere overlaps between two entity lists.
type Engine struct {
	Transforms *ecs.Store[component.Transform]
	Bodies     *ecs.Store[component.RigidBody]
}

func NewEngine(
	transforms *ecs.Store[component.Transform],
	bodies *ecs.Store[component.RigidBody],
) *Engine {
	return &Engine{
		Transforms: transforms,
		Bodies:     bodies,
	}
}

// Detect reports every overlapping (impactor, target) pair with a ≠ b.
// Ordering follows impactor-then-target nested iteration; consumers must
// treat the result as a set. Unlike the physical response pass, this pass
// counts spheres touching at exactly radiusA+radiusB as colliding.
func (e *Engine) Detect(impactors, targets []ecs.Handle) []Hit {
	var hits []Hit

	for _, a := range impactors {
		ta := e.Transforms.Get(a)
		ba := e.Bodies.Get(a)
		if ta == nil || ba == nil || ba.Radius <= 0 {
			continue
		}

		for _, b := range targets {
			if a == b {
				continue
			}
			tb := e.Transforms.Get(b)
			bb := e.Bodies.Get(b)
			if tb == nil || bb == nil || bb.Radius <= 0 {
				continue
			}

			delta := vmath.Sub(ta.Position, tb.Position)
			radiusSum := ba.Radius + bb.Radius
			if vmath.MagSq(delta) > radiusSum*radiusSum {
				continue
			}

			hits = append(hits, Hit{
				Impactor: a,
				Target:   b,
				Point:    hitPoint(tb.Position, delta, bb.Radius),
			})
		}
	}

	return hits
}

// hitPoint offsets the target center toward the impactor by the target's
// radius. Coincident centers fall back to the target center exactly.
func hitPoint(center, toImpactor vmath.Vec3, radius float64) vmath.Vec3 {
	dir := vmath.Normalize(toImpactor)
	if vmath.IsZero(dir) {
		return center
	}
	return vmath.Add(center, vmath.Scale(dir, radius))
}
