// Package physics advances rigid-body motion: thrust intent, force and
// torque integration, drag, transform integration, and the physical
// (non-trigger) collision response.
package physics

import (
	"math"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/ecs"
	"github.com/plus3/voidfall/vmath"
)

// velocity components below this are snapped to zero to stop
// floating-point creep
const restEpsilon = 1e-3

// Engine integrates motion for entities that carry the relevant
// components. Entities missing a component simply do not participate in
// that pass; absence is never an error.
type Engine struct {
	Transforms *ecs.Store[component.Transform]
	Motions    *ecs.Store[component.Motion]
	Bodies     *ecs.Store[component.RigidBody]
	Thrusts    *ecs.Store[component.Thrust]

	Tuning config.Tuning
}

func NewEngine(
	transforms *ecs.Store[component.Transform],
	motions *ecs.Store[component.Motion],
	bodies *ecs.Store[component.RigidBody],
	thrusts *ecs.Store[component.Thrust],
	tuning config.Tuning,
) *Engine {
	return &Engine{
		Transforms: transforms,
		Motions:    motions,
		Bodies:     bodies,
		Thrusts:    thrusts,
		Tuning:     tuning,
	}
}

// Step runs the full physics pass order over the given entities.
func (e *Engine) Step(handles []ecs.Handle, dt float64) {
	e.ApplyThrust(handles, dt)
	e.IntegrateForces(handles, dt)
	e.ApplyDrag(handles, dt)
	e.IntegrateTransforms(handles, dt)
	e.ResolveCollisions(handles)
}

// ApplyThrust converts directional intent into a velocity change. The
// local-space vector composes ±1 per active axis, with the boost
// multiplier applied fore/aft only, rotated into world space by the
// entity's orientation.
func (e *Engine) ApplyThrust(handles []ecs.Handle, dt float64) {
	for _, h := range handles {
		thrust := e.Thrusts.Get(h)
		if thrust == nil {
			continue
		}
		motion := e.Motions.Get(h)
		transform := e.Transforms.Get(h)
		body := e.Bodies.Get(h)
		if motion == nil || transform == nil || body == nil {
			continue
		}

		axial := 1.0
		if thrust.Boost {
			axial = e.Tuning.BoostMultiplier
		}

		var local vmath.Vec3
		if thrust.Forward {
			local.Z += axial
		}
		if thrust.Backward {
			local.Z -= axial
		}
		if thrust.Right {
			local.X += 1
		}
		if thrust.Left {
			local.X -= 1
		}
		if thrust.Up {
			local.Y += 1
		}
		if thrust.Down {
			local.Y -= 1
		}

		if vmath.IsZero(local) {
			continue
		}

		world := vmath.QuatRotate(transform.Rotation, local)
		motion.Velocity = vmath.Add(motion.Velocity, vmath.Scale(world, dt))

		maxSpeed := body.MaxSpeed
		if maxSpeed <= 0 {
			maxSpeed = e.Tuning.DefaultMaxSpeed
		}
		motion.Velocity = vmath.ClampMag(motion.Velocity, maxSpeed)
	}
}

// IntegrateForces applies accumulated force and torque to velocity and
// angular velocity, then zeroes the accumulators. Kinematic bodies are
// excluded; mass doubles as a simplified moment of inertia.
func (e *Engine) IntegrateForces(handles []ecs.Handle, dt float64) {
	for _, h := range handles {
		motion := e.Motions.Get(h)
		body := e.Bodies.Get(h)
		if motion == nil || body == nil {
			continue
		}
		if body.Kinematic || body.Mass <= 0 {
			continue
		}

		accel := vmath.Scale(motion.Force, 1.0/body.Mass)
		motion.Velocity = vmath.Add(motion.Velocity, vmath.Scale(accel, dt))
		motion.Force = vmath.Vec3{}

		if !body.FreezeRotation {
			angAccel := vmath.Scale(motion.Torque, 1.0/body.Mass)
			motion.Angular = vmath.Add(motion.Angular, vmath.Scale(angAccel, dt))
		}
		motion.Torque = vmath.Vec3{}
	}
}

// ApplyDrag damps linear and angular velocity, snapping components to
// exactly zero once they fall below the rest epsilon.
func (e *Engine) ApplyDrag(handles []ecs.Handle, dt float64) {
	for _, h := range handles {
		motion := e.Motions.Get(h)
		body := e.Bodies.Get(h)
		if motion == nil || body == nil {
			continue
		}

		linear := math.Max(0, 1-body.Drag*dt)
		motion.Velocity = snapSmall(vmath.Scale(motion.Velocity, linear))

		if !body.FreezeRotation {
			angular := math.Max(0, 1-body.AngularDrag*dt)
			motion.Angular = snapSmall(vmath.Scale(motion.Angular, angular))
		}
	}
}

// IntegrateTransforms advances position by velocity and orientation by
// angular velocity, renormalizing the rotation after every update.
func (e *Engine) IntegrateTransforms(handles []ecs.Handle, dt float64) {
	for _, h := range handles {
		motion := e.Motions.Get(h)
		transform := e.Transforms.Get(h)
		if motion == nil || transform == nil {
			continue
		}

		transform.Position = vmath.Add(transform.Position, vmath.Scale(motion.Velocity, dt))

		if vmath.IsZero(motion.Angular) {
			continue
		}
		if body := e.Bodies.Get(h); body != nil && body.FreezeRotation {
			continue
		}

		delta := vmath.QuatFromEuler(
			motion.Angular.X*dt,
			motion.Angular.Y*dt,
			motion.Angular.Z*dt,
		)
		transform.Rotation = vmath.QuatNormalize(vmath.QuatMul(delta, transform.Rotation))
	}
}

// ResolveCollisions runs the pairwise sphere pass with direct physical
// response: overlapping pairs are pushed apart by half the penetration
// each, and both carrying velocity receive a 1-D elastic impulse along
// the collision normal. This pass uses a strict overlap test; touching
// spheres at exactly radiusA+radiusB do not collide.
func (e *Engine) ResolveCollisions(handles []ecs.Handle) {
	for i := 0; i < len(handles); i++ {
		ta := e.Transforms.Get(handles[i])
		ba := e.Bodies.Get(handles[i])
		if ta == nil || ba == nil || ba.Radius <= 0 {
			continue
		}

		for j := i + 1; j < len(handles); j++ {
			tb := e.Transforms.Get(handles[j])
			bb := e.Bodies.Get(handles[j])
			if tb == nil || bb == nil || bb.Radius <= 0 {
				continue
			}

			delta := vmath.Sub(tb.Position, ta.Position)
			dist := vmath.Mag(delta)
			minDist := ba.Radius + bb.Radius
			if dist >= minDist || dist == 0 {
				continue
			}

			normal := vmath.Scale(delta, 1.0/dist)
			half := (minDist - dist) * 0.5
			ta.Position = vmath.Sub(ta.Position, vmath.Scale(normal, half))
			tb.Position = vmath.Add(tb.Position, vmath.Scale(normal, half))

			ma := e.Motions.Get(handles[i])
			mb := e.Motions.Get(handles[j])
			if ma == nil || mb == nil {
				continue
			}
			e.applyImpulse(ma, mb, ba, bb, normal)
		}
	}
}

// applyImpulse exchanges momentum along the collision normal. Pairs whose
// relative velocity is already separating are left alone.
func (e *Engine) applyImpulse(ma, mb *component.Motion, ba, bb *component.RigidBody, normal vmath.Vec3) {
	relVel := vmath.Sub(mb.Velocity, ma.Velocity)
	vn := vmath.Dot(relVel, normal)
	if vn >= 0 {
		return
	}

	massA := ba.Mass
	massB := bb.Mass
	if massA <= 0 {
		massA = 1
	}
	if massB <= 0 {
		massB = 1
	}

	invSum := 1.0/massA + 1.0/massB
	j := -(1 + e.Tuning.Restitution) * vn / invSum

	ma.Velocity = vmath.Sub(ma.Velocity, vmath.Scale(normal, j/massA))
	mb.Velocity = vmath.Add(mb.Velocity, vmath.Scale(normal, j/massB))
}

func snapSmall(v vmath.Vec3) vmath.Vec3 {
	if math.Abs(v.X) < restEpsilon {
		v.X = 0
	}
	if math.Abs(v.Y) < restEpsilon {
		v.Y = 0
	}
	if math.Abs(v.Z) < restEpsilon {
		v.Z = 0
	}
	return v
}
