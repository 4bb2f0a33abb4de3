package component

import "github.com/plus3/voidfall/vmath"

// Motion holds an entity's kinematic state. Force and Torque accumulate
// over a tick and are cleared as soon as integration consumes them.
type Motion struct {
	Velocity vmath.Vec3
	Angular  vmath.Vec3
	Force    vmath.Vec3
	Torque   vmath.Vec3
}

// RigidBody holds the parameters that drive force integration, drag and
// collision. MaxSpeed of zero means "use the global default".
type RigidBody struct {
	Mass           float64
	Drag           float64
	AngularDrag    float64
	Radius         float64
	MaxSpeed       float64
	Kinematic      bool
	FreezeRotation bool
}

// Thrust is the per-tick directional intent for player-style movement.
// Flags are consumed once per tick and translated into a local-space
// force rotated into world space by the current orientation.
type Thrust struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
	Boost    bool
}
