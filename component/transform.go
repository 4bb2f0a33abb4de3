package component

import "github.com/plus3/voidfall/vmath"

// Transform is an entity's placement in world space. Rotation is kept at
// unit norm; integration renormalizes after every angular update.
type Transform struct {
	Position vmath.Vec3
	Rotation vmath.Quat
	Scale    vmath.Vec3
}

func NewTransform(position vmath.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: vmath.QuatIdentity(),
		Scale:    vmath.Vec3{X: 1, Y: 1, Z: 1},
	}
}
