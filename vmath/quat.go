package vmath

import "math"

// Quat is a rotation quaternion. The identity rotation is {0, 0, 0, 1}.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatMul composes two rotations; the result applies b first, then a.
func QuatMul(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func QuatNorm(q Quat) float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// QuatNormalize rescales q to unit norm. A degenerate zero quaternion
// collapses to the identity rather than producing NaN.
func QuatNormalize(q Quat) Quat {
	norm := QuatNorm(q)
	if norm == 0 {
		return QuatIdentity()
	}
	inv := 1.0 / norm
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QuatFromEuler builds a rotation from intrinsic XYZ Euler angles in radians.
func QuatFromEuler(x, y, z float64) Quat {
	cx, sx := math.Cos(x*0.5), math.Sin(x*0.5)
	cy, sy := math.Cos(y*0.5), math.Sin(y*0.5)
	cz, sz := math.Cos(z*0.5), math.Sin(z*0.5)

	return Quat{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz + sx*sy*cz,
		W: cx*cy*cz - sx*sy*sz,
	}
}

// QuatRotate applies the rotation q to vector v.
func QuatRotate(q Quat, v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + q.w*v)
	u := Vec3{q.X, q.Y, q.Z}
	t := Scale(Cross(u, v), 2)
	return Add(v, Add(Scale(t, q.W), Cross(u, t)))
}

// QuatLookAt returns the rotation that faces forward along dir with world up.
// A zero or vertical dir falls back to the identity rotation.
func QuatLookAt(dir Vec3) Quat {
	forward := Normalize(dir)
	if IsZero(forward) {
		return QuatIdentity()
	}

	yaw := math.Atan2(forward.X, forward.Z)
	pitch := math.Asin(-clamp(forward.Y, -1, 1))
	return QuatFromEuler(pitch, yaw, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
