package alsoft

// vector.go - minimal 3D vector and 4x4 affine matrix math used by the
// listener/voice transform (§3, §4.5). Grounded on the shape of
// alu::Vector / alu::Matrix from Alc/alu.cpp, expressed idiomatically
// (value types, no operator overloading).

import "math"

// Vec3 is a 3-component vector (position, velocity, direction, …).
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns the unit vector and the original length. A
// zero-length vector is returned unchanged with length 0, matching
// the "directional" checks in CalcAttnSourceParams that treat a
// zero-length direction as "no direction".
func (v Vec3) Normalize() (Vec3, float32) {
	l := v.Length()
	if l <= 1e-6 {
		return Vec3{}, 0
	}
	inv := 1.0 / l
	return v.Scale(inv), l
}

// Mat4 is a 4x4 affine matrix stored row-major, used for the
// world-to-listener transform (§3).
type Mat4 struct {
	M [4][4]float32
}

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// TransformPoint applies the matrix to a position (w=1).
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z + m.M[0][3],
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z + m.M[1][3],
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z + m.M[2][3],
	}
}

// TransformDirection applies the matrix's rotation part only (w=0).
func (m Mat4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// clampf clamps f to [lo, hi].
func clampf(f, lo, hi float32) float32 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
