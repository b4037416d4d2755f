package geometry

import (
	"fmt"
	"math"
	"strconv"

	"isogrid/core"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Multiply multiplies two matrices (m * other). The result applies other first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p core.PixelPoint) core.PixelPoint {
	return core.PixelPoint{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the linear part only.
func (m Matrix) TransformVector(p core.PixelPoint) core.PixelPoint {
	return core.PixelPoint{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// CSS renders the matrix in CSS/SVG "matrix(a, b, c, d, e, f)" argument order,
// which is column-major: a=A b=D c=B d=E e=C f=F.
func (m Matrix) CSS() string {
	return fmt.Sprintf("matrix(%s, %s, %s, %s, %s, %s)",
		FormatFloat(m.A), FormatFloat(m.D), FormatFloat(m.B),
		FormatFloat(m.E), FormatFloat(m.C), FormatFloat(m.F))
}

// ApproxEqual compares two matrices element-wise within eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	return math.Abs(m.A-other.A) <= eps && math.Abs(m.B-other.B) <= eps &&
		math.Abs(m.C-other.C) <= eps && math.Abs(m.D-other.D) <= eps &&
		math.Abs(m.E-other.E) <= eps && math.Abs(m.F-other.F) <= eps
}

// FormatFloat prints the shortest decimal that round-trips, trimming float noise
// below 1e-9 so that 0.30000000000000004 prints as 0.3.
func FormatFloat(v float64) string {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
