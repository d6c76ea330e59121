package transform

import "github.com/matzehuels/svgmapper/pkg/geom"

// Matrix is a 2D affine transform:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct{ A, B, C, D, E, F float64 }

// IdentityMatrix leaves points unchanged.
var IdentityMatrix = Matrix{A: 1, D: 1}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix { return Matrix{A: 1, D: 1, E: tx, F: ty} }

// Mul returns m ∘ n (apply n, then m).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply maps p through m.
func (m Matrix) Apply(p geom.Point) geom.Point {
	return geom.Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Invert returns the inverse of m. A singular matrix returns
// IdentityMatrix and false.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return IdentityMatrix, false
	}
	inv := Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
	}
	inv.E = -(inv.A*m.E + inv.C*m.F)
	inv.F = -(inv.B*m.E + inv.D*m.F)
	return inv, true
}

// Matrix returns the full pixel→control matrix for r, folding in the DPI
// division from p.
func (r Result) Matrix(p Params) Matrix {
	dpiX, dpiY := p.dpi()
	return Translate(r.OffsetX, r.OffsetY).
		Mul(Scale(r.ScaleX, r.ScaleY)).
		Mul(Scale(1/dpiX, 1/dpiY))
}
