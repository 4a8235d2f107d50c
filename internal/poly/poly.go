// Package poly implements dense univariate polynomial arithmetic over the
// BLS12-381 scalar field, as needed by multi-point opening proofs: vanishing
// polynomial construction, Lagrange interpolation and exact division.
package poly

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var (
	// ErrInexactDivision is returned by DivideByVanishing when the vanishing
	// polynomial does not divide the dividend, i.e. the dividend does not
	// vanish on all the roots.
	ErrInexactDivision = errors.New("vanishing polynomial does not divide")

	// ErrRepeatedPoint is returned by Interpolate when two interpolation
	// points coincide.
	ErrRepeatedPoint = errors.New("repeated interpolation point")

	errShapeMismatch = errors.New("points and values must have the same length")
)

// Polynomial is represented by its coefficients, index i holding the
// coefficient of Xⁱ.
type Polynomial []fr.Element

// Eval returns p(x) using Horner's method.
func (p Polynomial) Eval(x *fr.Element) fr.Element {
	var res fr.Element
	if len(p) == 0 {
		return res
	}
	res.Set(&p[len(p)-1])
	for i := len(p) - 2; i >= 0; i-- {
		res.Mul(&res, x).Add(&res, &p[i])
	}
	return res
}

// Degree returns the index of the highest nonzero coefficient. The zero
// polynomial has degree -1.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Clone returns a copy of p.
func (p Polynomial) Clone() Polynomial {
	q := make(Polynomial, len(p))
	copy(q, p)
	return q
}

// Trim returns p without trailing zero coefficients.
func (p Polynomial) Trim() Polynomial {
	return p[:p.Degree()+1]
}

// Sub returns a - b.
func Sub(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make(Polynomial, n)
	copy(res, a)
	for i := range b {
		res[i].Sub(&res[i], &b[i])
	}
	return res
}

// Mul returns the product a·b by coefficient convolution. Quadratic, which
// is fine for the degrees involved here.
func Mul(a, b Polynomial) Polynomial {
	if len(a) == 0 || len(b) == 0 {
		return Polynomial{}
	}
	res := make(Polynomial, len(a)+len(b)-1)
	var t fr.Element
	for i := range a {
		for j := range b {
			t.Mul(&a[i], &b[j])
			res[i+j].Add(&res[i+j], &t)
		}
	}
	return res
}

// FromRoots returns the monic vanishing polynomial ∏ᵢ (X - rootsᵢ).
func FromRoots(roots []fr.Element) Polynomial {
	z := make(Polynomial, 1, len(roots)+1)
	z[0].SetOne()
	var t fr.Element
	for i := range roots {
		// multiply z by (X - rootsᵢ) in place, top coefficient first
		z = append(z, z[len(z)-1])
		for j := len(z) - 2; j > 0; j-- {
			t.Mul(&z[j], &roots[i])
			z[j].Sub(&z[j-1], &t)
		}
		z[0].Mul(&z[0], &roots[i]).Neg(&z[0])
	}
	return z
}

// divideByLinear divides f by (X - a) in place; it returns the quotient,
// aliasing f[1:], and the remainder f(a).
func divideByLinear(f Polynomial, a *fr.Element) (Polynomial, fr.Element) {
	var t fr.Element
	for i := len(f) - 2; i >= 0; i-- {
		t.Mul(&f[i+1], a)
		f[i].Add(&f[i], &t)
	}
	return f[1:], f[0]
}

// Interpolate returns the unique polynomial of degree below len(points)
// taking value valuesᵢ at pointsᵢ. The points must be pairwise distinct;
// a repeated point is reported as ErrRepeatedPoint.
func Interpolate(points, values []fr.Element) (Polynomial, error) {
	if len(points) != len(values) {
		return nil, errShapeMismatch
	}
	z := FromRoots(points)

	// numeratorsᵢ = Z / (X - pointsᵢ); its value at pointsᵢ is the Lagrange
	// denominator ∏_{j≠i} (pointsᵢ - pointsⱼ), zero iff a point repeats.
	numerators := make([]Polynomial, len(points))
	denominators := make([]fr.Element, len(points))
	for i := range points {
		numerators[i], _ = divideByLinear(z.Clone(), &points[i])
		denominators[i] = numerators[i].Eval(&points[i])
		if denominators[i].IsZero() {
			return nil, ErrRepeatedPoint
		}
	}
	denominators = fr.BatchInvert(denominators)

	res := make(Polynomial, len(points))
	var s, t fr.Element
	for i := range points {
		s.Mul(&values[i], &denominators[i])
		for j := range numerators[i] {
			t.Mul(&numerators[i][j], &s)
			res[j].Add(&res[j], &t)
		}
	}
	return res, nil
}

// DivideByVanishing divides p by ∏ᵢ (X - rootsᵢ) through repeated synthetic
// division, one root at a time. The division must be exact: a nonzero
// remainder at any step is reported as ErrInexactDivision and witnesses that
// p does not vanish on the roots.
func DivideByVanishing(p Polynomial, roots []fr.Element) (Polynomial, error) {
	q := p.Clone()
	for i := range roots {
		if len(q) == 0 {
			// the zero polynomial vanishes everywhere
			return q, nil
		}
		var rem fr.Element
		q, rem = divideByLinear(q, &roots[i])
		if !rem.IsZero() {
			return nil, ErrInexactDivision
		}
	}
	return q, nil
}
