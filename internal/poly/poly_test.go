package poly

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func randomPolynomial(degree int) Polynomial {
	p := make(Polynomial, degree+1)
	for i := range p {
		if _, err := p[i].SetRandom(); err != nil {
			panic(err)
		}
	}
	for p[degree].IsZero() {
		if _, err := p[degree].SetRandom(); err != nil {
			panic(err)
		}
	}
	return p
}

func distinctPoints(k int) []fr.Element {
	seen := make(map[fr.Element]struct{}, k)
	points := make([]fr.Element, 0, k)
	for len(points) < k {
		var z fr.Element
		if _, err := z.SetRandom(); err != nil {
			panic(err)
		}
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		points = append(points, z)
	}
	return points
}

func TestEval(t *testing.T) {
	assert := require.New(t)

	// 3X³ + 2X² + X + 1
	var p Polynomial
	for _, c := range []uint64{1, 1, 2, 3} {
		var e fr.Element
		e.SetUint64(c)
		p = append(p, e)
	}

	var x, want fr.Element
	for _, tc := range []struct{ x, y uint64 }{
		{0, 1}, {1, 7}, {2, 35}, {3, 103},
	} {
		x.SetUint64(tc.x)
		want.SetUint64(tc.y)
		got := p.Eval(&x)
		assert.True(got.Equal(&want), "P(%d) != %d", tc.x, tc.y)
	}

	var zero Polynomial
	if _, err := x.SetRandom(); err != nil {
		panic(err)
	}
	res := zero.Eval(&x)
	assert.True(res.IsZero())
}

func TestDegreeTrim(t *testing.T) {
	assert := require.New(t)

	assert.Equal(-1, Polynomial{}.Degree())
	assert.Equal(-1, make(Polynomial, 4).Degree())

	p := randomPolynomial(5)
	assert.Equal(5, p.Degree())

	padded := append(p.Clone(), make(Polynomial, 3)...)
	assert.Equal(5, padded.Degree())
	assert.Equal(6, len(padded.Trim()))
}

func TestFromRoots(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("the vanishing polynomial is monic and vanishes on its roots", prop.ForAll(
		func(k int) bool {
			roots := distinctPoints(k)
			z := FromRoots(roots)
			if len(z) != k+1 || !z[k].IsOne() {
				return false
			}
			for i := range roots {
				if res := z.Eval(&roots[i]); !res.IsZero() {
					return false
				}
			}
			// off a root, Z must not vanish
			var x fr.Element
			if _, err := x.SetRandom(); err != nil {
				panic(err)
			}
			res := z.Eval(&x)
			return !res.IsZero()
		},
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMul(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("(a·b)(x) == a(x)·b(x)", prop.ForAll(
		func(da, db int) bool {
			a := randomPolynomial(da)
			b := randomPolynomial(db)
			ab := Mul(a, b)
			if ab.Degree() != da+db {
				return false
			}
			var x fr.Element
			if _, err := x.SetRandom(); err != nil {
				panic(err)
			}
			left := ab.Eval(&x)
			ax := a.Eval(&x)
			bx := b.Eval(&x)
			var right fr.Element
			right.Mul(&ax, &bx)
			return left.Equal(&right)
		},
		gen.IntRange(0, 16),
		gen.IntRange(0, 16),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	assert := require.New(t)
	assert.Empty(Mul(Polynomial{}, randomPolynomial(3)))
}

func TestSub(t *testing.T) {
	assert := require.New(t)

	a := randomPolynomial(7)
	b := randomPolynomial(3)
	d := Sub(a, b)

	var x fr.Element
	if _, err := x.SetRandom(); err != nil {
		panic(err)
	}
	ax := a.Eval(&x)
	bx := b.Eval(&x)
	var want fr.Element
	want.Sub(&ax, &bx)
	got := d.Eval(&x)
	assert.True(got.Equal(&want))

	// a - a == 0
	assert.Equal(-1, Sub(a, a).Degree())

	// shorter minuend allocates up to the subtrahend
	d = Sub(b, a)
	assert.Equal(7, d.Degree())
}

func TestInterpolate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("the interpolation takes the prescribed values", prop.ForAll(
		func(k int) bool {
			points := distinctPoints(k)
			values := make([]fr.Element, k)
			for i := range values {
				if _, err := values[i].SetRandom(); err != nil {
					panic(err)
				}
			}
			p, err := Interpolate(points, values)
			if err != nil || p.Degree() >= k {
				return false
			}
			for i := range points {
				if got := p.Eval(&points[i]); !got.Equal(&values[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	assert := require.New(t)

	// a single pair interpolates to the constant polynomial
	points := distinctPoints(1)
	values := []fr.Element{{}}
	if _, err := values[0].SetRandom(); err != nil {
		panic(err)
	}
	p, err := Interpolate(points, values)
	assert.NoError(err)
	assert.Equal(0, p.Degree())
	assert.True(p[0].Equal(&values[0]))

	// repeated point
	points = distinctPoints(3)
	points = append(points, points[1])
	_, err = Interpolate(points, make([]fr.Element, 4))
	assert.ErrorIs(err, ErrRepeatedPoint)

	// shape mismatch
	_, err = Interpolate(points, make([]fr.Element, 2))
	assert.Error(err)
}

func TestDivideByVanishing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("(q·z) / z == q", prop.ForAll(
		func(dq, k int) bool {
			q := randomPolynomial(dq)
			roots := distinctPoints(k)
			p := Mul(q, FromRoots(roots))
			got, err := DivideByVanishing(p, roots)
			if err != nil {
				return false
			}
			got = got.Trim()
			if len(got) != len(q) {
				return false
			}
			for i := range q {
				if !got[i].Equal(&q[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 16),
		gen.IntRange(1, 16),
	))

	properties.Property("a perturbed dividend is rejected", prop.ForAll(
		func(dq, k int) bool {
			q := randomPolynomial(dq)
			roots := distinctPoints(k)
			p := Mul(q, FromRoots(roots))
			var one fr.Element
			one.SetOne()
			p[0].Add(&p[0], &one)
			_, err := DivideByVanishing(p, roots)
			return err == ErrInexactDivision
		},
		gen.IntRange(0, 16),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	assert := require.New(t)

	// the zero polynomial divides exactly
	q, err := DivideByVanishing(Polynomial{}, distinctPoints(2))
	assert.NoError(err)
	assert.Equal(-1, q.Degree())
}
