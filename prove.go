package multikzg

import (
	"errors"
	"time"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/consensys/multikzg/debug"
	"github.com/consensys/multikzg/internal/poly"
	"github.com/consensys/multikzg/logger"
)

// MaxEvaluationPoints bounds the number of points a single multiproof may
// open.
const MaxEvaluationPoints = 128

var (
	// ErrInvalidNbPoints means the evaluation set is empty, exceeds
	// MaxEvaluationPoints, or has points and values of different lengths.
	ErrInvalidNbPoints = errors.New("invalid number of evaluation points")

	// ErrDuplicatePoint means two evaluation points coincide. Were it to
	// slip through, interpolation would divide by zero.
	ErrDuplicatePoint = errors.New("duplicate evaluation point")

	// ErrDegreeTooSmall means the polynomial degree is below the number of
	// evaluation points, which would leave a zero quotient.
	ErrDegreeTooSmall = errors.New("polynomial degree is below the number of evaluation points")

	// ErrEvaluationMismatch means the claimed values are not the values of
	// the polynomial at the given points. A prover cannot proceed past this:
	// the quotient division is the binding step of the scheme.
	ErrEvaluationMismatch = errors.New("claimed values do not match the polynomial")
)

// MultiProof attests that a committed polynomial takes the claimed values
// at every point of a batch, checked with a single product of pairings.
type MultiProof struct {
	// QuotientComm commits to (P - I)/Z on the G2 powers, where I
	// interpolates the claims and Z vanishes on the points.
	QuotientComm bls12381.G2Affine

	// ZComm commits to Z on the G1 powers.
	ZComm bls12381.G1Affine

	// NegDiffComm is -(Commit(P) - Commit(I)), precomputed so that a
	// constrained verifier needs no group subtraction primitive.
	NegDiffComm bls12381.G1Affine

	// Points are the evaluation points zᵢ.
	Points []fr.Element

	// ClaimedValues are the claimed evaluations yᵢ = P(zᵢ).
	ClaimedValues []fr.Element
}

// GenerateMultiProof builds the opening proof of p at the given points.
// The claimed values must be exactly the evaluations of p there; the proof
// owns copies of both slices.
func GenerateMultiProof(p poly.Polynomial, points, values []fr.Element, srs *SRS) (*MultiProof, error) {
	k := len(points)
	if k == 0 || k > MaxEvaluationPoints || len(values) != k {
		return nil, ErrInvalidNbPoints
	}
	seen := make(map[fr.Element]struct{}, k)
	for i := range points {
		if _, ok := seen[points[i]]; ok {
			return nil, ErrDuplicatePoint
		}
		seen[points[i]] = struct{}{}
	}
	d := p.Degree()
	if d >= len(srs.Pk.G1) {
		return nil, ErrInvalidPolynomialSize
	}
	if d < k {
		return nil, ErrDegreeTooSmall
	}
	if d-k >= len(srs.Pk.G2) {
		// the quotient has degree d-k and goes on the G2 ladder
		return nil, ErrInvalidPolynomialSize
	}

	log := logger.Logger().With().Str("curve", "bls12_381").Int("nbPoints", k).Int("degree", d).Logger()
	start := time.Now()

	zPoly := poly.FromRoots(points)
	iPoly, err := poly.Interpolate(points, values)
	if err != nil {
		return nil, err
	}

	quotient, err := poly.DivideByVanishing(poly.Sub(p, iPoly), points)
	if err != nil {
		return nil, ErrEvaluationMismatch
	}
	debug.Assert(quotient.Degree() == d-k, "quotient degree mismatch")

	var proof MultiProof
	proof.Points = make([]fr.Element, k)
	copy(proof.Points, points)
	proof.ClaimedValues = make([]fr.Element, k)
	copy(proof.ClaimedValues, values)

	if proof.QuotientComm, err = CommitG2(quotient, &srs.Pk); err != nil {
		return nil, err
	}
	if proof.ZComm, err = Commit(zPoly, &srs.Pk); err != nil {
		return nil, err
	}
	pComm, err := Commit(p, &srs.Pk)
	if err != nil {
		return nil, err
	}
	iComm, err := Commit(iPoly, &srs.Pk)
	if err != nil {
		return nil, err
	}
	proof.NegDiffComm.Sub(&pComm, &iComm)
	proof.NegDiffComm.Neg(&proof.NegDiffComm)

	log.Debug().Dur("took", time.Since(start)).Msg("multiproof generated")

	return &proof, nil
}
