package multikzg

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/consensys/multikzg/internal/poly"
)

// ErrInvalidPolynomialSize means a polynomial degree exceeds the capacity
// of the srs ladder it is committed on.
var ErrInvalidPolynomialSize = errors.New("polynomial degree exceeds the srs capacity")

// Digest is a KZG commitment to a polynomial, a single G1 point carrying no
// information about individual coefficients.
type Digest = bls12381.G1Affine

// Commit computes Σ pᵢ·τⁱG₁. The zero polynomial commits to the point at
// infinity.
func Commit(p poly.Polynomial, pk *ProvingKey) (Digest, error) {
	var res Digest
	d := p.Degree()
	if d >= len(pk.G1) {
		return res, ErrInvalidPolynomialSize
	}
	if d < 0 {
		return res, nil
	}
	if _, err := res.MultiExp(pk.G1[:d+1], p[:d+1], ecc.MultiExpConfig{}); err != nil {
		return Digest{}, err
	}
	return res, nil
}

// CommitG2 computes Σ pᵢ·τⁱG₂. Multiproof quotients are committed on the
// G2 ladder.
func CommitG2(p poly.Polynomial, pk *ProvingKey) (bls12381.G2Affine, error) {
	var res bls12381.G2Affine
	d := p.Degree()
	if d >= len(pk.G2) {
		return res, ErrInvalidPolynomialSize
	}
	if d < 0 {
		return res, nil
	}
	if _, err := res.MultiExp(pk.G2[:d+1], p[:d+1], ecc.MultiExpConfig{}); err != nil {
		return bls12381.G2Affine{}, err
	}
	return res, nil
}
