// Package multikzg implements batched (multi point) KZG opening proofs over
// BLS12-381: a single proof, checked with one product of pairings, attests
// that a committed polynomial takes claimed values at up to
// MaxEvaluationPoints points at once.
//
// The scheme commits the quotient polynomial on G2, unlike single point
// KZG, so the reference string carries full power ladders on both groups.
// Proofs are binding but not hiding; callers needing a zero knowledge
// property must blind their inputs upstream.
package multikzg

import (
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
)

var Version = semver.MustParse("1.0.0")

// CurveID returns the curve the library operates on. Artifacts written by
// the encoding package are stamped with it.
func CurveID() ecc.ID {
	return ecc.BLS12_381
}
