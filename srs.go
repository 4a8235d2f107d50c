package multikzg

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/consensys/multikzg/logger"
)

var (
	// ErrMinSRSSize means the requested srs cannot hold a single power of τ.
	ErrMinSRSSize = errors.New("minimum srs size is 2")

	// ErrInvalidSRSSize means the g1 and g2 ladders of a deserialized srs
	// disagree in length.
	ErrInvalidSRSSize = errors.New("g1 and g2 ladders must have the same length")

	// ErrInvalidGenerator means a deserialized srs does not start at the
	// canonical generators.
	ErrInvalidGenerator = errors.New("srs does not start at the canonical generator")

	// ErrSRSInconsistent means the powers of a deserialized srs do not share
	// a common ratio τ.
	ErrSRSInconsistent = errors.New("srs powers do not share a common ratio")
)

// ProvingKey carries the powers of τ on both groups. Unlike single point
// opening schemes, the batched scheme commits quotients on G2, so the G2
// ladder spans the full power range rather than the two points a verifier
// would need.
type ProvingKey struct {
	G1 []bls12381.G1Affine // [G₁, τG₁, τ²G₁, ...]
	G2 []bls12381.G2Affine // [G₂, τG₂, τ²G₂, ...]
}

// VerifyingKey carries the fixed points a verifier holds.
type VerifyingKey struct {
	G1 bls12381.G1Affine    // generator of G₁
	G2 [2]bls12381.G2Affine // generator of G₂ and τG₂
}

// SRS is the structured reference string of the scheme. It is built once,
// never mutated afterwards, and safe for concurrent readers.
type SRS struct {
	Pk ProvingKey
	Vk VerifyingKey
}

// NewSRS builds the reference string for the given τ, with size powers on
// each group. τ is reduced modulo the scalar field order.
//
// The secret must come from a trusted setup and be destroyed afterwards;
// this constructor exists for the setup tool and for tests.
func NewSRS(size uint64, tau *big.Int) (*SRS, error) {
	if size < 2 {
		return nil, ErrMinSRSSize
	}

	log := logger.Logger().With().Str("curve", "bls12_381").Uint64("size", size).Logger()
	start := time.Now()

	var tauFr fr.Element
	tauFr.SetBigInt(new(big.Int).Mod(tau, fr.Modulus()))

	powers := make([]fr.Element, size)
	powers[0].SetOne()
	for i := 1; i < len(powers); i++ {
		powers[i].Mul(&powers[i-1], &tauFr)
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()

	var srs SRS
	srs.Pk.G1 = bls12381.BatchScalarMultiplicationG1(&g1Gen, powers)
	srs.Pk.G2 = bls12381.BatchScalarMultiplicationG2(&g2Gen, powers)
	srs.Vk.G1 = g1Gen
	srs.Vk.G2[0] = g2Gen
	srs.Vk.G2[1] = srs.Pk.G2[1]

	log.Debug().Dur("took", time.Since(start)).Msg("srs generated")

	return &srs, nil
}

// WriteTo writes the binary encoding of the srs into w.
func (srs *SRS) WriteTo(w io.Writer) (int64, error) {
	enc := bls12381.NewEncoder(w)

	toEncode := []interface{}{
		srs.Pk.G1,
		srs.Pk.G2,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}

	return enc.BytesWritten(), nil
}

// ReadFrom reads the srs from r, validating it fully: every point goes
// through subgroup checks, the ladders must start at the canonical
// generators and agree in length, and the powers must pass the pairing
// based consistency check. Use UnsafeReadFrom for trusted artifacts.
func (srs *SRS) ReadFrom(r io.Reader) (int64, error) {
	n, err := srs.readFrom(r)
	if err != nil {
		return n, err
	}
	return n, srs.CheckConsistency()
}

// UnsafeReadFrom reads the srs from r skipping subgroup checks and the
// consistency check. Only for artifacts this process wrote itself.
func (srs *SRS) UnsafeReadFrom(r io.Reader) (int64, error) {
	return srs.readFrom(r, bls12381.NoSubgroupChecks())
}

func (srs *SRS) readFrom(r io.Reader, options ...func(*bls12381.Decoder)) (int64, error) {
	dec := bls12381.NewDecoder(r, options...)

	toDecode := []interface{}{
		&srs.Pk.G1,
		&srs.Pk.G2,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}

	if len(srs.Pk.G1) != len(srs.Pk.G2) {
		return dec.BytesRead(), fmt.Errorf("%w: %d g1 powers, %d g2 powers", ErrInvalidSRSSize, len(srs.Pk.G1), len(srs.Pk.G2))
	}
	if len(srs.Pk.G1) < 2 {
		return dec.BytesRead(), ErrMinSRSSize
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()
	if !srs.Pk.G1[0].Equal(&g1Gen) || !srs.Pk.G2[0].Equal(&g2Gen) {
		return dec.BytesRead(), ErrInvalidGenerator
	}
	srs.Vk.G1 = g1Gen
	srs.Vk.G2[0] = g2Gen
	srs.Vk.G2[1] = srs.Pk.G2[1]

	return dec.BytesRead(), nil
}

// CheckConsistency verifies that both ladders are geometric with the same
// ratio τ. The ladders are folded with a random scalar into two points per
// group, so the whole check costs two multiexponentiations per group and
// two products of pairings.
func (srs *SRS) CheckConsistency() error {
	n := len(srs.Pk.G1)
	if n != len(srs.Pk.G2) {
		return ErrInvalidSRSSize
	}
	if n < 2 {
		return ErrMinSRSSize
	}

	var rho fr.Element
	if _, err := rho.SetRandom(); err != nil {
		panic(err)
	}
	powers := make([]fr.Element, n-1)
	powers[0].SetOne()
	for i := 1; i < len(powers); i++ {
		powers[i].Mul(&powers[i-1], &rho)
	}

	// fold the g1 ladder and check it climbs by the τ committed in τG₂:
	// e(Σ ρⁱ·G1[i+1], G₂) == e(Σ ρⁱ·G1[i], τG₂)
	var lo, hi bls12381.G1Affine
	if _, err := lo.MultiExp(srs.Pk.G1[:n-1], powers, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	if _, err := hi.MultiExp(srs.Pk.G1[1:], powers, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	lo.Neg(&lo)
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{hi, lo},
		[]bls12381.G2Affine{srs.Vk.G2[0], srs.Vk.G2[1]},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSRSInconsistent
	}

	// fold the g2 ladder and check it climbs by the τ committed in τG₁:
	// e(G₁, Σ ρⁱ·G2[i+1]) == e(τG₁, Σ ρⁱ·G2[i])
	var lo2, hi2 bls12381.G2Affine
	if _, err := lo2.MultiExp(srs.Pk.G2[:n-1], powers, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	if _, err := hi2.MultiExp(srs.Pk.G2[1:], powers, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	var negG1 bls12381.G1Affine
	negG1.Neg(&srs.Vk.G1)
	ok, err = bls12381.PairingCheck(
		[]bls12381.G1Affine{negG1, srs.Pk.G1[1]},
		[]bls12381.G2Affine{hi2, lo2},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSRSInconsistent
	}

	return nil
}
