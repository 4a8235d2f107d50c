package multikzg

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var (
	errPairingShape = errors.New("pairing requires as many g2 as g1 points")
	errNoHostFunc   = errors.New("no host primitive configured")
)

// Pairing evaluates a product of pairings e(g1s[0], g2s[0])·e(g1s[1],
// g2s[1])·... and reports whether it is the identity of the target group.
// Implementations must be safe for concurrent use.
type Pairing interface {
	PairingCheck(g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) (bool, error)
}

// NativePairing runs the Miller loop and final exponentiation in process.
type NativePairing struct{}

// PairingCheck implements Pairing.
func (NativePairing) PairingCheck(g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) (bool, error) {
	return bls12381.PairingCheck(g1s, g2s)
}

// HostFunc invokes a host provided primitive with a request buffer and
// returns its output.
type HostFunc func(input []byte) ([]byte, error)

// HostPairing delegates the pairing product to a host primitive speaking
// the padded byte layout: the input is a sequence of pairs, each a
// 128-byte padded G1 point followed by a 256-byte padded G2 point, and the
// output one 32-byte big-endian word equal to 1 when the product is the
// identity.
type HostPairing struct {
	Call HostFunc
}

// PairingCheck implements Pairing.
func (h HostPairing) PairingCheck(g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) (bool, error) {
	if h.Call == nil {
		return false, errNoHostFunc
	}
	if len(g1s) != len(g2s) {
		return false, errPairingShape
	}
	input := make([]byte, 0, len(g1s)*(SizeOfG1Padded+SizeOfG2Padded))
	for i := range g1s {
		pg1 := EncodeG1Padded(&g1s[i])
		pg2 := EncodeG2Padded(&g2s[i])
		input = append(input, pg1[:]...)
		input = append(input, pg2[:]...)
	}
	out, err := h.Call(input)
	if err != nil {
		return false, err
	}
	if len(out) != 32 || !isZeroed(out[:31]) || out[31] > 1 {
		return false, fmt.Errorf("%w: malformed pairing output", ErrEncodingLength)
	}
	return out[31] == 1, nil
}

// HostCurve reaches elementary G1 operations through host primitives, for
// environments lacking native group arithmetic. All points cross the
// boundary in the padded layout.
type HostCurve struct {
	Add HostFunc // two padded G1 points in, one padded G1 point out
	Mul HostFunc // one padded G1 point and a 32-byte scalar in, one padded G1 point out
	Neg HostFunc // one padded G1 point in and out; optional
}

// G1Add returns a+b through the host.
func (c HostCurve) G1Add(a, b *bls12381.G1Affine) (bls12381.G1Affine, error) {
	if c.Add == nil {
		return bls12381.G1Affine{}, errNoHostFunc
	}
	pa := EncodeG1Padded(a)
	pb := EncodeG1Padded(b)
	out, err := c.Add(append(pa[:], pb[:]...))
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return DecodeG1Padded(out)
}

// G1Neg returns -p through the host. Without a negate primitive it falls
// back to scalar multiplication by r-1.
func (c HostCurve) G1Neg(p *bls12381.G1Affine) (bls12381.G1Affine, error) {
	enc := EncodeG1Padded(p)
	if c.Neg != nil {
		out, err := c.Neg(enc[:])
		if err != nil {
			return bls12381.G1Affine{}, err
		}
		return DecodeG1Padded(out)
	}
	if c.Mul == nil {
		return bls12381.G1Affine{}, errNoHostFunc
	}
	var minusOne fr.Element
	minusOne.SetOne().Neg(&minusOne)
	scalar := minusOne.Bytes()
	out, err := c.Mul(append(enc[:], scalar[:]...))
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	return DecodeG1Padded(out)
}
