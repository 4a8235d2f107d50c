package multikzg

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Byte lengths of the wire encodings. Uncompressed points are raw
// big-endian coordinate limbs with no compression flags, G2 extension
// coordinates in c0-first order; this deliberately differs from the
// flagged ZCash layout used by the compressed forms.
const (
	SizeOfG1Uncompressed = 2 * fp.Bytes
	SizeOfG2Uncompressed = 4 * fp.Bytes
	SizeOfG1Compressed   = fp.Bytes
	SizeOfG2Compressed   = 2 * fp.Bytes
	SizeOfScalar         = fr.Bytes
)

var (
	// ErrInvalidPointEncoding means a point buffer has the wrong length or a
	// coordinate at or above the base field modulus.
	ErrInvalidPointEncoding = errors.New("invalid point encoding")

	// ErrPointNotOnCurve means the decoded coordinates do not satisfy the
	// curve equation.
	ErrPointNotOnCurve = errors.New("point is not on the curve")

	// ErrPointNotInSubGroup means the decoded point is on the curve but
	// outside the prime order subgroup.
	ErrPointNotInSubGroup = errors.New("point is not in the correct subgroup")

	// ErrNonCanonicalScalar means a 32-byte scalar is at or above the scalar
	// field order.
	ErrNonCanonicalScalar = errors.New("scalar is not canonical")
)

// EncodeG1 returns the uncompressed encoding x‖y of p. The point at
// infinity encodes as all zero bytes.
func EncodeG1(p *bls12381.G1Affine) (res [SizeOfG1Uncompressed]byte) {
	if p.IsInfinity() {
		return
	}
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(res[:fp.Bytes], x[:])
	copy(res[fp.Bytes:], y[:])
	return
}

// DecodeG1 parses an uncompressed G1 point, enforcing canonical
// coordinates, the curve equation and subgroup membership. All zero bytes
// decode to the point at infinity.
func DecodeG1(data []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(data) != SizeOfG1Uncompressed {
		return p, fmt.Errorf("%w: g1 expects %d bytes, got %d", ErrInvalidPointEncoding, SizeOfG1Uncompressed, len(data))
	}
	if isZeroed(data) {
		return p, nil
	}
	if err := p.X.SetBytesCanonical(data[:fp.Bytes]); err != nil {
		return bls12381.G1Affine{}, fmt.Errorf("%w: g1 x coordinate", ErrInvalidPointEncoding)
	}
	if err := p.Y.SetBytesCanonical(data[fp.Bytes:]); err != nil {
		return bls12381.G1Affine{}, fmt.Errorf("%w: g1 y coordinate", ErrInvalidPointEncoding)
	}
	if !p.IsOnCurve() {
		return bls12381.G1Affine{}, ErrPointNotOnCurve
	}
	if !p.IsInSubGroup() {
		return bls12381.G1Affine{}, ErrPointNotInSubGroup
	}
	return p, nil
}

// EncodeG2 returns the uncompressed encoding x_c0‖x_c1‖y_c0‖y_c1 of p. The
// point at infinity encodes as all zero bytes.
func EncodeG2(p *bls12381.G2Affine) (res [SizeOfG2Uncompressed]byte) {
	if p.IsInfinity() {
		return
	}
	xc0 := p.X.A0.Bytes()
	xc1 := p.X.A1.Bytes()
	yc0 := p.Y.A0.Bytes()
	yc1 := p.Y.A1.Bytes()
	copy(res[0*fp.Bytes:], xc0[:])
	copy(res[1*fp.Bytes:], xc1[:])
	copy(res[2*fp.Bytes:], yc0[:])
	copy(res[3*fp.Bytes:], yc1[:])
	return
}

// DecodeG2 parses an uncompressed G2 point with the same validation chain
// as DecodeG1.
func DecodeG2(data []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if len(data) != SizeOfG2Uncompressed {
		return p, fmt.Errorf("%w: g2 expects %d bytes, got %d", ErrInvalidPointEncoding, SizeOfG2Uncompressed, len(data))
	}
	if isZeroed(data) {
		return p, nil
	}
	if err := p.X.A0.SetBytesCanonical(data[0*fp.Bytes : 1*fp.Bytes]); err != nil {
		return bls12381.G2Affine{}, fmt.Errorf("%w: g2 x_c0 coordinate", ErrInvalidPointEncoding)
	}
	if err := p.X.A1.SetBytesCanonical(data[1*fp.Bytes : 2*fp.Bytes]); err != nil {
		return bls12381.G2Affine{}, fmt.Errorf("%w: g2 x_c1 coordinate", ErrInvalidPointEncoding)
	}
	if err := p.Y.A0.SetBytesCanonical(data[2*fp.Bytes : 3*fp.Bytes]); err != nil {
		return bls12381.G2Affine{}, fmt.Errorf("%w: g2 y_c0 coordinate", ErrInvalidPointEncoding)
	}
	if err := p.Y.A1.SetBytesCanonical(data[3*fp.Bytes : 4*fp.Bytes]); err != nil {
		return bls12381.G2Affine{}, fmt.Errorf("%w: g2 y_c1 coordinate", ErrInvalidPointEncoding)
	}
	if !p.IsOnCurve() {
		return bls12381.G2Affine{}, ErrPointNotOnCurve
	}
	if !p.IsInSubGroup() {
		return bls12381.G2Affine{}, ErrPointNotInSubGroup
	}
	return p, nil
}

// CompressG1 returns the 48-byte ZCash-style compressed encoding of p.
func CompressG1(p *bls12381.G1Affine) [SizeOfG1Compressed]byte {
	return p.Bytes()
}

// DecompressG1 parses a 48-byte compressed G1 point, subgroup check
// included.
func DecompressG1(data []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(data) != SizeOfG1Compressed {
		return p, fmt.Errorf("%w: compressed g1 expects %d bytes, got %d", ErrInvalidPointEncoding, SizeOfG1Compressed, len(data))
	}
	if _, err := p.SetBytes(data); err != nil {
		return bls12381.G1Affine{}, fmt.Errorf("compressed g1: %w", err)
	}
	return p, nil
}

// CompressG2 returns the 96-byte ZCash-style compressed encoding of p.
func CompressG2(p *bls12381.G2Affine) [SizeOfG2Compressed]byte {
	return p.Bytes()
}

// DecompressG2 parses a 96-byte compressed G2 point, subgroup check
// included.
func DecompressG2(data []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if len(data) != SizeOfG2Compressed {
		return p, fmt.Errorf("%w: compressed g2 expects %d bytes, got %d", ErrInvalidPointEncoding, SizeOfG2Compressed, len(data))
	}
	if _, err := p.SetBytes(data); err != nil {
		return bls12381.G2Affine{}, fmt.Errorf("compressed g2: %w", err)
	}
	return p, nil
}

// encodeScalar returns the 32-byte big-endian encoding of s.
func encodeScalar(s *fr.Element) [SizeOfScalar]byte {
	return s.Bytes()
}

// decodeScalar parses a 32-byte big-endian scalar, rejecting values at or
// above the scalar field order.
func decodeScalar(data []byte) (fr.Element, error) {
	var s fr.Element
	if len(data) != SizeOfScalar {
		return s, fmt.Errorf("%w: scalar expects %d bytes, got %d", ErrNonCanonicalScalar, SizeOfScalar, len(data))
	}
	if err := s.SetBytesCanonical(data); err != nil {
		return fr.Element{}, ErrNonCanonicalScalar
	}
	return s, nil
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
