package multikzg

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// Hosts exposing curve operations as precompiles align every coordinate
// limb on 64 bytes, the 48 data bytes preceded by 16 zero bytes.
const (
	sizeOfPaddedLimb = 64
	sizeOfPadding    = sizeOfPaddedLimb - fp.Bytes

	SizeOfG1Padded = 2 * sizeOfPaddedLimb
	SizeOfG2Padded = 4 * sizeOfPaddedLimb
)

var (
	// ErrEncodingLength means a buffer at the padding boundary has the wrong
	// length.
	ErrEncodingLength = errors.New("wrong length at the padding boundary")

	// ErrPaddingNotZero means the 16 alignment bytes of a limb are not zero.
	ErrPaddingNotZero = errors.New("padding bytes are not zero")
)

// EncodeG1Padded returns the host aligned 128-byte form of p.
func EncodeG1Padded(p *bls12381.G1Affine) (res [SizeOfG1Padded]byte) {
	native := EncodeG1(p)
	padLimbs(res[:], native[:])
	return
}

// DecodeG1Padded parses a host aligned 128-byte G1 point. The padding must
// be zero; the underlying point goes through the full DecodeG1 validation.
func DecodeG1Padded(data []byte) (bls12381.G1Affine, error) {
	if len(data) != SizeOfG1Padded {
		return bls12381.G1Affine{}, fmt.Errorf("%w: padded g1 expects %d bytes, got %d", ErrEncodingLength, SizeOfG1Padded, len(data))
	}
	var native [SizeOfG1Uncompressed]byte
	if err := unpadLimbs(native[:], data); err != nil {
		return bls12381.G1Affine{}, err
	}
	return DecodeG1(native[:])
}

// EncodeG2Padded returns the host aligned 256-byte form of p.
func EncodeG2Padded(p *bls12381.G2Affine) (res [SizeOfG2Padded]byte) {
	native := EncodeG2(p)
	padLimbs(res[:], native[:])
	return
}

// DecodeG2Padded parses a host aligned 256-byte G2 point.
func DecodeG2Padded(data []byte) (bls12381.G2Affine, error) {
	if len(data) != SizeOfG2Padded {
		return bls12381.G2Affine{}, fmt.Errorf("%w: padded g2 expects %d bytes, got %d", ErrEncodingLength, SizeOfG2Padded, len(data))
	}
	var native [SizeOfG2Uncompressed]byte
	if err := unpadLimbs(native[:], data); err != nil {
		return bls12381.G2Affine{}, err
	}
	return DecodeG2(native[:])
}

func padLimbs(dst, src []byte) {
	for i := 0; i < len(src)/fp.Bytes; i++ {
		copy(dst[i*sizeOfPaddedLimb+sizeOfPadding:], src[i*fp.Bytes:(i+1)*fp.Bytes])
	}
}

func unpadLimbs(dst, src []byte) error {
	for i := 0; i < len(dst)/fp.Bytes; i++ {
		limb := src[i*sizeOfPaddedLimb : (i+1)*sizeOfPaddedLimb]
		if !isZeroed(limb[:sizeOfPadding]) {
			return ErrPaddingNotZero
		}
		copy(dst[i*fp.Bytes:], limb[sizeOfPadding:])
	}
	return nil
}
