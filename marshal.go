package multikzg

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Wire layout of a multiproof, 384 + 64k bytes for k points:
//
//	NegDiffComm (96) ‖ ZComm (96) ‖ Points (k×32) ‖ ClaimedValues (k×32) ‖ QuotientComm (192)
const sizeOfProofFixedPart = 2*SizeOfG1Uncompressed + SizeOfG2Uncompressed

// ErrInvalidProofLength means a proof buffer does not match the wire
// layout for any number of points between 1 and MaxEvaluationPoints.
var ErrInvalidProofLength = errors.New("proof bytes do not match the wire layout")

// MarshalBinary returns the wire encoding of the proof.
func (proof *MultiProof) MarshalBinary() ([]byte, error) {
	k := len(proof.Points)
	if k == 0 || k > MaxEvaluationPoints || len(proof.ClaimedValues) != k {
		return nil, ErrInvalidNbPoints
	}

	res := make([]byte, 0, sizeOfProofFixedPart+2*k*SizeOfScalar)
	negDiff := EncodeG1(&proof.NegDiffComm)
	res = append(res, negDiff[:]...)
	zComm := EncodeG1(&proof.ZComm)
	res = append(res, zComm[:]...)
	for i := range proof.Points {
		b := encodeScalar(&proof.Points[i])
		res = append(res, b[:]...)
	}
	for i := range proof.ClaimedValues {
		b := encodeScalar(&proof.ClaimedValues[i])
		res = append(res, b[:]...)
	}
	quotient := EncodeG2(&proof.QuotientComm)
	res = append(res, quotient[:]...)

	return res, nil
}

// UnmarshalBinary parses a wire encoded proof. The number of points is
// recovered from the buffer length; every curve point goes through the
// full validation chain of DecodeG1 and DecodeG2.
func (proof *MultiProof) UnmarshalBinary(data []byte) error {
	if len(data) < sizeOfProofFixedPart+2*SizeOfScalar {
		return fmt.Errorf("%w: %d bytes", ErrInvalidProofLength, len(data))
	}
	rem := len(data) - sizeOfProofFixedPart
	if rem%(2*SizeOfScalar) != 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidProofLength, len(data))
	}
	k := rem / (2 * SizeOfScalar)
	if k > MaxEvaluationPoints {
		return ErrInvalidNbPoints
	}

	var err error
	off := 0
	if proof.NegDiffComm, err = DecodeG1(data[off : off+SizeOfG1Uncompressed]); err != nil {
		return err
	}
	off += SizeOfG1Uncompressed
	if proof.ZComm, err = DecodeG1(data[off : off+SizeOfG1Uncompressed]); err != nil {
		return err
	}
	off += SizeOfG1Uncompressed

	proof.Points = make([]fr.Element, k)
	for i := range proof.Points {
		if proof.Points[i], err = decodeScalar(data[off : off+SizeOfScalar]); err != nil {
			return err
		}
		off += SizeOfScalar
	}
	proof.ClaimedValues = make([]fr.Element, k)
	for i := range proof.ClaimedValues {
		if proof.ClaimedValues[i], err = decodeScalar(data[off : off+SizeOfScalar]); err != nil {
			return err
		}
		off += SizeOfScalar
	}

	if proof.QuotientComm, err = DecodeG2(data[off:]); err != nil {
		return err
	}
	return nil
}
