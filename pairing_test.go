package multikzg

import (
	"errors"
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"
)

// mockPairingHost speaks the padded pairing request layout on top of the
// native implementation, standing in for a real precompile.
func mockPairingHost(input []byte) ([]byte, error) {
	pairSize := SizeOfG1Padded + SizeOfG2Padded
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, errors.New("malformed pairing input")
	}
	n := len(input) / pairSize
	g1s := make([]bls12381.G1Affine, n)
	g2s := make([]bls12381.G2Affine, n)
	var err error
	for i := 0; i < n; i++ {
		chunk := input[i*pairSize:]
		if g1s[i], err = DecodeG1Padded(chunk[:SizeOfG1Padded]); err != nil {
			return nil, err
		}
		if g2s[i], err = DecodeG2Padded(chunk[SizeOfG1Padded : SizeOfG1Padded+SizeOfG2Padded]); err != nil {
			return nil, err
		}
	}
	ok, err := bls12381.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, nil
}

func mockAddHost(input []byte) ([]byte, error) {
	if len(input) != 2*SizeOfG1Padded {
		return nil, errors.New("malformed add input")
	}
	a, err := DecodeG1Padded(input[:SizeOfG1Padded])
	if err != nil {
		return nil, err
	}
	b, err := DecodeG1Padded(input[SizeOfG1Padded:])
	if err != nil {
		return nil, err
	}
	var aJac, bJac bls12381.G1Jac
	aJac.FromAffine(&a)
	bJac.FromAffine(&b)
	aJac.AddAssign(&bJac)
	var sum bls12381.G1Affine
	sum.FromJacobian(&aJac)
	enc := EncodeG1Padded(&sum)
	return enc[:], nil
}

func mockMulHost(input []byte) ([]byte, error) {
	if len(input) != SizeOfG1Padded+SizeOfScalar {
		return nil, errors.New("malformed mul input")
	}
	p, err := DecodeG1Padded(input[:SizeOfG1Padded])
	if err != nil {
		return nil, err
	}
	s := new(big.Int).SetBytes(input[SizeOfG1Padded:])
	var res bls12381.G1Affine
	res.ScalarMultiplication(&p, s)
	enc := EncodeG1Padded(&res)
	return enc[:], nil
}

func TestHostPairingParity(t *testing.T) {
	assert := require.New(t)

	srs := testSRS(t, 16)
	native := NewVerifier(WithPairing(NativePairing{}))
	hosted := NewVerifier(WithHostFunc(mockPairingHost))

	proof := honestProof(t, randomPoly(8), distinctScalars(3), srs)
	assert.True(native.Verify(proof))
	assert.True(hosted.Verify(proof))

	proof.QuotientComm = randomG2()
	assert.False(native.Verify(proof))
	assert.False(hosted.Verify(proof))
}

func TestHostPairingRejects(t *testing.T) {
	assert := require.New(t)

	g1s := []bls12381.G1Affine{randomG1()}
	g2s := []bls12381.G2Affine{randomG2()}

	_, err := HostPairing{}.PairingCheck(g1s, g2s)
	assert.ErrorIs(err, errNoHostFunc)

	_, err = HostPairing{Call: mockPairingHost}.PairingCheck(g1s, nil)
	assert.ErrorIs(err, errPairingShape)

	// a host answering anything but a 32 byte 0/1 word is rejected
	for _, out := range [][]byte{
		nil,
		make([]byte, 31),
		{2: 1, 31: 0},
		func() []byte { b := make([]byte, 32); b[31] = 2; return b }(),
	} {
		h := HostPairing{Call: func([]byte) ([]byte, error) { return out, nil }}
		ok, err := h.PairingCheck(g1s, g2s)
		assert.False(ok)
		assert.ErrorIs(err, ErrEncodingLength)
	}

	hostErr := errors.New("host unavailable")
	h := HostPairing{Call: func([]byte) ([]byte, error) { return nil, hostErr }}
	_, err = h.PairingCheck(g1s, g2s)
	assert.ErrorIs(err, hostErr)
}

func TestHostCurveAdd(t *testing.T) {
	assert := require.New(t)

	hc := HostCurve{Add: mockAddHost}
	a := randomG1()
	b := randomG1()

	got, err := hc.G1Add(&a, &b)
	assert.NoError(err)

	var aJac, bJac bls12381.G1Jac
	aJac.FromAffine(&a)
	bJac.FromAffine(&b)
	aJac.AddAssign(&bJac)
	var want bls12381.G1Affine
	want.FromJacobian(&aJac)
	assert.True(got.Equal(&want))

	_, err = HostCurve{}.G1Add(&a, &b)
	assert.ErrorIs(err, errNoHostFunc)
}

func TestHostCurveNeg(t *testing.T) {
	assert := require.New(t)

	a := randomG1()
	var want bls12381.G1Affine
	want.Neg(&a)

	// a host exposing a negate primitive
	negHost := func(input []byte) ([]byte, error) {
		p, err := DecodeG1Padded(input)
		if err != nil {
			return nil, err
		}
		var n bls12381.G1Affine
		n.Neg(&p)
		enc := EncodeG1Padded(&n)
		return enc[:], nil
	}
	got, err := HostCurve{Neg: negHost}.G1Neg(&a)
	assert.NoError(err)
	assert.True(got.Equal(&want))

	// without one, negation runs as multiplication by r-1
	got, err = HostCurve{Mul: mockMulHost}.G1Neg(&a)
	assert.NoError(err)
	assert.True(got.Equal(&want))

	_, err = HostCurve{}.G1Neg(&a)
	assert.ErrorIs(err, errNoHostFunc)
}
