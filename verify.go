package multikzg

import (
	"runtime"
	"sync"

	"github.com/bits-and-blooms/bitset"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"golang.org/x/sync/errgroup"
)

// Verifier checks multiproofs against fixed configuration: the canonical
// G2 generator and a pairing backend. It is stateless beyond that and safe
// for concurrent use.
type Verifier struct {
	g2Gen   bls12381.G2Affine
	pairing Pairing
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithPairing swaps the pairing backend, e.g. for a host delegated
// implementation behind a precompile boundary.
func WithPairing(p Pairing) Option {
	return func(v *Verifier) { v.pairing = p }
}

// WithHostFunc delegates the pairing product to the given host primitive.
// Shorthand for WithPairing(HostPairing{Call: f}).
func WithHostFunc(f HostFunc) Option {
	return WithPairing(HostPairing{Call: f})
}

// NewVerifier returns a Verifier bound to the canonical G2 generator,
// using the native pairing unless an option overrides it.
func NewVerifier(opts ...Option) *Verifier {
	_, _, _, g2Gen := bls12381.Generators()
	v := &Verifier{
		g2Gen:   g2Gen,
		pairing: NativePairing{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify reports whether the proof passes the opening check
//
//	e(ZComm, QuotientComm) · e(NegDiffComm, G₂) == 1
//
// which holds iff Q·Z = P - I held at construction time. Structural or
// point validation failures and malformed input of any kind resolve to
// false; adversarial proofs cannot abort the verification path.
func (v *Verifier) Verify(proof *MultiProof) bool {
	if proof == nil {
		return false
	}
	k := len(proof.Points)
	if k == 0 || k > MaxEvaluationPoints || len(proof.ClaimedValues) != k {
		return false
	}
	if !validG1(&proof.ZComm) || !validG1(&proof.NegDiffComm) || !validG2(&proof.QuotientComm) {
		return false
	}

	ok, err := v.pairing.PairingCheck(
		[]bls12381.G1Affine{proof.ZComm, proof.NegDiffComm},
		[]bls12381.G2Affine{proof.QuotientComm, v.g2Gen},
	)
	return err == nil && ok
}

// VerifyBytes decodes the wire form of a proof and verifies it. Any decode
// failure is a reject.
func (v *Verifier) VerifyBytes(raw []byte) bool {
	var proof MultiProof
	if err := proof.UnmarshalBinary(raw); err != nil {
		return false
	}
	return v.Verify(&proof)
}

// VerifyBatch verifies independent proofs concurrently and reports the
// logical AND of the individual outcomes, together with the set of failing
// indices. There is no partial credit: the batch passes only if every
// proof does.
func (v *Verifier) VerifyBatch(proofs []*MultiProof) (bool, *bitset.BitSet) {
	failed := bitset.New(uint(len(proofs)))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := range proofs {
		i := i
		g.Go(func() error {
			if !v.Verify(proofs[i]) {
				mu.Lock()
				failed.Set(uint(i))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return failed.None(), failed
}

func validG1(p *bls12381.G1Affine) bool {
	return p.IsInfinity() || (p.IsOnCurve() && p.IsInSubGroup())
}

func validG2(p *bls12381.G2Affine) bool {
	return p.IsInfinity() || (p.IsOnCurve() && p.IsInSubGroup())
}
