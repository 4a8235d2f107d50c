/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cmd is a CLI tool to produce and check multikzg artifacts:
// reference strings, commitments and multiproofs in their wire formats
package cmd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/consensys/multikzg"
	"github.com/consensys/multikzg/encoding"
	"github.com/consensys/multikzg/internal/poly"
)

var errNotFound = errors.New("file not found")

func cmdSetup(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing srs size -- multikzg setup -h for help")
		os.Exit(-1)
	}
	size, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("invalid srs size:", args[0])
		os.Exit(-1)
	}

	srsPath := filepath.Join(".", "multikzg.srs")
	if fSrsPath != "" {
		srsPath = filepath.Clean(fSrsPath)
	}

	tau := new(big.Int)
	switch {
	case fTau != "":
		if _, ok := tau.SetString(fTau, 10); !ok {
			fmt.Println("invalid tau:", fTau)
			os.Exit(-1)
		}
	case fSeed != "":
		digest := blake2b.Sum256([]byte(fSeed))
		tau.SetBytes(digest[:])
	default:
		if tau, err = rand.Int(rand.Reader, fr.Modulus()); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
	}

	start := time.Now()
	srs, err := multikzg.NewSRS(size, tau)
	tau.SetInt64(0) // the secret must not outlive the ladder construction
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "generated srs", srsPath, time.Since(start))

	f, err := os.Create(srsPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if _, err := srs.WriteTo(f); err != nil {
		f.Close()
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if err := f.Close(); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "wrote srs", srsPath)

	// read the artifact back through the full validation chain, pairing
	// based consistency check included
	start = time.Now()
	if _, err := loadSRS(srsPath); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "verified srs", srsPath, time.Since(start))
}

func cmdCommit(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing polynomial path -- multikzg commit -h for help")
		os.Exit(-1)
	}
	polyPath := filepath.Clean(args[0])
	commitmentPath := filepath.Join(".", artifactName(polyPath)+".commitment")
	if fCommitmentPath != "" {
		commitmentPath = filepath.Clean(fCommitmentPath)
	}

	// ensure srs flag is set and valid
	if fSrsPath == "" {
		fmt.Println("please specify srs path")
		_ = cmd.Usage()
		os.Exit(-1)
	}
	fSrsPath = filepath.Clean(fSrsPath)

	p, err := loadPolynomial(polyPath)
	if err != nil {
		fmt.Println("can't parse polynomial", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d coefficients\n", "loaded polynomial", polyPath, len(p))

	srs, err := loadSRS(fSrsPath)
	if err != nil {
		fmt.Println("can't load srs")
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d powers\n", "loaded srs", fSrsPath, len(srs.Pk.G1))

	start := time.Now()
	digest, err := multikzg.Commit(p, &srs.Pk)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "computed commitment", commitmentPath, time.Since(start))

	compressed := multikzg.CompressG1(&digest)
	if err := encoding.Write(commitmentPath, compressed[:], multikzg.CurveID()); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %x\n", "commitment", compressed)
}

func cmdProve(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing polynomial path -- multikzg prove -h for help")
		os.Exit(-1)
	}
	polyPath := filepath.Clean(args[0])
	proofPath := filepath.Join(".", artifactName(polyPath)+".proof")
	if fProofPath != "" {
		proofPath = filepath.Clean(fProofPath)
	}

	// ensure srs and points flags are set and valid
	if fSrsPath == "" {
		fmt.Println("please specify srs path")
		_ = cmd.Usage()
		os.Exit(-1)
	}
	if fPoints == "" {
		fmt.Println("please specify evaluation points")
		_ = cmd.Usage()
		os.Exit(-1)
	}
	fSrsPath = filepath.Clean(fSrsPath)

	p, err := loadPolynomial(polyPath)
	if err != nil {
		fmt.Println("can't parse polynomial", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d coefficients\n", "loaded polynomial", polyPath, len(p))

	srs, err := loadSRS(fSrsPath)
	if err != nil {
		fmt.Println("can't load srs")
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-d powers\n", "loaded srs", fSrsPath, len(srs.Pk.G1))

	points, err := parseScalars(fPoints)
	if err != nil {
		fmt.Println("can't parse points", err)
		os.Exit(-1)
	}

	// an honest prover claims the actual evaluations
	values := make([]fr.Element, len(points))
	for i := range points {
		values[i] = p.Eval(&points[i])
	}

	start := time.Now()
	proof, err := multikzg.GenerateMultiProof(p, points, values, srs)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "generated proof", proofPath, time.Since(start))

	var raw []byte
	if fPadded {
		raw = paddedProofBytes(proof)
	} else if raw, err = proof.MarshalBinary(); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if err := os.WriteFile(proofPath, raw, 0600); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "wrote proof", proofPath)
}

func cmdVerify(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing proof path -- multikzg verify -h for help")
		os.Exit(-1)
	}
	proofPath := filepath.Clean(args[0])
	if !fileExists(proofPath) {
		fmt.Println(proofPath, errNotFound)
		os.Exit(-1)
	}
	raw, err := os.ReadFile(proofPath)
	if err != nil {
		fmt.Println("can't read proof", err)
		os.Exit(-1)
	}

	start := time.Now()
	if fPadded {
		if raw, err = nativeProofBytes(raw); err != nil {
			fmt.Printf("%-30s %-30s %-30s\n", "proof is invalid", proofPath, time.Since(start))
			fmt.Println(err)
			os.Exit(-1)
		}
	}

	verifier := multikzg.NewVerifier()
	if !verifier.VerifyBytes(raw) {
		fmt.Printf("%-30s %-30s %-30s\n", "proof is invalid", proofPath, time.Since(start))
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s %-30s\n", "proof is valid", proofPath, time.Since(start))
}

func loadSRS(path string) (*multikzg.SRS, error) {
	if path == "" {
		return nil, errors.New("please specify srs path")
	}
	path = filepath.Clean(path)
	if !fileExists(path) {
		return nil, errNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var srs multikzg.SRS
	if _, err := srs.ReadFrom(f); err != nil {
		return nil, err
	}
	return &srs, nil
}

// loadPolynomial reads whitespace separated decimal coefficients, constant
// term first.
func loadPolynomial(path string) (poly.Polynomial, error) {
	if !fileExists(path) {
		return nil, errNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil, errors.New("empty polynomial")
	}
	p := make(poly.Polynomial, 0, len(fields))
	for _, field := range fields {
		c, ok := new(big.Int).SetString(field, 10)
		if !ok {
			return nil, fmt.Errorf("invalid coefficient %q", field)
		}
		var e fr.Element
		e.SetBigInt(c)
		p = append(p, e)
	}
	return p, nil
}

// parseScalars parses a comma separated list of decimal scalars.
func parseScalars(list string) ([]fr.Element, error) {
	if list == "" {
		return nil, errors.New("empty scalar list")
	}
	parts := strings.Split(list, ",")
	res := make([]fr.Element, 0, len(parts))
	for _, part := range parts {
		c, ok := new(big.Int).SetString(strings.TrimSpace(part), 10)
		if !ok {
			return nil, fmt.Errorf("invalid scalar %q", part)
		}
		var e fr.Element
		e.SetBigInt(c)
		res = append(res, e)
	}
	return res, nil
}

// paddedProofBytes lays a proof out like MarshalBinary with every curve
// point in its host aligned padded form.
func paddedProofBytes(proof *multikzg.MultiProof) []byte {
	k := len(proof.Points)
	res := make([]byte, 0, 2*multikzg.SizeOfG1Padded+2*k*multikzg.SizeOfScalar+multikzg.SizeOfG2Padded)
	negDiff := multikzg.EncodeG1Padded(&proof.NegDiffComm)
	res = append(res, negDiff[:]...)
	zComm := multikzg.EncodeG1Padded(&proof.ZComm)
	res = append(res, zComm[:]...)
	for i := range proof.Points {
		b := proof.Points[i].Bytes()
		res = append(res, b[:]...)
	}
	for i := range proof.ClaimedValues {
		b := proof.ClaimedValues[i].Bytes()
		res = append(res, b[:]...)
	}
	quotient := multikzg.EncodeG2Padded(&proof.QuotientComm)
	res = append(res, quotient[:]...)
	return res
}

// nativeProofBytes converts a padded proof layout back to the native wire
// layout, validating the padding and the points on the way.
func nativeProofBytes(raw []byte) ([]byte, error) {
	fixed := 2*multikzg.SizeOfG1Padded + multikzg.SizeOfG2Padded
	if len(raw) < fixed+2*multikzg.SizeOfScalar || (len(raw)-fixed)%(2*multikzg.SizeOfScalar) != 0 {
		return nil, fmt.Errorf("padded proof layout expects %d+64k bytes, got %d", fixed, len(raw))
	}
	k := (len(raw) - fixed) / (2 * multikzg.SizeOfScalar)

	res := make([]byte, 0, 2*multikzg.SizeOfG1Uncompressed+2*k*multikzg.SizeOfScalar+multikzg.SizeOfG2Uncompressed)
	off := 0
	for i := 0; i < 2; i++ {
		p, err := multikzg.DecodeG1Padded(raw[off : off+multikzg.SizeOfG1Padded])
		if err != nil {
			return nil, err
		}
		native := multikzg.EncodeG1(&p)
		res = append(res, native[:]...)
		off += multikzg.SizeOfG1Padded
	}
	scalarBytes := 2 * k * multikzg.SizeOfScalar
	res = append(res, raw[off:off+scalarBytes]...)
	off += scalarBytes
	q, err := multikzg.DecodeG2Padded(raw[off:])
	if err != nil {
		return nil, err
	}
	native := multikzg.EncodeG2(&q)
	res = append(res, native[:]...)
	return res, nil
}

func artifactName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
