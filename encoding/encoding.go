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

// Package encoding offers (de)serialization APIs for multikzg artifacts.
// Objects are CBOR encoded behind a small envelope carrying the curve ID
// and the library version that wrote them.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/multikzg"
	"github.com/consensys/multikzg/logger"
)

var errInvalidCurve = errors.New("trying to deserialize an object serialized with another curve")

// envelope prefixes every serialized object.
type envelope struct {
	Version string
	CurveID ecc.ID
}

// Write serializes object into file
func Write(path string, from interface{}, curveID ecc.ID) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Serialize(f, from, curveID)
}

// Read reads and deserializes input into object
// provided interface must be a pointer
func Read(path string, into interface{}, expectedCurveID ecc.ID) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Deserialize(f, into, expectedCurveID)
}

// Serialize object from into provided writer
// encodes the envelope in the first bytes
func Serialize(writer io.Writer, from interface{}, curveID ecc.ID) error {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}
	encoder := em.NewEncoder(writer)

	if err := encoder.Encode(envelope{
		Version: multikzg.Version.String(),
		CurveID: curveID,
	}); err != nil {
		return err
	}

	return encoder.Encode(from)
}

// Deserialize reads bytes from reader and constructs object into.
// The envelope must carry the expected curve ID; a version mismatch with
// the running library is reported as a warning, not an error.
func Deserialize(reader io.Reader, into interface{}, expectedCurveID ecc.ID) error {
	decoder := cbor.NewDecoder(reader)

	var header envelope
	if err := decoder.Decode(&header); err != nil {
		return err
	}
	objectVersion, err := semver.Parse(header.Version)
	if err != nil {
		return fmt.Errorf("when parsing artifact version: %w", err)
	}
	if multikzg.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", multikzg.Version.String()).Str("object", objectVersion.String()).Msg("multikzg version (binary) mismatch with artifact. there are no guarantees on compatibility")
	}
	if header.CurveID != expectedCurveID {
		return errInvalidCurve
	}

	return decoder.Decode(into)
}

// PeekCurveID reads the envelope of the file and returns the curve ID it
// was serialized with
func PeekCurveID(file string) (ecc.ID, error) {
	reader, err := os.Open(file)
	if err != nil {
		return ecc.UNKNOWN, err
	}
	defer reader.Close()

	decoder := cbor.NewDecoder(reader)

	var header envelope
	if err = decoder.Decode(&header); err != nil {
		return ecc.UNKNOWN, err
	}
	return header.CurveID, nil
}
