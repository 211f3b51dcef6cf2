package constraint

import (
	"bytes"
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	wordprob "github.com/wordprob/wordprob"
)

// serializedSystem is the on-disk shape of a System; the version header lets
// readers reject payloads written by an incompatible release.
type serializedSystem struct {
	Version   string           `cbor:"version"`
	Coeffs    [][]int8         `cbor:"coeffs"`
	RHS       []int64          `cbor:"rhs"`
	Variables []Variable       `cbor:"variables"`
	Known     map[string]int64 `cbor:"known"`
	Masked    []string         `cbor:"masked"`
}

// WriteTo serializes the system in deterministic cbor, prefixed with the
// module version.
func (s *System) WriteTo(w io.Writer) (int64, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	data, err := enc.Marshal(serializedSystem{
		Version:   wordprob.Version.String(),
		Coeffs:    s.Coeffs,
		RHS:       s.RHS,
		Variables: s.Variables,
		Known:     s.Known,
		Masked:    s.Masked,
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom deserializes a system written by WriteTo. The payload's major
// version must match the current module version.
func (s *System) ReadFrom(r io.Reader) (int64, error) {
	var buf bytes.Buffer
	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}

	dm, err := cbor.DecOptions{
		MaxArrayElements: 134217728,
		MaxMapPairs:      134217728,
	}.DecMode()
	if err != nil {
		return n, err
	}

	var raw serializedSystem
	if err := dm.Unmarshal(buf.Bytes(), &raw); err != nil {
		return n, err
	}

	v, err := semver.Parse(raw.Version)
	if err != nil {
		return n, fmt.Errorf("constraint: invalid version header %q: %w", raw.Version, err)
	}
	if v.Major != wordprob.Version.Major {
		return n, fmt.Errorf("constraint: incompatible serialization version %s (running %s)", raw.Version, wordprob.Version)
	}

	s.Coeffs = raw.Coeffs
	s.RHS = raw.RHS
	s.Variables = raw.Variables
	s.Known = raw.Known
	s.Masked = raw.Masked
	s.index = nil
	return n, nil
}
