package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/wordprob/wordprob/question"
)

// Writer persists a stream of problems.
type Writer interface {
	Write(p *question.Problem) error
	Close() error
}

// Open creates a Writer at path with the given format ("jsonl" or "cbor").
func Open(path, format string) (Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: create %s: %w", path, err)
	}
	switch format {
	case "jsonl":
		return NewJSONLWriter(f, f), nil
	case "cbor":
		w, err := NewCBORWriter(f, f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return w, nil
	default:
		f.Close()
		return nil, fmt.Errorf("dataset: unknown format %q", format)
	}
}

type jsonlWriter struct {
	buf    *bufio.Writer
	enc    *json.Encoder
	closer io.Closer
}

// NewJSONLWriter writes one JSON problem per line. closer may be nil.
func NewJSONLWriter(w io.Writer, closer io.Closer) Writer {
	buf := bufio.NewWriter(w)
	return &jsonlWriter{buf: buf, enc: json.NewEncoder(buf), closer: closer}
}

func (w *jsonlWriter) Write(p *question.Problem) error {
	return w.enc.Encode(p)
}

func (w *jsonlWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

type cborWriter struct {
	buf    *bufio.Writer
	enc    *cbor.Encoder
	closer io.Closer
}

// NewCBORWriter writes a canonical cbor stream, one problem per item.
// closer may be nil.
func NewCBORWriter(w io.Writer, closer io.Closer) (Writer, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(w)
	return &cborWriter{buf: buf, enc: em.NewEncoder(buf), closer: closer}, nil
}

func (w *cborWriter) Write(p *question.Problem) error {
	return w.enc.Encode(p)
}

func (w *cborWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// ReadJSONL loads a JSONL dataset back into memory, e.g. for re-verification.
func ReadJSONL(r io.Reader) ([]*question.Problem, error) {
	dec := json.NewDecoder(r)
	var out []*question.Problem
	for {
		var p question.Problem
		if err := dec.Decode(&p); err == io.EOF {
			return out, nil
		} else if err != nil {
			return out, fmt.Errorf("dataset: decode problem %d: %w", len(out), err)
		}
		out = append(out, &p)
	}
}
