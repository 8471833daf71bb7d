package sajson

import (
	"errors"
	"io"
)

var (
	// ErrInvalidJSON is returned by Unmarshal and Valid's callers for
	// input that fails to parse as JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrUnsupportedType is returned by Marshal for a Go value with no
	// JSON representation (channels, funcs, complex numbers).
	ErrUnsupportedType = errors.New("unsupported type")
)

// Marshal encodes v as JSON, the same way encoding/json.Marshal does
// for the subset of Go types this package supports.
func Marshal(v interface{}) ([]byte, error) {
	e := newEncoder()
	defer e.release()

	return e.marshal(v)
}

// Unmarshal parses data and stores the result in the value pointed to
// by v. data is left untouched; internally this parses a copy. As with
// Parse, the document root must be an object or an array.
func Unmarshal(data []byte, v interface{}) error {
	doc, err := ParseCopy(data)
	if err != nil {
		return ErrInvalidJSON
	}

	d := newDecoder(doc)
	defer d.release()

	return d.unmarshal(v)
}

// Decoder reads one JSON document from an io.Reader, the same shape as
// encoding/json.Decoder for a single top-level value. It does not
// split a stream into multiple concatenated documents.
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder returns a Decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, buf: make([]byte, 0, 4096)}
}

// Decode reads the underlying reader to EOF on its first call and
// stores the document it holds in v. Later calls decode that same
// document again.
func (dec *Decoder) Decode(v interface{}) error {
	if dec.r != nil {
		data, err := io.ReadAll(dec.r)
		if err != nil {
			return err
		}
		dec.buf = data
		dec.r = nil
	}
	return Unmarshal(dec.buf, v)
}

// Encoder writes JSON values to an io.Writer.
type Encoder struct {
	w   io.Writer
	enc *encoder
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, enc: newEncoder()}
}

// Encode writes the JSON encoding of v to the underlying writer.
func (e *Encoder) Encode(v interface{}) error {
	e.enc.buf = e.enc.buf[:0]
	data, err := e.enc.marshal(v)
	if err != nil {
		return err
	}

	_, err = e.w.Write(data)
	return err
}

// Valid reports whether data is well-formed JSON whose root is an
// object or an array; a bare scalar root is reported as invalid.
func Valid(data []byte) bool {
	doc, err := ParseCopy(data)
	if err != nil {
		return false
	}
	return doc.IsValid()
}
