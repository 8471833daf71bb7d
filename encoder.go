package sajson

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
)

type encoder struct {
	buf []byte
}

var encoderPool = sync.Pool{
	New: func() interface{} {
		return &encoder{
			buf: make([]byte, 0, 4096),
		}
	},
}

func newEncoder() *encoder {
	e := encoderPool.Get().(*encoder)
	e.buf = e.buf[:0]
	return e
}

func (e *encoder) release() {
	if cap(e.buf) > 64*1024 {
		e.buf = make([]byte, 0, 4096)
	}
	encoderPool.Put(e)
}

func (e *encoder) marshal(v interface{}) ([]byte, error) {
	if err := e.encode(reflect.ValueOf(v)); err != nil {
		return nil, err
	}

	result := make([]byte, len(e.buf))
	copy(result, e.buf)
	return result, nil
}

// encode dispatches on v's reflect.Kind, writing scalars straight into
// e.buf inline rather than through a wrapper method per kind — only
// the container kinds (array/map/struct) carry enough control flow to
// deserve one.
func (e *encoder) encode(v reflect.Value) error {
	if !v.IsValid() {
		e.buf = append(e.buf, "null"...)
		return nil
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			e.buf = append(e.buf, "null"...)
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		e.buf = strconv.AppendBool(e.buf, v.Bool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf = strconv.AppendInt(e.buf, v.Int(), 10)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.buf = strconv.AppendUint(e.buf, v.Uint(), 10)
		return nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.New("unsupported float value")
		}
		e.buf = strconv.AppendFloat(e.buf, f, 'g', -1, 64)
		return nil
	case reflect.String:
		return e.encodeString(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.encodeBase64(v.Bytes())
		}
		return e.encodeArray(v)
	case reflect.Array:
		return e.encodeArray(v)
	case reflect.Map:
		return e.encodeMap(v)
	case reflect.Struct:
		return e.encodeStruct(v)
	case reflect.Interface:
		if v.IsNil() {
			e.buf = append(e.buf, "null"...)
			return nil
		}
		return e.encode(v.Elem())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type().String())
	}
}

func (e *encoder) encodeBase64(b []byte) error {
	e.buf = append(e.buf, '"')

	encodedLen := base64.StdEncoding.EncodedLen(len(b))
	start := len(e.buf)
	e.buf = append(e.buf, make([]byte, encodedLen)...)
	base64.StdEncoding.Encode(e.buf[start:], b)

	e.buf = append(e.buf, '"')
	return nil
}

func (e *encoder) encodeString(s string) error {
	e.buf = append(e.buf, '"')
	e.buf = appendJSONString(e.buf, s)
	e.buf = append(e.buf, '"')
	return nil
}

// appendJSONString appends s to dst with JSON escaping applied. It
// scans byte-by-byte off the same classification table the string
// decoder uses for its plain-run fast path, rather than decoding runes:
// only control bytes, '"', and '\' ever need escaping, so UTF-8 lead
// and continuation bytes (>= 0x80) run straight through a plain
// stretch at memmove speed.
func appendJSONString(dst []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !arena.NeedsEscape(c) {
			continue
		}
		dst = append(dst, s[start:i]...)
		dst = appendEscapedByte(dst, c)
		start = i + 1
	}
	return append(dst, s[start:]...)
}

func appendEscapedByte(dst []byte, c byte) []byte {
	switch c {
	case '"':
		return append(dst, '\\', '"')
	case '\\':
		return append(dst, '\\', '\\')
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	default:
		const hexDigits = "0123456789abcdef"
		dst = append(dst, '\\', 'u', '0', '0')
		return append(dst, hexDigits[c>>4], hexDigits[c&0xf])
	}
}

func (e *encoder) encodeArray(v reflect.Value) error {
	e.buf = append(e.buf, '[')

	n := v.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		if err := e.encode(v.Index(i)); err != nil {
			return err
		}
	}

	e.buf = append(e.buf, ']')
	return nil
}

// encodeMap walks v with reflect.Value.MapRange instead of snapshotting
// v.MapKeys() into a slice first — one less allocation than the
// slice-of-keys approach for maps with more than a couple of entries.
func (e *encoder) encodeMap(v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return errors.New("map key must be string")
	}

	e.buf = append(e.buf, '{')

	first := true
	iter := v.MapRange()
	for iter.Next() {
		if !first {
			e.buf = append(e.buf, ',')
		}
		first = false

		if err := e.encodeString(iter.Key().String()); err != nil {
			return err
		}
		e.buf = append(e.buf, ':')
		if err := e.encode(iter.Value()); err != nil {
			return err
		}
	}

	e.buf = append(e.buf, '}')
	return nil
}

// encodeStruct mirrors decodeStruct's tag handling: strings.Cut splits
// the tag's name from its options instead of a hand-rolled comma
// search, and an empty name falls back to the Go field name in place
// rather than being precomputed into a separate variable.
func (e *encoder) encodeStruct(v reflect.Value) error {
	e.buf = append(e.buf, '{')

	typ := v.Type()
	first := true

	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if structField.PkgPath != "" {
			continue
		}

		tag := structField.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = structField.Name
		}

		field := v.Field(i)
		if opts == "omitempty" && fieldIsEmpty(field) {
			continue
		}

		if !first {
			e.buf = append(e.buf, ',')
		}
		first = false

		if err := e.encodeString(name); err != nil {
			return err
		}

		e.buf = append(e.buf, ':')

		if err := e.encode(field); err != nil {
			return err
		}
	}

	e.buf = append(e.buf, '}')
	return nil
}

func fieldIsEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
