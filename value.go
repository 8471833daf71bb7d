package sajson

import (
	"math"

	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
	"github.com/biggeezerdevelopment/sajson-go/internal/ast"
)

// Value is a read-only view onto one node of a parsed Document. It is
// a small value type (a tag, a payload slice, and a couple of shared
// pointers) safe to pass around and cheap to re-derive from a parent:
// navigating from Value to Value never allocates.
//
// Accessors assume the caller has already checked Type(); calling one
// against the wrong kind of value is undefined, same as the reference
// implementation.
type Value struct {
	tag       Type
	payload   []arena.Word
	data      []byte
	threshold int
}

// Type returns the value's kind.
func (v Value) Type() Type { return v.tag }

// IntegerValue returns the payload of a TagInteger value.
func (v Value) IntegerValue() int32 {
	return arena.LoadInteger(v.payload)
}

// DoubleValue returns the payload of a TagDouble value.
func (v Value) DoubleValue() float64 {
	return arena.LoadDouble(v.payload)
}

// NumberValue returns a numeric value's payload as a float64
// regardless of whether it was stored as an integer or a double,
// convenient for callers who don't care which.
func (v Value) NumberValue() float64 {
	if v.tag == Integer {
		return float64(v.IntegerValue())
	}
	return v.DoubleValue()
}

// IsInt53 reports whether this numeric value is exactly representable
// as a signed integer with |x| <= 2^53 — the range a consumer limited
// to IEEE-754 doubles can carry losslessly.
func (v Value) IsInt53() bool {
	if v.tag == Integer {
		return true
	}
	d := v.DoubleValue()
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return false
	}
	if d != math.Trunc(d) {
		return false
	}
	return math.Abs(d) <= (1 << 53)
}

// Int53Value returns the numeric payload as an int64. Valid only when
// IsInt53 reports true.
func (v Value) Int53Value() int64 {
	if v.tag == Integer {
		return int64(v.IntegerValue())
	}
	return int64(v.DoubleValue())
}

// StringBytes returns a TagString value's decoded bytes. The slice
// aliases the document's input buffer; it must not be retained past
// the buffer's lifetime and must not be mutated.
func (v Value) StringBytes() []byte {
	start := arena.Word(v.payload[0])
	end := arena.Word(v.payload[1])
	return v.data[start:end]
}

// String returns a TagString value's decoded content as a string,
// copying the bytes. Also satisfies fmt.Stringer.
func (v Value) String() string {
	return string(v.StringBytes())
}

// Length returns an array's element count or an object's key count.
func (v Value) Length() int {
	return int(v.payload[0])
}

// child resolves an element word read from this value's payload into
// the Value it references. The element's value field is an offset
// relative to this value's own payload base, not an absolute index.
func (v Value) child(elementWord arena.Word) Value {
	offset := arena.ValueOf(elementWord)
	return Value{
		tag:       typeFromTag(arena.TagOf(elementWord)),
		payload:   v.payload[offset:],
		data:      v.data,
		threshold: v.threshold,
	}
}

// Index returns an array's i'th element.
func (v Value) Index(i int) Value {
	return v.child(v.payload[1+i])
}

// ObjectKeyAt returns the byte range of an object's i'th key, in
// storage order — which is sort order once the object crossed the
// key-sort threshold, and source order below it.
func (v Value) ObjectKeyAt(i int) []byte {
	start := v.payload[1+i*3]
	end := v.payload[1+i*3+1]
	return v.data[start:end]
}

// ObjectValueAt returns the value paired with an object's i'th key.
func (v Value) ObjectValueAt(i int) Value {
	return v.child(v.payload[1+i*3+2])
}

// FindKey returns the index of the key that byte-equals key, or
// Length() if no key in the object matches. When the object has more
// keys than the parse's sort threshold, this binary searches;
// otherwise it scans linearly. Ties among equal keys resolve to
// whichever one lookup happens to land on first — unspecified, as in
// the reference implementation.
func (v Value) FindKey(key []byte) int {
	return ast.FindObjectKey(v.payload, v.data, key, v.threshold)
}

// Lookup is FindKey's idiomatic counterpart: it returns the matching
// value directly, with ok=false on a miss instead of a sentinel index
// equal to Length().
func (v Value) Lookup(key string) (Value, bool) {
	idx := v.FindKey([]byte(key))
	if idx >= v.Length() {
		return Value{}, false
	}
	return v.ObjectValueAt(idx), true
}

// Interface materializes a value into native Go values shaped like
// what encoding/json.Unmarshal produces for an interface{} destination:
// nil, bool, int64, float64, string, []interface{}, or
// map[string]interface{}. Unlike encoding/json, an integer value comes
// back as int64 rather than float64.
func (v Value) Interface() interface{} {
	switch v.tag {
	case Null:
		return nil
	case True:
		return true
	case False:
		return false
	case Integer:
		return int64(v.IntegerValue())
	case Double:
		return v.DoubleValue()
	case String:
		return v.String()
	case Array:
		n := v.Length()
		out := make([]interface{}, n)
		for i := 0; i < n; i++ {
			out[i] = v.Index(i).Interface()
		}
		return out
	case Object:
		n := v.Length()
		out := make(map[string]interface{}, n)
		for i := 0; i < n; i++ {
			out[string(v.ObjectKeyAt(i))] = v.ObjectValueAt(i).Interface()
		}
		return out
	default:
		return nil
	}
}
