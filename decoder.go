package sajson

import (
	"errors"
	"reflect"
	"strings"
	"sync"
)

// decoder walks a parsed Document's navigator and assigns into a
// caller-supplied Go value via reflection, the struct-tag rules
// matching encoding/json's (name, and "-" to skip a field).
type decoder struct {
	doc *Document
}

var decoderPool = sync.Pool{
	New: func() interface{} {
		return &decoder{}
	},
}

func newDecoder(doc *Document) *decoder {
	d := decoderPool.Get().(*decoder)
	d.doc = doc
	return d
}

func (d *decoder) release() {
	d.doc = nil
	decoderPool.Put(d)
}

func (d *decoder) unmarshal(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("unmarshal requires non-nil pointer")
	}

	if !d.doc.IsValid() {
		return errors.New(d.doc.ErrorMessage())
	}

	return d.decode(d.doc.Root(), rv.Elem())
}

func (d *decoder) decode(src Value, dst reflect.Value) error {
	// Handle pointer types
	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return d.decode(src, dst.Elem())
	}

	// Handle interface{} type
	if dst.Kind() == reflect.Interface && dst.Type().NumMethod() == 0 {
		dst.Set(reflect.ValueOf(src.Interface()))
		return nil
	}

	switch src.Type() {
	case Null:
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	case True, False, Integer, Double, String:
		return d.decodeScalar(src, dst)
	case Array:
		return d.decodeArray(src, dst)
	case Object:
		return d.decodeObject(src, dst)
	default:
		return errors.New("unexpected value type")
	}
}

// decodeScalar assigns a non-container Value into dst, reading off
// whichever tagged-word accessor matches src.Type() directly rather
// than through a pre-unwrapped Go primitive.
func (d *decoder) decodeScalar(src Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Bool:
		if src.Type() == True || src.Type() == False {
			dst.SetBool(src.Type() == True)
			return nil
		}
	case reflect.String:
		if src.Type() == String {
			dst.SetString(src.String())
			return nil
		}
	case reflect.Float32, reflect.Float64:
		if src.Type() == Integer || src.Type() == Double {
			dst.SetFloat(src.NumberValue())
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if src.Type() == Integer || src.Type() == Double {
			dst.SetInt(int64(src.NumberValue()))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if src.Type() == Integer || src.Type() == Double {
			dst.SetUint(uint64(src.NumberValue()))
			return nil
		}
	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			dst.Set(reflect.ValueOf(src.Interface()))
			return nil
		}
	}
	return errors.New("cannot unmarshal " + src.Type().String() + " into " + dst.Type().String())
}

func (d *decoder) decodeArray(src Value, dst reflect.Value) error {
	n := src.Length()

	switch dst.Kind() {
	case reflect.Slice:
		if dst.IsNil() || dst.Len() < n {
			dst.Set(reflect.MakeSlice(dst.Type(), n, n))
		}
		for i := 0; i < n; i++ {
			if err := d.decode(src.Index(i), dst.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Array:
		if dst.Len() < n {
			return errors.New("array too small")
		}
		for i := 0; i < n; i++ {
			if err := d.decode(src.Index(i), dst.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			dst.Set(reflect.ValueOf(src.Interface()))
			return nil
		}
	}

	return errors.New("cannot unmarshal array into " + dst.Type().String())
}

func (d *decoder) decodeObject(src Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}

		keyType := dst.Type().Key()
		elemType := dst.Type().Elem()
		if keyType.Kind() != reflect.String {
			return errors.New("map key must be string")
		}

		n := src.Length()
		for i := 0; i < n; i++ {
			keyVal := reflect.New(keyType).Elem()
			keyVal.SetString(string(src.ObjectKeyAt(i)))

			elemVal := reflect.New(elemType).Elem()
			if err := d.decode(src.ObjectValueAt(i), elemVal); err != nil {
				return err
			}

			dst.SetMapIndex(keyVal, elemVal)
		}
		return nil

	case reflect.Struct:
		return d.decodeStruct(src, dst)

	case reflect.Interface:
		if dst.Type().NumMethod() == 0 {
			dst.Set(reflect.ValueOf(src.Interface()))
			return nil
		}
	}

	return errors.New("cannot unmarshal object into " + dst.Type().String())
}

// decodeStruct fills dst field-by-field, looking each one up in src
// via Value.Lookup rather than building a name-to-index map and
// walking src's live keys the other way around — so a struct with
// fewer fields than the object has keys pays for exactly the lookups
// it needs, binary-searching or scanning per Lookup's own threshold
// rule instead of always visiting every key once.
func (d *decoder) decodeStruct(src Value, dst reflect.Value) error {
	typ := dst.Type()

	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)

		tag := structField.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = structField.Name
		}

		val, ok := src.Lookup(name)
		if !ok {
			continue
		}

		field := dst.Field(i)
		if !field.CanSet() {
			continue
		}
		if err := d.decode(val, field); err != nil {
			return err
		}
	}

	return nil
}
