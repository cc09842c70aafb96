// Package jsonval models JSON documents as a tagged value tree.
//
// Every value carries an explicit Kind (null, bool, number, string, array,
// object), so code that walks a document can switch exhaustively instead of
// type-asserting on interface{} shapes. The package provides deep copy,
// structural equality, conversion to and from the plain decoded forms used
// by encoding/json, and dot-path access into nested objects.
package jsonval

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the JSON type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a single JSON value. The zero Value is JSON null.
//
// Object and array contents are held by reference: copying a Value with =
// shares the underlying containers. Use Clone for an independent copy.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a JSON number.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a JSON number from an integer.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns a JSON array holding the given items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object returns a JSON object holding the given fields. The map is taken
// by reference; pass nil for an empty object.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = make(map[string]Value)
	}
	return Value{kind: KindObject, obj: fields}
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean content. The second result is false when v is
// not a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric content.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsString returns the string content.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// Items returns the backing slice of an array value, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Fields returns the backing map of an object value, or nil for other kinds.
// Mutating the map mutates the value.
func (v Value) Fields() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Len returns the number of items or fields, and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Field returns the named field of an object value.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	val, ok := v.obj[key]
	return val, ok
}

// Index returns the i-th item of an array value.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// FromInterface converts a plain decoded JSON shape (the output of
// encoding/json into interface{}) to a Value. Go integer types are accepted
// for convenience. Anything outside the JSON data model is an error.
func FromInterface(in any) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for key, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			fields[key] = v
		}
		return Object(fields), nil
	case Value:
		return x.Clone(), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", in)
	}
}

// MustFromInterface is FromInterface that panics on error. Intended for
// literal default trees built from constants.
func MustFromInterface(in any) Value {
	v, err := FromInterface(in)
	if err != nil {
		panic(err)
	}
	return v
}

// Interface converts v back to the plain decoded shapes: nil, bool, float64,
// string, []any, map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for key, item := range v.obj {
			out[key] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// Clone returns a deep copy of v sharing no containers with the original.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]Value, len(v.obj))
		for key, item := range v.obj {
			obj[key] = item.Clone()
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return v
	}
}

// Equal reports deep structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for key, item := range v.obj {
			o, ok := other.obj[key]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Get retrieves the value at a dot-separated path of object keys.
func (v Value) Get(path string) (Value, bool) {
	cur := v
	for _, part := range strings.Split(path, ".") {
		if cur.kind != KindObject {
			return Value{}, false
		}
		next, ok := cur.obj[part]
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Set stores a deep copy of val at a dot-separated path, creating
// intermediate objects as needed. Non-object values along the path are
// replaced by objects. Returns an error when v itself is not an object.
func (v *Value) Set(path string, val Value) error {
	if v.kind != KindObject {
		return fmt.Errorf("cannot set %q on %s value", path, v.kind)
	}
	if v.obj == nil {
		v.obj = make(map[string]Value)
	}
	parts := strings.Split(path, ".")
	cur := v.obj
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur[part]
		if !ok || child.kind != KindObject || child.obj == nil {
			child = Object(nil)
			cur[part] = child
		}
		cur = child.obj
	}
	cur[parts[len(parts)-1]] = val.Clone()
	return nil
}

// Delete removes the value at a dot-separated path. Returns true if a value
// was present and removed.
func (v *Value) Delete(path string) bool {
	if v.kind != KindObject {
		return false
	}
	parts := strings.Split(path, ".")
	cur := v.obj
	for _, part := range parts[:len(parts)-1] {
		child, ok := cur[part]
		if !ok || child.kind != KindObject {
			return false
		}
		cur = child.obj
	}
	key := parts[len(parts)-1]
	if _, ok := cur[key]; !ok {
		return false
	}
	delete(cur, key)
	return true
}
