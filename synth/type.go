package synth

import (
	"fmt"
	"reflect"
	"slices"

	"reflex/internal/common"
)

// markerField is the leading zero-size field carrying the type name in its tag,
// it keeps structurally identical synthesized types distinct.
const markerField = "SynthType"

type field struct {
	index int
	typ   reflect.Type
}

// Type is a synthesized struct type. It is immutable.
type Type struct {
	name   string
	rtype  reflect.Type
	keys   []string
	fields map[string]field
}

func (t *Type) Name() string {
	return t.name
}

// Reflect returns the underlying struct type.
func (t *Type) Reflect() reflect.Type {
	return t.rtype
}

// Keys returns the mapping keys the type was defined from, sorted.
func (t *Type) Keys() []string {
	return slices.Clone(t.keys)
}

// FieldType returns the type of the field backing key.
func (t *Type) FieldType(key string) (reflect.Type, bool) {
	f, ok := t.fields[key]
	return f.typ, ok
}

// FieldName returns the Go identifier of the field backing key.
func (t *Type) FieldName(key string) (string, bool) {
	f, ok := t.fields[key]
	if !ok {
		return "", false
	}

	return t.rtype.Field(f.index).Name, true
}

func (t *Type) String() string {
	return t.name
}

// New returns a zero-initialized instance.
func (t *Type) New() *Object {
	return &Object{typ: t, ptr: reflect.New(t.rtype)}
}

// Object is an instance of a synthesized type.
type Object struct {
	typ *Type
	ptr reflect.Value
}

func (o *Object) Type() *Type {
	return o.typ
}

// Interface returns the pointer to the underlying struct.
func (o *Object) Interface() any {
	return o.ptr.Interface()
}

func (o *Object) Keys() []string {
	return o.typ.Keys()
}

// Get reads the field backing key.
func (o *Object) Get(key string) (any, error) {
	f, err := o.field(key)
	if err != nil {
		return nil, err
	}

	return o.ptr.Elem().Field(f.index).Interface(), nil
}

// Set writes value into the field backing key. There is no conversion: value must
// be assignable to the field type, nil stores the zero value.
func (o *Object) Set(key string, value any) error {
	f, err := o.field(key)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(value)
	if !v.IsValid() {
		v = reflect.Zero(f.typ)
	}

	if !v.Type().AssignableTo(f.typ) {
		return fmt.Errorf("%w: cannot assign %s to %s of type %s", ErrTypeMismatch,
			common.TypeName(v.Type()), key, common.TypeName(f.typ))
	}

	o.ptr.Elem().Field(f.index).Set(v)

	return nil
}

func (o *Object) field(key string) (field, error) {
	f, ok := o.typ.fields[key]
	if !ok {
		return field{}, fmt.Errorf("%w: %s has no key %q", ErrUnknownKey, o.typ.name, key)
	}

	return f, nil
}
