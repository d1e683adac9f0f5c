package transform

import (
	"fmt"
	"reflect"

	"github.com/tliron/commonlog"

	"reflex/convert"
	"reflex/internal/common"
	"reflex/introspect"
	"reflex/kv"
	"reflex/synth"
)

var ErrInvalidArgument = common.ErrInvalidArgument

var log = commonlog.GetLogger("reflex.transform")

type Transformer struct {
	conv  *convert.Converter
	synth *synth.Synthesizer
}

type Option func(*Transformer)

func WithConverter(conv *convert.Converter) Option {
	return func(t *Transformer) {
		t.conv = conv
	}
}

func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(t *Transformer) {
		t.synth = s
	}
}

// New returns a transformer, by default on the default converter and a fresh synthesizer.
func New(opts ...Option) *Transformer {
	t := &Transformer{}
	for _, opt := range opts {
		opt(t)
	}

	if t.synth == nil {
		t.synth = synth.New()
	}

	return t
}

func (t *Transformer) converter() *convert.Converter {
	if t.conv == nil {
		return convert.Default()
	}

	return t.conv
}

// ToMapping returns one entry per public member declared on src, values taken as they are.
func (t *Transformer) ToMapping(src any) (kv.Mapping, error) {
	res := make(kv.Mapping)
	err := eachMember(src, func(member *introspect.MemberDescriptor, value reflect.Value) {
		if value.IsValid() {
			res[member.Name] = value.Interface()
		} else {
			res[member.Name] = nil
		}
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// ToStringMapping renders every member of src as text. Absent values (nil
// pointers, slices, maps, interfaces) stay absent instead of becoming "".
func (t *Transformer) ToStringMapping(src any) (kv.Strings, error) {
	res := make(kv.Strings)
	err := eachMember(src, func(member *introspect.MemberDescriptor, value reflect.Value) {
		res[member.Name] = t.text(member, value)
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// ToCollection is ToStringMapping into an ordered collection, members keep their declaration order.
func (t *Transformer) ToCollection(src any) (*kv.Collection, error) {
	res := kv.NewCollection()
	err := eachMember(src, func(member *introspect.MemberDescriptor, value reflect.Value) {
		if text := t.text(member, value); text != nil {
			res.Add(member.Name, *text)
		} else {
			res.AddNull(member.Name)
		}
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// FromMapping synthesizes a struct type from mapping and returns a pointer to
// an instance holding the mapping values.
func (t *Transformer) FromMapping(mapping kv.Mapping) (any, error) {
	obj, err := t.synth.Synthesize(mapping)
	if err != nil {
		return nil, err
	}

	return obj.Interface(), nil
}

func (t *Transformer) text(member *introspect.MemberDescriptor, value reflect.Value) *string {
	if !value.IsValid() || isAbsent(value) {
		return nil
	}

	text, ok := t.converter().ToString(value.Interface())
	if !ok {
		log.Debugf("member %s has no text form", member.Name)
		return nil
	}

	return &text
}

// ToTypedMappingWith is ToMapping with every value converted to V. A value that
// does not convert becomes the zero value of V.
func ToTypedMappingWith[V any](t *Transformer, src any) (map[string]V, error) {
	res := make(map[string]V)
	err := eachMember(src, func(member *introspect.MemberDescriptor, value reflect.Value) {
		var v any
		if value.IsValid() {
			v = value.Interface()
		}
		res[member.Name] = convert.ToWith[V](t.converter(), v)
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// FlattenCollection folds collection into a single valued mapping, the last value of a key wins.
func FlattenCollection(collection *kv.Collection) (kv.Strings, error) {
	if collection == nil {
		return nil, fmt.Errorf("%w: nil collection", ErrInvalidArgument)
	}

	return collection.Flatten(), nil
}

// CollectionFromStrings builds a collection with one value per key, keys sorted.
func CollectionFromStrings(mapping kv.Strings) (*kv.Collection, error) {
	if mapping == nil {
		return nil, fmt.Errorf("%w: nil mapping", ErrInvalidArgument)
	}

	res := kv.NewCollection()
	for _, key := range mapping.Keys() {
		if value := mapping[key]; value != nil {
			res.Add(key, *value)
		} else {
			res.AddNull(key)
		}
	}

	return res, nil
}

func eachMember(src any, fn func(member *introspect.MemberDescriptor, value reflect.Value)) error {
	members, err := introspect.Members(src)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(src)
	for _, member := range members {
		value, err := member.Read(v)
		if err != nil {
			return err
		}
		fn(member, value)
	}

	return nil
}

func isAbsent(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}

	return false
}

var std = New()

func ToMapping(src any) (kv.Mapping, error) {
	return std.ToMapping(src)
}

func ToTypedMapping[V any](src any) (map[string]V, error) {
	return ToTypedMappingWith[V](std, src)
}

func ToStringMapping(src any) (kv.Strings, error) {
	return std.ToStringMapping(src)
}

func ToCollection(src any) (*kv.Collection, error) {
	return std.ToCollection(src)
}

func FromMapping(mapping kv.Mapping) (any, error) {
	return std.FromMapping(mapping)
}
