package synth

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"github.com/viant/x"

	"reflex/internal/common"
	"reflex/internal/match"
	"reflex/introspect"
	"reflex/kv"
	"reflex/options"
)

var (
	ErrInvalidArgument = common.ErrInvalidArgument
	ErrUnknownKey      = common.ErrUnknownKey
	ErrTypeMismatch    = common.ErrTypeMismatch
)

var anyType = reflect.TypeFor[any]()

// Synthesizer defines struct types from mappings. It keeps no state between
// calls apart from the optional registry, which is safe for concurrent use.
type Synthesizer struct {
	prefix   string
	registry *x.Registry
	log      commonlog.Logger
}

type Option func(*Synthesizer)

// WithPrefix sets the prefix of synthesized type names.
func WithPrefix(prefix string) Option {
	return func(s *Synthesizer) {
		s.prefix = prefix
	}
}

// WithRegistry records every synthesized type in registry.
func WithRegistry(registry *x.Registry) Option {
	return func(s *Synthesizer) {
		s.registry = registry
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(s *Synthesizer) {
		s.log = log
	}
}

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		prefix: options.DefaultTypePrefix,
		log:    commonlog.GetLogger("reflex.synth"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FromConfig applies the type prefix and registry settings of cfg.
func FromConfig(cfg *options.Config, opts ...Option) *Synthesizer {
	base := []Option{WithPrefix(cfg.TypePrefix)}
	if cfg.Registry {
		base = append(base, WithRegistry(x.NewRegistry()))
	}

	return New(append(base, opts...)...)
}

// Registry returns the registry synthesized types are recorded in, nil when disabled.
func (s *Synthesizer) Registry() *x.Registry {
	return s.registry
}

// Define builds a new struct type with one field per key of mapping, in key
// order. A field takes the runtime type of its value, nil values give an any field.
func (s *Synthesizer) Define(mapping kv.Mapping) (*Type, error) {
	if mapping == nil {
		return nil, fmt.Errorf("%w: nil mapping", ErrInvalidArgument)
	}

	t := &Type{
		name:   s.prefix + strings.ReplaceAll(uuid.NewString(), "-", ""),
		keys:   mapping.Keys(),
		fields: make(map[string]field, len(mapping)),
	}

	fields := make([]reflect.StructField, 0, len(mapping)+1)
	fields = append(fields, reflect.StructField{
		Name: markerField,
		Type: reflect.TypeFor[struct{}](),
		Tag:  reflect.StructTag(fmt.Sprintf(`%s:"-" json:"-" yaml:"-" %s:%q`, introspect.TagName, common.NameTag, t.name)),
	})

	used := map[string]bool{markerField: true}
	for _, key := range t.keys {
		if key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidArgument)
		}

		typ := anyType
		if value := mapping[key]; value != nil {
			typ = reflect.TypeOf(value)
		}

		name := uniqueIdent(match.ExportedIdent(key), used)
		t.fields[key] = field{index: len(fields), typ: typ}
		fields = append(fields, reflect.StructField{
			Name: name,
			Type: typ,
			Tag:  reflect.StructTag(fmt.Sprintf(`%s:%q json:%q yaml:%q`, introspect.TagName, key, key, key)),
		})
	}

	t.rtype = reflect.StructOf(fields)
	if s.registry != nil {
		s.registry.Register(x.NewType(t.rtype))
	}

	s.log.Debugf("synthesized %s with %d fields", t.name, len(t.keys))

	return t, nil
}

// Synthesize defines a type from mapping and returns an instance holding its values.
func (s *Synthesizer) Synthesize(mapping kv.Mapping) (*Object, error) {
	t, err := s.Define(mapping)
	if err != nil {
		return nil, err
	}

	obj := t.New()
	for _, key := range t.keys {
		if err = obj.Set(key, mapping[key]); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// uniqueIdent suffixes name with a counter until it is unused.
func uniqueIdent(name string, used map[string]bool) string {
	res := name
	for n := 2; used[res]; n++ {
		res = name + strconv.Itoa(n)
	}
	used[res] = true

	return res
}

var std = New()

func Define(mapping kv.Mapping) (*Type, error) {
	return std.Define(mapping)
}

func Synthesize(mapping kv.Mapping) (*Object, error) {
	return std.Synthesize(mapping)
}
