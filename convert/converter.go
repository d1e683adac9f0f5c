package convert

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"reflex/internal/common"
	"reflex/options"
	"reflex/primitive"
)

var (
	ErrInvalidArgument = common.ErrInvalidArgument
	ErrFormat          = common.ErrFormat
	ErrInvalidCast     = common.ErrInvalidCast
)

var log = commonlog.GetLogger("reflex.convert")

// Converter converts values under a fixed set of options. It is immutable
// and safe for concurrent use.
type Converter struct {
	opts    primitive.Options
	casters map[[2]reflect.Type]Caster
}

type Option func(*Converter) error

// WithOptions replaces all primitive cast options at once.
func WithOptions(opts primitive.Options) Option {
	return func(c *Converter) error {
		c.opts = opts
		return nil
	}
}

// WithCategories restricts primitive conversions to the given categories.
func WithCategories(allowed primitive.CategoryEnum) Option {
	return func(c *Converter) error {
		c.opts.Allowed = allowed
		return nil
	}
}

// WithTimeLayouts sets the layouts tried, in order, when parsing time.Time from text.
func WithTimeLayouts(layouts ...string) Option {
	return func(c *Converter) error {
		if len(layouts) == 0 {
			return fmt.Errorf("%w: no time layouts", ErrInvalidArgument)
		}
		c.opts.TimeLayouts = layouts
		return nil
	}
}

// WithBoolWords sets the words accepted as true and false, compared case-insensitively.
func WithBoolWords(trueWords, falseWords []string) Option {
	return func(c *Converter) error {
		lower := func(words []string) []string {
			res := make([]string, len(words))
			for i, word := range words {
				res[i] = strings.ToLower(word)
			}
			return res
		}

		c.opts.TrueWords, c.opts.FalseWords = lower(trueWords), lower(falseWords)
		return nil
	}
}

// WithCaster registers a custom caster, see ParseCaster for the accepted signatures.
// A caster is consulted before any built-in conversion of its exact type pair.
func WithCaster(fn any) Option {
	return func(c *Converter) error {
		caster, err := ParseCaster(fn)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		c.casters[[2]reflect.Type{caster.Src, caster.Dst}] = caster
		return nil
	}
}

func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		opts:    primitive.DefaultOptions(),
		casters: make(map[[2]reflect.Type]Caster),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// FromConfig builds a converter from the configuration file settings.
func FromConfig(cfg *options.Config, opts ...Option) (*Converter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidArgument)
	}

	castOpts, err := cfg.CastOptions()
	if err != nil {
		return nil, err
	}

	return New(append([]Option{WithOptions(castOpts)}, opts...)...)
}

// Options returns a copy of the primitive cast options.
func (c *Converter) Options() primitive.Options {
	return c.opts
}

// Value converts value into a value of type t and reports why it could not.
// An invalid value converts to the zero value of t.
func (c *Converter) Value(value reflect.Value, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil target type", ErrInvalidArgument)
	}

	return c.convert(value, t, newDealer())
}

// Coerce is the permissive form of Value: a failed conversion yields the zero value of t.
func (c *Converter) Coerce(value reflect.Value, t reflect.Type) reflect.Value {
	res, err := c.Value(value, t)
	if err != nil {
		log.Debugf("conversion to %s swallowed: %s", common.TypeName(t), err)
		return reflect.Zero(t)
	}

	return res
}

// ToType converts value into type t, failed conversions yield the zero value of t.
// The only error is a nil t.
func (c *Converter) ToType(t reflect.Type, value any) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil target type", ErrInvalidArgument)
	}

	return c.Coerce(reflect.ValueOf(value), t).Interface(), nil
}

// ToString renders value as text. Absent values (nil, nil pointers) report false.
func (c *Converter) ToString(value any) (string, bool) {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	if !v.IsValid() {
		return "", false
	}

	if v.Kind() == reflect.String {
		return v.String(), true
	}

	res, err := c.Value(v, stringType)
	if err != nil {
		log.Debugf("formatting %s as text: %s", common.TypeName(v.Type()), err)
		return fmt.Sprint(v.Interface()), true
	}

	return res.String(), true
}

// ToWith is the generic form of (*Converter).ToType.
func ToWith[T any](c *Converter, value any) T {
	res := c.Coerce(reflect.ValueOf(value), reflect.TypeFor[T]())

	typed, _ := res.Interface().(T)
	return typed
}

var defaultConverter atomic.Pointer[Converter]

func init() {
	c, _ := New()
	defaultConverter.Store(c)
}

// Default returns the converter used by the package-level functions.
func Default() *Converter {
	return defaultConverter.Load()
}

// SetDefault replaces the converter used by the package-level functions.
func SetDefault(c *Converter) {
	if c != nil {
		defaultConverter.Store(c)
	}
}

// Configure replaces the default converter with one built from cfg.
func Configure(cfg *options.Config) error {
	c, err := FromConfig(cfg)
	if err != nil {
		return err
	}

	SetDefault(c)
	return nil
}

// To converts value into T with the default converter, failed conversions yield the zero value of T.
func To[T any](value any) T {
	return ToWith[T](Default(), value)
}

func ToType(t reflect.Type, value any) (any, error) {
	return Default().ToType(t, value)
}

func Value(value reflect.Value, t reflect.Type) (reflect.Value, error) {
	return Default().Value(value, t)
}

func Coerce(value reflect.Value, t reflect.Type) reflect.Value {
	return Default().Coerce(value, t)
}

func ToString(value any) (string, bool) {
	return Default().ToString(value)
}
