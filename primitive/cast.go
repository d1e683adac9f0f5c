package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"reflex/internal/common"
	"reflex/utils"
)

// Options tune textual primitive conversions.
type Options struct {
	// Allowed is the set of categories a cast may use.
	Allowed CategoryEnum
	// TimeLayouts are tried in order when parsing time.Time, the first one is used for formatting.
	TimeLayouts []string
	// TrueWords and FalseWords are matched case-insensitively when parsing booleans.
	TrueWords  []string
	FalseWords []string
}

// DefaultOptions allows every category and parses RFC 3339 timestamps.
func DefaultOptions() Options {
	return Options{
		Allowed:     CategoryAll,
		TimeLayouts: []string{time.RFC3339Nano, time.DateTime, time.DateOnly},
		TrueWords:   []string{"true", "yes", "on"},
		FalseWords:  []string{"false", "no", "off"},
	}
}

type caster func(src reflect.Value, dst reflect.Type, opts *Options) (reflect.Value, error)

type validator interface {
	IsValid() bool
}

var (
	casters map[CategoryEnum]caster

	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
	validatorType       = reflect.TypeFor[validator]()
)

func init() {
	casters = map[CategoryEnum]caster{
		CategorySafeNumber:   castNumber,
		CategoryUnsafeNumber: castNumber,
		CategoryTextNumber:   castTextNumber,
		CategoryNumericBool:  castNumericBool,
		CategoryTextualBool:  castTextualBool,
		CategoryDatetime:     castDatetime,
		CategoryTimestamp:    castTimestamp,
		CategoryDuration:     castDuration,
		CategoryNanoseconds:  castNanoseconds,
		CategorySeconds:      castSeconds,
		CategoryEnumString:   castEnumString,
	}
}

// IsPrimitive reports whether rtype takes part in primitive casts.
func IsPrimitive(rtype reflect.Type) bool {
	return FromReflectType(rtype) != 0
}

// Cast converts src into a value of type dst when both sides are primitive kinds
// and the conversion pair belongs to one of the allowed categories.
// Malformed text yields an error wrapping common.ErrFormat, anything else that
// cannot be represented in dst yields an error wrapping common.ErrInvalidCast.
func Cast(src reflect.Value, dst reflect.Type, opts Options) (reflect.Value, error) {
	if !src.IsValid() || dst == nil {
		return reflect.Value{}, fmt.Errorf("%w: cast of invalid value or to nil type", common.ErrInvalidCast)
	}

	pair := ConversionPair{FromReflectType(src.Type()), FromReflectType(dst)}
	if pair.From == 0 || pair.To == 0 {
		return reflect.Value{}, invalidCast(src.Type(), dst, "not a primitive type")
	}

	category := CategoryOf(pair)
	if category == CategoryNone {
		// named numbers and booleans fall back to their underlying representation
		pair = ConversionPair{baseOf(src.Type(), pair.From), baseOf(dst, pair.To)}
		category = CategoryOf(pair)
	}

	if category == CategoryNone {
		return reflect.Value{}, invalidCast(src.Type(), dst, "no conversion between "+pair.From.String()+" and "+pair.To.String())
	}

	if opts.Allowed&category == 0 {
		return reflect.Value{}, invalidCast(src.Type(), dst, "category "+category.String()+" is not allowed")
	}

	return casters[category](src, dst, &opts)
}

func baseOf(rtype reflect.Type, kind KindEnum) KindEnum {
	if kind != KindPrimitiveEnum {
		return kind
	}

	return Base(rtype)
}

func invalidCast(src, dst reflect.Type, reason string) error {
	return fmt.Errorf("%w: %s to %s: %s", common.ErrInvalidCast, common.TypeName(src), common.TypeName(dst), reason)
}

func formatError(text string, dst reflect.Type, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %q is not a valid %s: %v", common.ErrFormat, text, common.TypeName(dst), cause)
	}

	return fmt.Errorf("%w: %q is not a valid %s", common.ErrFormat, text, common.TypeName(dst))
}

func overflowError(value any, dst reflect.Type) error {
	return fmt.Errorf("%w: %v overflows %s", common.ErrInvalidCast, value, common.TypeName(dst))
}

func castNumber(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	var err error
	switch {
	case src.CanInt():
		err = setInt(out, src.Int())
	case src.CanUint():
		err = setUint(out, src.Uint())
	case src.CanFloat():
		err = setFloat(out, src.Float())
	default:
		err = invalidCast(src.Type(), dst, "source is not a number")
	}

	return out, err
}

func setInt(out reflect.Value, i int64) error {
	switch {
	case out.CanInt():
		if out.OverflowInt(i) {
			return overflowError(i, out.Type())
		}
		out.SetInt(i)
	case out.CanUint():
		if i < 0 || out.OverflowUint(uint64(i)) {
			return overflowError(i, out.Type())
		}
		out.SetUint(uint64(i))
	case out.CanFloat():
		out.SetFloat(float64(i))
	default:
		return invalidCast(reflect.TypeFor[int64](), out.Type(), "target is not a number")
	}

	return nil
}

func setUint(out reflect.Value, u uint64) error {
	switch {
	case out.CanInt():
		if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
			return overflowError(u, out.Type())
		}
		out.SetInt(int64(u))
	case out.CanUint():
		if out.OverflowUint(u) {
			return overflowError(u, out.Type())
		}
		out.SetUint(u)
	case out.CanFloat():
		out.SetFloat(float64(u))
	default:
		return invalidCast(reflect.TypeFor[uint64](), out.Type(), "target is not a number")
	}

	return nil
}

// setFloat rounds half to even when the target is an integer.
func setFloat(out reflect.Value, f float64) error {
	if out.CanFloat() {
		if utils.IsFinite(f) && out.OverflowFloat(f) {
			return overflowError(f, out.Type())
		}
		out.SetFloat(f)

		return nil
	}

	if !utils.IsFinite(f) {
		return overflowError(f, out.Type())
	}

	r := math.RoundToEven(f)
	switch {
	case out.CanInt():
		if r < -0x1p63 || r >= 0x1p63 {
			return overflowError(f, out.Type())
		}
		return setInt(out, int64(r))
	case out.CanUint():
		if r < 0 || r >= 0x1p64 {
			return overflowError(f, out.Type())
		}
		return setUint(out, uint64(r))
	default:
		return invalidCast(reflect.TypeFor[float64](), out.Type(), "target is not a number")
	}
}

func castTextNumber(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	if src.Kind() != reflect.String {
		return reflect.ValueOf(formatNumber(src)).Convert(dst), nil
	}

	text := strings.TrimSpace(src.String())
	out := reflect.New(dst).Elem()

	switch {
	case out.CanInt():
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return out, numberError(text, dst, err)
		}
		return out, setInt(out, i)
	case out.CanUint():
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return out, numberError(text, dst, err)
		}
		return out, setUint(out, u)
	default:
		f, err := strconv.ParseFloat(text, dst.Bits())
		if err != nil {
			return out, numberError(text, dst, err)
		}
		out.SetFloat(f)
		return out, nil
	}
}

// numberError tells an out-of-range number apart from malformed text.
func numberError(text string, dst reflect.Type, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return overflowError(text, dst)
	}

	return formatError(text, dst, nil)
}

func formatNumber(src reflect.Value) string {
	switch {
	case src.CanInt():
		return strconv.FormatInt(src.Int(), 10)
	case src.CanUint():
		return strconv.FormatUint(src.Uint(), 10)
	default:
		return strconv.FormatFloat(src.Float(), 'f', -1, src.Type().Bits())
	}
}

func castNumericBool(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	if src.Kind() == reflect.Bool {
		var i int64
		if src.Bool() {
			i = 1
		}
		return out, setInt(out, i)
	}

	switch {
	case src.CanInt():
		out.SetBool(src.Int() != 0)
	default:
		out.SetBool(src.Uint() != 0)
	}

	return out, nil
}

func castTextualBool(src reflect.Value, dst reflect.Type, opts *Options) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	if src.Kind() == reflect.Bool {
		out.SetString(strconv.FormatBool(src.Bool()))
		return out, nil
	}

	b, err := parseBool(src.String(), opts)
	if err != nil {
		return out, formatError(src.String(), dst, nil)
	}
	out.SetBool(b)

	return out, nil
}

func parseBool(text string, opts *Options) (bool, error) {
	word := strings.ToLower(strings.TrimSpace(text))

	switch {
	case slices.Contains(opts.TrueWords, word):
		return true, nil
	case slices.Contains(opts.FalseWords, word):
		return false, nil
	}

	return strconv.ParseBool(word)
}

func castDatetime(src reflect.Value, dst reflect.Type, opts *Options) (reflect.Value, error) {
	layouts := opts.TimeLayouts
	if len(layouts) == 0 {
		layouts = []string{time.RFC3339Nano}
	}

	if t, ok := src.Interface().(time.Time); ok {
		return reflect.ValueOf(t.Format(layouts[0])).Convert(dst), nil
	}

	text := strings.TrimSpace(src.String())
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return reflect.ValueOf(t), nil
		}
	}

	return reflect.New(dst).Elem(), formatError(text, dst, nil)
}

func castTimestamp(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	if t, ok := src.Interface().(time.Time); ok {
		return out, setInt(out, t.Unix())
	}

	var seconds int64
	switch {
	case src.CanInt():
		seconds = src.Int()
	default:
		if src.Uint() > math.MaxInt64 {
			return out, overflowError(src.Uint(), dst)
		}
		seconds = int64(src.Uint())
	}

	return reflect.ValueOf(time.Unix(seconds, 0).UTC()), nil
}

func castDuration(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	if d, ok := src.Interface().(time.Duration); ok {
		return reflect.ValueOf(d.String()).Convert(dst), nil
	}

	text := strings.TrimSpace(src.String())
	d, err := time.ParseDuration(text)
	if err != nil {
		return reflect.New(dst).Elem(), formatError(text, dst, err)
	}

	return reflect.ValueOf(d), nil
}

func castNanoseconds(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	if d, ok := src.Interface().(time.Duration); ok {
		return out, setInt(out, d.Nanoseconds())
	}

	if src.CanInt() {
		return out, setInt(out, src.Int())
	}

	return out, setUint(out, src.Uint())
}

func castSeconds(src reflect.Value, dst reflect.Type, _ *Options) (reflect.Value, error) {
	out := reflect.New(dst).Elem()

	if d, ok := src.Interface().(time.Duration); ok {
		out.SetFloat(d.Seconds())
		return out, nil
	}

	return out, setFloat(out, src.Float()*float64(time.Second))
}

func castEnumString(src reflect.Value, dst reflect.Type, opts *Options) (reflect.Value, error) {
	if FromReflectType(src.Type()) == KindPrimitiveEnum {
		text, err := enumText(src)
		if err != nil {
			return reflect.New(dst).Elem(), err
		}

		if dst.Kind() == reflect.String && FromReflectType(dst) == KindString {
			return reflect.ValueOf(text).Convert(dst), nil
		}

		// enum to enum goes through the textual form
		src = reflect.ValueOf(text)
	}

	return parseEnum(src.String(), dst, opts)
}

func enumText(src reflect.Value) (string, error) {
	switch {
	case src.Type().Implements(textMarshalerType):
		b, err := src.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrInvalidCast, err)
		}
		return string(b), nil
	case src.Type().Implements(stringerType):
		return src.Interface().(fmt.Stringer).String(), nil
	case src.Kind() == reflect.String:
		return src.String(), nil
	case src.Kind() == reflect.Bool:
		return strconv.FormatBool(src.Bool()), nil
	default:
		return formatNumber(src), nil
	}
}

func parseEnum(text string, dst reflect.Type, opts *Options) (reflect.Value, error) {
	ptr := reflect.New(dst)
	out := ptr.Elem()

	if ptr.Type().Implements(textUnmarshalerType) {
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return out, formatError(text, dst, err)
		}
		return out, nil
	}

	trimmed := strings.TrimSpace(text)
	switch {
	case dst.Kind() == reflect.String:
		out.SetString(text)
	case dst.Kind() == reflect.Bool:
		b, err := parseBool(trimmed, opts)
		if err != nil {
			return out, formatError(text, dst, nil)
		}
		out.SetBool(b)
	case out.CanInt():
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return out, numberError(text, dst, err)
		}
		if err = setInt(out, i); err != nil {
			return out, err
		}
	default:
		u, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return out, numberError(text, dst, err)
		}
		if err = setUint(out, u); err != nil {
			return out, err
		}
	}

	if dst.Implements(validatorType) && !out.Interface().(validator).IsValid() {
		return out, formatError(text, dst, nil)
	}

	return out, nil
}
