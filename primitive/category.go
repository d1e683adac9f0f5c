package primitive

import (
	"fmt"
	"strings"

	"reflex/internal/common"
)

type CategoryEnum int

type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss, overflow is still an error
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: zero is false, anything else is true
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum: textual representation of an enum type (TextUnmarshaler/String/IsValid methods)
	CategorySafeArray                             // slice -> array: slice perfectly fits into an array
	CategoryUnsafeArray                           // slice -> array: longer slices are cut, shorter leave zero values

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

var categoryNames = []struct {
	category CategoryEnum
	name     string
}{
	{CategorySafeNumber, "safe_number"},
	{CategoryUnsafeNumber, "unsafe_number"},
	{CategoryTextNumber, "text_number"},
	{CategoryNumericBool, "numeric_bool"},
	{CategoryTextualBool, "textual_bool"},
	{CategoryDatetime, "datetime"},
	{CategoryTimestamp, "timestamp"},
	{CategoryDuration, "duration"},
	{CategoryNanoseconds, "nanoseconds"},
	{CategorySeconds, "seconds"},
	{CategoryEnumString, "enum_string"},
	{CategorySafeArray, "safe_array"},
	{CategoryUnsafeArray, "unsafe_array"},
}

// String returns the configuration name of a single category, or a "|" joined
// list for combined sets.
func (c CategoryEnum) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryAll:
		return "all"
	}

	var parts []string
	for _, entry := range categoryNames {
		if c&entry.category != 0 {
			parts = append(parts, entry.name)
		}
	}

	if len(parts) == 0 {
		return common.UnknownStr
	}

	return strings.Join(parts, "|")
}

// ParseCategory resolves a configuration name (as produced by String) into a category.
func ParseCategory(name string) (CategoryEnum, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "all":
		return CategoryAll, nil
	case "none":
		return CategoryNone, nil
	}

	for _, entry := range categoryNames {
		if entry.name == name {
			return entry.category, nil
		}
	}

	return CategoryNone, fmt.Errorf("%w: unknown conversion category %q", common.ErrInvalidArgument, name)
}

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	conversionPairs[CategorySafeNumber] = safeNumberConversionPairs()

	conversionPairs[CategoryUnsafeNumber] = map[ConversionPair]struct{}{}
	eachKind(KindEnum.IsNumber, func(fromKind KindEnum) {
		eachKind(KindEnum.IsNumber, func(toKind KindEnum) {
			pair := ConversionPair{fromKind, toKind}
			if _, ok := conversionPairs[CategorySafeNumber][pair]; !ok {
				conversionPairs[CategoryUnsafeNumber][pair] = struct{}{}
			}
		})
	})

	conversionPairs[CategoryTextNumber] = symmetricPairs(KindEnum.IsNumber, KindString)
	conversionPairs[CategoryNumericBool] = symmetricPairs(KindEnum.IsInteger, KindBool)

	conversionPairs[CategoryTextualBool] = map[ConversionPair]struct{}{
		{KindString, KindBool}: {},
		{KindBool, KindString}: {},
	}

	conversionPairs[CategoryDatetime] = map[ConversionPair]struct{}{
		{KindString, KindTime}: {},
		{KindTime, KindString}: {},
	}

	conversionPairs[CategoryTimestamp] = symmetricPairs(KindEnum.IsInteger, KindTime)

	conversionPairs[CategoryDuration] = map[ConversionPair]struct{}{
		{KindString, KindDuration}: {},
		{KindDuration, KindString}: {},
	}

	// uint64 nanoseconds do not fit into time.Duration
	conversionPairs[CategoryNanoseconds] = symmetricPairs(func(k KindEnum) bool {
		return k.IsInteger() && k != KindUint64
	}, KindDuration)

	conversionPairs[CategorySeconds] = symmetricPairs(KindEnum.IsFloat, KindDuration)

	conversionPairs[CategoryEnumString] = map[ConversionPair]struct{}{
		{KindString, KindPrimitiveEnum}:        {},
		{KindPrimitiveEnum, KindString}:        {},
		{KindPrimitiveEnum, KindPrimitiveEnum}: {},
	}
}

// CategoryOf returns the category a conversion pair belongs to, or CategoryNone
// when the pair is not a known primitive conversion.
func CategoryOf(pair ConversionPair) CategoryEnum {
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if _, ok := conversionPairs[category][pair]; ok {
			return category
		}
	}

	return CategoryNone
}

func eachKind(pred func(KindEnum) bool, fn func(KindEnum)) {
	for kind := KindEnum(1); int(kind) < KindTotal; kind++ {
		if pred(kind) {
			fn(kind)
		}
	}
}

func symmetricPairs(pred func(KindEnum) bool, other KindEnum) map[ConversionPair]struct{} {
	res := map[ConversionPair]struct{}{}
	eachKind(pred, func(kind KindEnum) {
		res[ConversionPair{kind, other}] = struct{}{}
		res[ConversionPair{other, kind}] = struct{}{}
	})

	return res
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	return map[ConversionPair]struct{}{
		{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
		{KindInt, KindInt64}: {},

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt8}:    {},
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt16}:   {},
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt32}:   {},
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindInt64, KindInt64}: {},

		{KindUint, KindUint}:   {},
		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {},
		{KindUint8, KindUint8}:   {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {},
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint16}:  {},
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {},
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint32}:  {},
		{KindUint32, KindUint64}:  {},
		{KindUint32, KindInt64}:   {}, // only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {},

		{KindUint64, KindUint64}: {},

		{KindFloat32, KindFloat32}: {},
		{KindFloat32, KindFloat64}: {},

		{KindFloat64, KindFloat64}: {},
	}
}
