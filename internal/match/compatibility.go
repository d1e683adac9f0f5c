package match

import (
	"encoding"
	"fmt"
	"reflect"

	"reflex/internal/common"
	"reflex/primitive"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be converted.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means conversion requires a converter (parsing, dereference, element-wise copy).
	TypeNeedsTransform
	// TypeConvertible means types are convertible using Go's type conversion.
	TypeConvertible
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    reflect.Type
	TargetType    reflect.Type
}

// ScoreTypeCompatibility determines the compatibility between a source and target type.
//
// Go conversions that change the meaning of a value (integer to string yields a rune,
// not digits) are not reported as convertible, they need a transform.
func ScoreTypeCompatibility(source, target reflect.Type) TypeCompatibilityResult {
	res := TypeCompatibilityResult{SourceType: source, TargetType: target}

	switch {
	case source == nil || target == nil:
		res.Compatibility, res.Reason = TypeIncompatible, "type information unavailable"
	case source == target:
		res.Compatibility, res.Reason = TypeIdentical, "types are identical"
	case source.AssignableTo(target):
		res.Compatibility, res.Reason = TypeAssignable, "source is assignable to target"
	case isPlainConversion(source, target):
		res.Compatibility, res.Reason = TypeConvertible, "source is convertible to target"
	case needsTransform(source, target):
		res.Compatibility, res.Reason = TypeNeedsTransform, "types require a converter"
	default:
		res.Compatibility, res.Reason = TypeIncompatible, "types are not compatible"
	}

	return res
}

// isPlainConversion reports Go conversions that keep the value: same underlying
// kind, or a lossless primitive cast.
func isPlainConversion(source, target reflect.Type) bool {
	if !source.ConvertibleTo(target) {
		return false
	}

	if source.Kind() == target.Kind() {
		return true
	}

	pair := primitive.ConversionPair{From: primitive.Base(source), To: primitive.Base(target)}

	return pair.From != 0 && primitive.CategoryOf(pair) == primitive.CategorySafeNumber
}

// needsTransform checks for cases a converter can bridge.
func needsTransform(source, target reflect.Type) bool {
	// *T -> T (dereference possible if not nil)
	if source.Kind() == reflect.Pointer && target.Kind() != reflect.Pointer &&
		ScoreTypeCompatibility(source.Elem(), target).Compatibility > TypeIncompatible {
		return true
	}

	// T -> *T (take address)
	if source.Kind() != reflect.Pointer && target.Kind() == reflect.Pointer &&
		ScoreTypeCompatibility(source, target.Elem()).Compatibility > TypeIncompatible {
		return true
	}

	if primitive.IsPrimitive(source) && primitive.IsPrimitive(target) {
		pair := primitive.ConversionPair{From: primitive.FromReflectType(source), To: primitive.FromReflectType(target)}
		if primitive.CategoryOf(pair) != primitive.CategoryNone {
			return true
		}

		pair = primitive.ConversionPair{From: primitive.Base(source), To: primitive.Base(target)}

		return primitive.CategoryOf(pair) != primitive.CategoryNone
	}

	switch {
	case isSequence(source) && isSequence(target):
		return ScoreTypeCompatibility(source.Elem(), target.Elem()).Compatibility > TypeIncompatible
	case source.Kind() == reflect.Map && target.Kind() == reflect.Map:
		return ScoreTypeCompatibility(source.Key(), target.Key()).Compatibility > TypeIncompatible &&
			ScoreTypeCompatibility(source.Elem(), target.Elem()).Compatibility > TypeIncompatible
	case target.Kind() == reflect.String:
		return implementsText(source)
	case source.Kind() == reflect.String:
		return reflect.PointerTo(target).Implements(textUnmarshalerType)
	}

	return false
}

func isSequence(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

// implementsText reports types that can render themselves as text.
func implementsText(t reflect.Type) bool {
	return t.Implements(textMarshalerType) || t.Implements(stringerType)
}
