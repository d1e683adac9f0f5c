package convert

import (
	"encoding"
	"fmt"
	"reflect"

	"reflex/primitive"
)

type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherInterface
	DispatcherText
	DispatcherSlice
	DispatcherMap
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of dispatchers defined
	DispatcherTotal = int(iota)
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

// Dispatch picks the conversion strategy for two non-pointer types by the shape of dst.
func Dispatch(src, dst reflect.Type) DispatcherEnum {
	if dst.Kind() == reflect.Interface {
		return DispatcherInterface
	}

	if primitive.IsPrimitive(src) && primitive.IsPrimitive(dst) {
		return DispatcherPrimitive
	}

	if isTextPair(src, dst) {
		return DispatcherText
	}

	switch dst.Kind() {
	case reflect.Slice, reflect.Array:
		if src.Kind() == reflect.Slice || src.Kind() == reflect.Array {
			return DispatcherSlice
		}
	case reflect.Map:
		if src.Kind() == reflect.Map {
			return DispatcherMap
		}
	case reflect.Struct:
		if src.Kind() == reflect.Struct {
			return DispatcherStruct
		}
	}

	return DispatcherUnknown
}

func isTextPair(src, dst reflect.Type) bool {
	switch {
	case dst.Kind() == reflect.String:
		return src.Implements(textMarshalerType) || src.Implements(stringerType)
	case src.Kind() == reflect.String:
		return reflect.PointerTo(dst).Implements(textUnmarshalerType)
	}

	return false
}

// ptrDepthAndBase returns the pointer depth and the final base type.
func ptrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base.Kind() == reflect.Pointer {
		depth++
		base = base.Elem()
	}

	return
}
