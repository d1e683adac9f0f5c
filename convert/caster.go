package convert

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"reflex/utils"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
)

var errorType = reflect.TypeFor[error]()

// Caster is a user supplied conversion function between two exact types.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster if it is a valid caster function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
//
// A false bool or a non-nil error rejects the value.
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src, dst := fnType.In(0), fnType.Out(0)
	if srcDepth, _ := ptrDepthAndBase(src); srcDepth > 1 {
		return Caster{}, ErrDoublePointer
	}
	if dstDepth, _ := ptrDepthAndBase(dst); dstDepth > 1 {
		return Caster{}, ErrDoublePointer
	}

	caster := Caster{Src: src, Dst: dst, fn: fnVal}
	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		alias, name := utils.Unpack2(strings.SplitN(utils.Second(path.Split(fnPC.Name())), ".", 2))
		caster.PackageAlias, caster.Name = alias, name
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true
		return caster, nil
	}
}

func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

func (c Caster) call(src reflect.Value) (reflect.Value, error) {
	if src.Type() != c.Src {
		src = src.Convert(c.Src)
	}

	out := c.fn.Call([]reflect.Value{src})

	if c.HasErr {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return reflect.Value{}, fmt.Errorf("%w: caster %s: %w", ErrInvalidCast, c, err)
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%w: caster %s rejected the value", ErrInvalidCast, c)
	}

	return out[0], nil
}

func isError(t reflect.Type) bool {
	return t != nil && t.Implements(errorType)
}
