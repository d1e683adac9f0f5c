// Package bind turns method descriptors into callables, optionally bound to a receiver.
package bind

import (
	"fmt"
	"reflect"
	"slices"

	"reflex/internal/common"
	"reflex/introspect"
)

var ErrInvalidArgument = common.ErrInvalidArgument

// Callable invokes a method. A bound callable passes its receiver implicitly,
// an unbound instance method takes the receiver as first argument.
type Callable struct {
	method   *introspect.MethodDescriptor
	receiver reflect.Value
	deref    bool

	in  []reflect.Type
	out []reflect.Type
	fn  reflect.Value
}

// Bind wraps method into a callable. A nil receiver leaves instance methods
// unbound; static methods accept no receiver. A T receiver binds a *T method
// to an addressable copy, a *T receiver binds a T method to the pointed value.
func Bind(method *introspect.MethodDescriptor, receiver any) (*Callable, error) {
	if method == nil {
		return nil, fmt.Errorf("%w: nil method", ErrInvalidArgument)
	}

	c := &Callable{method: method, out: method.Out}

	switch {
	case receiver == nil:
		if !method.Static {
			c.in = append(c.in, method.Receiver)
		}
	case method.Static:
		return nil, fmt.Errorf("%w: static method %s takes no receiver", ErrInvalidArgument, method.Name)
	default:
		rv, deref, err := bindReceiver(method, reflect.ValueOf(receiver))
		if err != nil {
			return nil, err
		}
		c.receiver, c.deref = rv, deref
	}

	c.in = append(c.in, method.In...)
	c.fn = reflect.MakeFunc(reflect.FuncOf(c.in, c.out, method.Variadic), c.invoke)

	return c, nil
}

func bindReceiver(method *introspect.MethodDescriptor, rv reflect.Value) (reflect.Value, bool, error) {
	want := method.Receiver

	switch {
	case rv.Type() == want:
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return reflect.Value{}, false, fmt.Errorf("%w: nil receiver for %s", ErrInvalidArgument, method.Name)
		}
		return rv, false, nil
	case want.Kind() == reflect.Pointer && rv.Type() == want.Elem():
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return ptr, false, nil
	case rv.Kind() == reflect.Pointer && rv.Type().Elem() == want:
		if rv.IsNil() {
			return reflect.Value{}, false, fmt.Errorf("%w: nil receiver for %s", ErrInvalidArgument, method.Name)
		}
		return rv, true, nil
	}

	return reflect.Value{}, false, fmt.Errorf("%w: %s needs a %s receiver, got %s", ErrInvalidArgument,
		method.Name, common.TypeName(want), common.TypeName(rv.Type()))
}

func (c *Callable) invoke(args []reflect.Value) []reflect.Value {
	if c.receiver.IsValid() {
		recv := c.receiver
		if c.deref {
			recv = recv.Elem()
		}
		args = append([]reflect.Value{recv}, args...)
	}

	if c.method.Variadic {
		return c.method.Func().CallSlice(args)
	}

	return c.method.Func().Call(args)
}

// Call invokes the method with args, nil stands for the zero value of a
// reference parameter. It returns the results without a trailing error, which
// is returned as the error unchanged. Panics of the method propagate.
func (c *Callable) Call(args ...any) ([]any, error) {
	values, err := c.arguments(args)
	if err != nil {
		return nil, err
	}

	out := c.fn.Call(values)

	var callErr error
	if c.method.ReturnsErr() {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		callErr, _ = last.Interface().(error)
	}

	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}

	return res, callErr
}

func (c *Callable) arguments(args []any) ([]reflect.Value, error) {
	fixed := len(c.in)
	if c.method.Variadic {
		fixed--
	}

	if len(args) < fixed || (!c.method.Variadic && len(args) > fixed) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArgument, c.method.Name, len(c.in), len(args))
	}

	values := make([]reflect.Value, len(args))
	for i, arg := range args {
		param := c.paramType(i)
		v, err := argument(arg, param)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, c.method.Name, err)
		}
		values[i] = v
	}

	return values, nil
}

func (c *Callable) paramType(i int) reflect.Type {
	if c.method.Variadic && i >= len(c.in)-1 {
		return c.in[len(c.in)-1].Elem()
	}

	return c.in[i]
}

func argument(arg any, param reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch param.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(param), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil for %s", ErrInvalidArgument, common.TypeName(param))
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(param) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrInvalidArgument,
			common.TypeName(v.Type()), common.TypeName(param))
	}

	return v, nil
}

// Func returns a function value of the callable's own signature, e.g. a bound
// (*Bar).SayHello is a func(string) string.
func (c *Callable) Func() reflect.Value {
	return c.fn
}

// In lists the parameters, including the receiver of an unbound instance method.
func (c *Callable) In() []reflect.Type {
	return slices.Clone(c.in)
}

func (c *Callable) Out() []reflect.Type {
	return slices.Clone(c.out)
}

// Bound reports whether the callable carries a receiver.
func (c *Callable) Bound() bool {
	return c.receiver.IsValid()
}

func (c *Callable) Method() *introspect.MethodDescriptor {
	return c.method
}

func (c *Callable) String() string {
	return c.fn.Type().String()
}
