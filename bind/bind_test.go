package bind_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflex/bind"
	"reflex/internal/stubs"
	"reflex/introspect"
)

func method(t *testing.T, obj any, name string, f introspect.Filter) *introspect.MethodDescriptor {
	t.Helper()

	m, err := introspect.MethodWith(obj, name, f)
	require.NoError(t, err)
	require.NotNil(t, m, name)

	return m
}

func ExampleBind() {
	m, _ := introspect.Method(&stubs.Bar{}, "SayHello")

	hello, err := bind.Bind(m, &stubs.Bar{})
	if err != nil {
		panic(err)
	}

	res, _ := hello.Call("Ada")
	fmt.Println(res[0])

	fn := hello.Func().Interface().(func(string) string)
	fmt.Println(fn("Grace"))

	// Output:
	// Hello Ada
	// Hello Grace
}

func TestBindReceiver(t *testing.T) {
	t.Parallel()

	m := method(t, &stubs.Bar{}, "SayGoodbye", introspect.Lookup)

	bound, err := bind.Bind(m, &stubs.Bar{})
	require.NoError(t, err)
	assert.True(t, bound.Bound())
	assert.Equal(t, []reflect.Type{reflect.TypeFor[string]()}, bound.In())
	assert.Equal(t, []reflect.Type{reflect.TypeFor[string]()}, bound.Out())
	assert.Same(t, m, bound.Method())

	unbound, err := bind.Bind(m, nil)
	require.NoError(t, err)
	assert.False(t, unbound.Bound())
	assert.Equal(t, []reflect.Type{reflect.TypeFor[*stubs.Bar](), reflect.TypeFor[string]()}, unbound.In())
	assert.Equal(t, "func(*stubs.Bar, string) string", unbound.String())

	res, err := unbound.Call(&stubs.Bar{}, "Bob")
	require.NoError(t, err)
	assert.Equal(t, []any{"Goodbye Bob"}, res)

	_, err = bind.Bind(m, stubs.Foo{})
	require.ErrorIs(t, err, bind.ErrInvalidArgument)

	_, err = bind.Bind(m, (*stubs.Bar)(nil))
	require.ErrorIs(t, err, bind.ErrInvalidArgument)

	_, err = bind.Bind(nil, &stubs.Bar{})
	require.ErrorIs(t, err, bind.ErrInvalidArgument)
}

func TestBindValueReceiver(t *testing.T) {
	t.Parallel()

	calc := stubs.Calculator{Factor: 2}
	reset, err := bind.Bind(method(t, &calc, "Reset", introspect.Lookup), calc)
	require.NoError(t, err)

	_, err = reset.Call()
	require.NoError(t, err)
	assert.Equal(t, 2.0, calc.Factor)

	reset, err = bind.Bind(method(t, &calc, "Reset", introspect.Lookup), &calc)
	require.NoError(t, err)

	_, err = reset.Call()
	require.NoError(t, err)
	assert.Zero(t, calc.Factor)
}

func TestBindStatic(t *testing.T) {
	t.Parallel()

	m := method(t, &stubs.Bar{}, "StaticHello", introspect.Public|introspect.Static)

	static, err := bind.Bind(m, nil)
	require.NoError(t, err)
	assert.False(t, static.Bound())

	res, err := static.Call("Bee")
	require.NoError(t, err)
	assert.Equal(t, []any{"Bzz... Bee"}, res)

	_, err = bind.Bind(m, &stubs.Bar{})
	require.ErrorIs(t, err, bind.ErrInvalidArgument)
}

func TestBindNonPublic(t *testing.T) {
	t.Parallel()

	m := method(t, &stubs.Bar{}, "sayHi", introspect.NonPublic|introspect.Instance)

	hi, err := bind.Bind(m, stubs.Bar{})
	require.NoError(t, err)

	fn := hi.Func().Interface().(func(string) string)
	assert.Equal(t, "Hi there", fn("there"))
}

func TestCall(t *testing.T) {
	t.Parallel()

	calc := &stubs.Calculator{Factor: 1.5}

	divide, err := bind.Bind(method(t, calc, "Divide", introspect.Lookup), calc)
	require.NoError(t, err)

	res, err := divide.Call(7, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{3}, res)

	_, err = divide.Call(1, 0)
	assert.Equal(t, stubs.ErrDivideByZero, err)

	fn := divide.Func().Interface().(func(int, int) (int, error))
	_, err = fn(1, 0)
	assert.Equal(t, stubs.ErrDivideByZero, err)

	tests := []struct {
		name string
		args []any
	}{
		{"too few", []any{1}},
		{"too many", []any{1, 2, 3}},
		{"wrong type", []any{1, "2"}},
		{"nil value", []any{nil, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := divide.Call(tt.args...)
			require.ErrorIs(t, err, bind.ErrInvalidArgument)
		})
	}
}

func TestCallVariadic(t *testing.T) {
	t.Parallel()

	calc := &stubs.Calculator{}
	sum, err := bind.Bind(method(t, calc, "Sum", introspect.Lookup), calc)
	require.NoError(t, err)

	res, err := sum.Call("total: ", 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{"total: 6"}, res)

	res, err = sum.Call("none: ")
	require.NoError(t, err)
	assert.Equal(t, []any{"none: 0"}, res)

	_, err = sum.Call("bad: ", 1, "2")
	require.ErrorIs(t, err, bind.ErrInvalidArgument)

	fn := sum.Func().Interface().(func(string, ...int) string)
	assert.Equal(t, "x5", fn("x", 2, 3))
}

func TestCallPanics(t *testing.T) {
	t.Parallel()

	calc := &stubs.Calculator{}
	explode, err := bind.Bind(method(t, calc, "Explode", introspect.Lookup), calc)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = explode.Call()
	})
}
