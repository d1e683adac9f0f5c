package introspect

import (
	"fmt"
	"go/token"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"reflex/internal/common"
)

var errorType = reflect.TypeFor[error]()

// accessorPrefixes mark accessor methods, those are reached through members instead.
var accessorPrefixes = []string{"get_", "set_"}

// IsAccessor reports whether name carries an accessor prefix.
func IsAccessor(name string) bool {
	return slices.ContainsFunc(accessorPrefixes, func(prefix string) bool {
		return strings.HasPrefix(name, prefix)
	})
}

// MethodDescriptor describes a callable member of a type. It is immutable.
type MethodDescriptor struct {
	Name string
	// In lists the parameters without the receiver.
	In       []reflect.Type
	Out      []reflect.Type
	Variadic bool
	// Receiver is nil for static methods.
	Receiver   reflect.Type
	Visibility Visibility
	Origin     Origin
	Static     bool

	owner reflect.Type
	fn    reflect.Value
}

// Func returns the underlying function. Instance methods take the receiver as first argument.
func (m *MethodDescriptor) Func() reflect.Value {
	return m.fn
}

// Owner is the type the method was discovered on.
func (m *MethodDescriptor) Owner() reflect.Type {
	return m.owner
}

// ReturnsErr reports whether the last result is an error.
func (m *MethodDescriptor) ReturnsErr() bool {
	last, ok := common.Last(m.Out)

	return ok && last == errorType
}

func (m *MethodDescriptor) String() string {
	in := make([]string, len(m.In))
	for i, t := range m.In {
		in[i] = common.TypeName(t)
		if m.Variadic && i == len(m.In)-1 {
			in[i] = "..." + common.TypeName(t.Elem())
		}
	}

	out := make([]string, len(m.Out))
	for i, t := range m.Out {
		out[i] = common.TypeName(t)
	}

	res := m.Name + "(" + strings.Join(in, ", ") + ")"
	switch len(out) {
	case 0:
	case 1:
		res += " " + out[0]
	default:
		res += " (" + strings.Join(out, ", ") + ")"
	}

	return res
}

func newMethodDescriptor(owner reflect.Type, name string, fn reflect.Value, static bool, origin Origin) *MethodDescriptor {
	ft := fn.Type()

	m := &MethodDescriptor{
		Name:       name,
		Variadic:   ft.IsVariadic(),
		Visibility: visibilityOf(token.IsExported(name)),
		Origin:     origin,
		Static:     static,
		owner:      owner,
		fn:         fn,
	}

	start := 0
	if !static {
		m.Receiver = ft.In(0)
		start = 1
	}

	for i := start; i < ft.NumIn(); i++ {
		m.In = append(m.In, ft.In(i))
	}

	for i := range ft.NumOut() {
		m.Out = append(m.Out, ft.Out(i))
	}

	return m
}

func buildMethods(t reflect.Type, registered []registration) []*MethodDescriptor {
	var res []*MethodDescriptor

	recv := reflect.PointerTo(t)
	for i := range recv.NumMethod() {
		method := recv.Method(i)
		if IsAccessor(method.Name) {
			continue
		}

		res = append(res, newMethodDescriptor(t, method.Name, method.Func, false, methodOrigin(t, method)))
	}

	for _, reg := range registered {
		if IsAccessor(reg.name) {
			continue
		}

		res = append(res, newMethodDescriptor(t, reg.name, reg.fn, reg.static, OriginDeclared))
	}

	slices.SortStableFunc(res, func(a, b *MethodDescriptor) int {
		return strings.Compare(a.Name, b.Name)
	})

	return res
}

// methodOrigin reports a method as inherited when an embedded field provides it
// and the compiler generated the method of t as a forwarding wrapper.
// A method t declares itself with the same name is an override and stays declared.
func methodOrigin(t reflect.Type, method reflect.Method) Origin {
	if t.Kind() != reflect.Struct || !embeddedHasMethod(t, method.Name) {
		return OriginDeclared
	}

	fn := method.Func
	if valueMethod, ok := t.MethodByName(method.Name); ok {
		// pointer wrappers of value methods are generated too, look at the value method
		fn = valueMethod.Func
	}

	if isDeclaredFunc(fn) {
		return OriginDeclared
	}

	return OriginInherited
}

func embeddedHasMethod(t reflect.Type, name string) bool {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}

		ft := field.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}

		if _, ok := ft.MethodByName(name); ok {
			return true
		}
	}

	return false
}

// isDeclaredFunc tells hand written functions from compiler generated wrappers.
func isDeclaredFunc(fn reflect.Value) bool {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}

	file, _ := f.FileLine(f.Entry())

	return file != "<autogenerated>"
}

func checkFunc(fn any) (reflect.Value, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: expected a function, got %T", common.ErrInvalidArgument, fn)
	}

	return v, nil
}
