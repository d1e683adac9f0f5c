package introspect

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"reflex/internal/common"
	"reflex/utils"
)

type registration struct {
	name   string
	fn     reflect.Value
	static bool
}

// registry holds the methods reflection cannot see. Every change bumps the
// generation so cached tables built before it are rebuilt.
type registry struct {
	mu         sync.RWMutex
	entries    map[reflect.Type][]registration
	generation uint64
}

var methodRegistry = &registry{entries: map[reflect.Type][]registration{}}

func (r *registry) add(owner reflect.Type, reg registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries[owner] {
		if existing.name == reg.name {
			return fmt.Errorf("%w: %s.%s is already registered", common.ErrInvalidArgument, common.TypeName(owner), reg.name)
		}
	}

	r.entries[owner] = append(r.entries[owner], reg)
	r.generation++

	return nil
}

func (r *registry) snapshot(owner reflect.Type) ([]registration, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]registration(nil), r.entries[owner]...), r.generation
}

func (r *registry) currentGeneration() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.generation
}

// RegisterMethod makes fn discoverable as an instance method of T. The first
// parameter of fn is the receiver and must be T or *T, method expressions such
// as (*T).name fit. An empty name is taken from the function itself.
func RegisterMethod[T any](name string, fn any) error {
	owner := reflect.TypeFor[T]()

	v, err := checkFunc(fn)
	if err != nil {
		return err
	}

	if v.Type().NumIn() == 0 {
		return fmt.Errorf("%w: %s has no receiver parameter", common.ErrInvalidArgument, v.Type())
	}

	if recv := v.Type().In(0); recv != owner && recv != reflect.PointerTo(owner) {
		return fmt.Errorf("%w: receiver %s does not match %s", common.ErrInvalidArgument,
			common.TypeName(recv), common.TypeName(owner))
	}

	return register(owner, name, v, false)
}

// RegisterStatic makes fn discoverable as a type-level method of T.
// An empty name is taken from the function itself.
func RegisterStatic[T any](name string, fn any) error {
	v, err := checkFunc(fn)
	if err != nil {
		return err
	}

	return register(reflect.TypeFor[T](), name, v, true)
}

// MustRegisterMethod is RegisterMethod for package initialization, it panics on error.
func MustRegisterMethod[T any](name string, fn any) {
	if err := RegisterMethod[T](name, fn); err != nil {
		panic(err)
	}
}

// MustRegisterStatic is RegisterStatic for package initialization, it panics on error.
func MustRegisterStatic[T any](name string, fn any) {
	if err := RegisterStatic[T](name, fn); err != nil {
		panic(err)
	}
}

func register(owner reflect.Type, name string, fn reflect.Value, static bool) error {
	if owner.Kind() == reflect.Pointer || owner.Kind() == reflect.Interface {
		return fmt.Errorf("%w: methods are registered on the value type, got %s", common.ErrInvalidArgument, common.TypeName(owner))
	}

	if name == "" {
		name = funcName(fn)
	}

	if name == "" {
		return fmt.Errorf("%w: cannot derive a method name for %s", common.ErrInvalidArgument, fn.Type())
	}

	if _, ok := reflect.PointerTo(owner).MethodByName(name); ok {
		return fmt.Errorf("%w: %s.%s is a method already", common.ErrInvalidArgument, common.TypeName(owner), name)
	}

	if err := methodRegistry.add(owner, registration{name: name, fn: fn, static: static}); err != nil {
		return err
	}

	if static {
		log.Debugf("registered static method %s.%s", common.TypeName(owner), name)
	} else {
		log.Debugf("registered method %s.%s", common.TypeName(owner), name)
	}

	return nil
}

// funcName extracts the bare function name, e.g. "sayHi" out of
// "reflex/internal/stubs.(*Bar).sayHi-fm".
func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}

	name := strings.TrimSuffix(utils.Second(path.Split(f.Name())), "-fm")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}
