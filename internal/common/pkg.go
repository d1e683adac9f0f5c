package common

import (
	"path"
	"reflect"
)

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// NameTag is the struct tag of the leading zero-size field naming a synthesized struct type.
const NameTag = "synth"

// TypeName returns a short, package-qualified name of t, e.g. "stubs.Foo" or "*stubs.Foo".
// Synthesized structs go by the name in their NameTag, other unnamed types are
// rendered with reflect's own formatting.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Kind() == reflect.Ptr && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}

	if t.Kind() == reflect.Struct && t.Name() == "" && t.NumField() > 0 {
		if name, ok := t.Field(0).Tag.Lookup(NameTag); ok && t.Field(0).Type.Size() == 0 {
			return name
		}
	}

	alias := PkgAlias(t.PkgPath())
	if alias == "" || t.Name() == "" {
		return t.String()
	}

	return alias + "." + t.Name()
}
