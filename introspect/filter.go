package introspect

import (
	"strings"

	"reflex/internal/common"
)

// Filter selects members and methods by visibility, scope and origin.
type Filter uint8

const (
	Public Filter = 1 << iota
	NonPublic
	Instance
	Static
	DeclaredOnly
)

const (
	// Default selects public instance members declared on the type itself.
	Default = Public | Instance | DeclaredOnly

	// Lookup is used to resolve a single name: public members of any scope and origin.
	Lookup = Public | Instance | Static
)

var filterNames = []struct {
	flag Filter
	name string
}{
	{Public, "Public"},
	{NonPublic, "NonPublic"},
	{Instance, "Instance"},
	{Static, "Static"},
	{DeclaredOnly, "DeclaredOnly"},
}

func (f Filter) Has(flag Filter) bool {
	return f&flag == flag
}

func (f Filter) String() string {
	var parts []string
	for _, entry := range filterNames {
		if f.Has(entry.flag) {
			parts = append(parts, entry.name)
		}
	}

	if len(parts) == 0 {
		return "None"
	}

	return strings.Join(parts, "|")
}

func (f Filter) admits(visibility Visibility, origin Origin, static bool) bool {
	switch {
	case visibility == VisibilityPublic && !f.Has(Public),
		visibility == VisibilityNonPublic && !f.Has(NonPublic),
		static && !f.Has(Static),
		!static && !f.Has(Instance),
		origin == OriginInherited && f.Has(DeclaredOnly):
		return false
	}

	return true
}

type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityNonPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityNonPublic:
		return "non-public"
	default:
		return common.UnknownStr
	}
}

// Origin tells members declared on a type apart from those promoted from embedded fields.
type Origin int

const (
	OriginDeclared Origin = iota
	OriginInherited
)

func (o Origin) String() string {
	switch o {
	case OriginDeclared:
		return "declared"
	case OriginInherited:
		return "inherited"
	default:
		return common.UnknownStr
	}
}

func visibilityOf(exported bool) Visibility {
	if exported {
		return VisibilityPublic
	}

	return VisibilityNonPublic
}
