package match

import (
	"reflect"
	"testing"
	"time"
)

type celsius float64

type level int

func (l level) String() string { return "level" }

type ident string

func (i *ident) UnmarshalText(text []byte) error {
	*i = ident(text)
	return nil
}

func TestTypeCompatibility_String(t *testing.T) {
	tests := []struct {
		compat   TypeCompatibility
		expected string
	}{
		{TypeIdentical, "identical"},
		{TypeAssignable, "assignable"},
		{TypeConvertible, "convertible"},
		{TypeNeedsTransform, "needs_transform"},
		{TypeIncompatible, "incompatible"},
		{TypeCompatibility(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.compat.String(); got != tt.expected {
				t.Errorf("TypeCompatibility.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScoreTypeCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		source   reflect.Type
		target   reflect.Type
		expected TypeCompatibility
	}{
		{"identical int", reflect.TypeFor[int](), reflect.TypeFor[int](), TypeIdentical},
		{"concrete to interface", reflect.TypeFor[int](), reflect.TypeFor[any](), TypeAssignable},
		{"stringer to interface", reflect.TypeFor[level](), reflect.TypeFor[interface{ String() string }](), TypeAssignable},
		{"int to int64 widening", reflect.TypeFor[int](), reflect.TypeFor[int64](), TypeConvertible},
		{"named float", reflect.TypeFor[float64](), reflect.TypeFor[celsius](), TypeConvertible},
		{"int64 to int8 narrowing", reflect.TypeFor[int64](), reflect.TypeFor[int8](), TypeNeedsTransform},
		{"int to string is not a rune", reflect.TypeFor[int](), reflect.TypeFor[string](), TypeNeedsTransform},
		{"string to duration", reflect.TypeFor[string](), reflect.TypeFor[time.Duration](), TypeNeedsTransform},
		{"pointer dereference", reflect.TypeFor[*int](), reflect.TypeFor[int](), TypeNeedsTransform},
		{"address of", reflect.TypeFor[string](), reflect.TypeFor[*string](), TypeNeedsTransform},
		{"slice elements", reflect.TypeFor[[]string](), reflect.TypeFor[[]int](), TypeNeedsTransform},
		{"slice to array", reflect.TypeFor[[]int](), reflect.TypeFor[[3]int64](), TypeNeedsTransform},
		{"map elements", reflect.TypeFor[map[string]string](), reflect.TypeFor[map[string]float64](), TypeNeedsTransform},
		{"stringer to string", reflect.TypeFor[level](), reflect.TypeFor[string](), TypeNeedsTransform},
		{"string to text unmarshaler", reflect.TypeFor[string](), reflect.TypeFor[ident](), TypeConvertible},
		{"struct to int", reflect.TypeFor[struct{ A int }](), reflect.TypeFor[int](), TypeIncompatible},
		{"func to string", reflect.TypeFor[func()](), reflect.TypeFor[string](), TypeIncompatible},
		{"nil source", nil, reflect.TypeFor[int](), TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreTypeCompatibility(tt.source, tt.target)
			if result.Compatibility != tt.expected {
				t.Errorf("ScoreTypeCompatibility(%v, %v) = %v (%s), want %v",
					tt.source, tt.target, result.Compatibility, result.Reason, tt.expected)
			}
		})
	}
}
