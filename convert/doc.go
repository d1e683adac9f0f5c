// Package convert turns loosely typed values into values of a requested type.
//
// The permissive entry points (To, ToType, ToString) never fail on data: a
// value that cannot be converted yields the zero value of the target type.
// Value is the strict core they wrap and reports why a conversion failed:
//
//	n := convert.To[int]("42")          // 42
//	d := convert.To[time.Duration]("1m") // 1m0s
//	b := convert.To[bool]("yes")         // true
//	x := convert.To[int]("forty-two")    // 0
//
// Conversions are picked by the shape of the target type: primitives go
// through the primitive casters, text types through encoding.TextUnmarshaler
// and fmt.Stringer, slices, arrays and maps element by element, and structs
// member by member. Custom casters registered with WithCaster take precedence.
package convert
