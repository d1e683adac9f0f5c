package primitive_test

import (
	"reflex/primitive"
	"fmt"
	"reflect"
	"time"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindEnum(0)
}

func ExampleCategoryOf() {
	fmt.Println(primitive.CategoryOf(primitive.ConversionPair{From: primitive.KindInt8, To: primitive.KindInt64}))
	fmt.Println(primitive.CategoryOf(primitive.ConversionPair{From: primitive.KindInt64, To: primitive.KindInt8}))
	fmt.Println(primitive.CategoryOf(primitive.ConversionPair{From: primitive.KindString, To: primitive.KindDuration}))
	fmt.Println(primitive.CategoryOf(primitive.ConversionPair{From: primitive.KindTime, To: primitive.KindDuration}))
	// Output:
	// safe_number
	// unsafe_number
	// duration
	// none
}
