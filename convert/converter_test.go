package convert_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflex/convert"
	"reflex/options"
	"reflex/primitive"
)

type Celsius float64

var errNoUnit = errors.New("temperature without unit")

func parseCelsius(text string) (Celsius, error) {
	number, ok := strings.CutSuffix(text, "C")
	if !ok {
		return 0, errNoUnit
	}

	f, err := strconv.ParseFloat(number, 64)
	return Celsius(f), err
}

type point struct {
	X, Y int
}

type vector struct {
	X, Y float64
	Z    string
}

type link struct {
	Name string
	Next *link
}

type chain struct {
	Name string
	Next *chain
}

func ExampleTo() {
	fmt.Println(convert.To[int]("42"))
	fmt.Println(convert.To[bool]("yes"))
	fmt.Println(convert.To[time.Duration]("1m30s"))
	fmt.Println(convert.To[[]int]([]string{"1", "2", "3"}))
	fmt.Println(convert.To[int]("forty-two"))
	fmt.Println(convert.To[*int](nil) == nil)

	// Output:
	// 42
	// true
	// 1m30s
	// [1 2 3]
	// 0
	// true
}

func TestTo(t *testing.T) {
	t.Parallel()

	t.Run("numbers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, int64(7), convert.To[int64](int8(7)))
		assert.Equal(t, 2.5, convert.To[float64]("2.5"))
		assert.Equal(t, uint8(0), convert.To[uint8](300))
		assert.Equal(t, "12", convert.To[string](12))
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, convert.To[int](nil))
		assert.Nil(t, convert.To[[]string](nil))
		assert.Nil(t, convert.To[map[string]int](nil))
		assert.Nil(t, convert.To[error](nil))
		assert.Nil(t, convert.To[*int]((*string)(nil)))
	})

	t.Run("pointers", func(t *testing.T) {
		t.Parallel()

		n := 5
		assert.Equal(t, 5, convert.To[int](&n))

		p := convert.To[*string](&n)
		require.NotNil(t, p)
		assert.Equal(t, "5", *p)

		q := convert.To[*int64]("9")
		require.NotNil(t, q)
		assert.Equal(t, int64(9), *q)
	})

	t.Run("interfaces", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 3, convert.To[any](3))
		assert.Equal(t, errNoUnit, convert.To[error](errNoUnit))
		assert.Nil(t, convert.To[fmt.Stringer](3))
	})

	t.Run("text types", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		assert.Equal(t, id, convert.To[uuid.UUID](id.String()))
		assert.Equal(t, id.String(), convert.To[string](id))
		assert.Equal(t, uuid.Nil, convert.To[uuid.UUID]("not an uuid"))
	})

	t.Run("collections", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, [3]int{1, 2, 3}, convert.To[[3]int]([]string{"1", "2", "3"}))
		assert.Equal(t, [2]int{1, 2}, convert.To[[2]int]([]int{1, 2, 3}))
		assert.Equal(t, []string{"1", "2"}, convert.To[[]string]([2]int{1, 2}))
		assert.Equal(t, map[string]int{"a": 1}, convert.To[map[string]int](map[string]string{"a": "1"}))
		assert.Nil(t, convert.To[[]int]([]string{"1", "x"}))
	})

	t.Run("structs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, vector{X: 1, Y: 2}, convert.To[vector](point{1, 2}))
		assert.Equal(t, point{1, 2}, convert.To[point](vector{X: 1.4, Y: 2, Z: "up"}))
	})
}

func TestValue(t *testing.T) {
	t.Parallel()

	_, err := convert.Value(reflect.ValueOf("abc"), reflect.TypeFor[int]())
	require.ErrorIs(t, err, convert.ErrFormat)

	_, err = convert.Value(reflect.ValueOf(point{}), reflect.TypeFor[int]())
	require.ErrorIs(t, err, convert.ErrInvalidCast)

	_, err = convert.Value(reflect.ValueOf(1), nil)
	require.ErrorIs(t, err, convert.ErrInvalidArgument)

	res, err := convert.Value(reflect.Value{}, reflect.TypeFor[string]())
	require.NoError(t, err)
	assert.Equal(t, "", res.Interface())

	_, err = convert.Value(reflect.ValueOf([]string{"1", "x"}), reflect.TypeFor[[]int]())
	require.ErrorIs(t, err, convert.ErrFormat)
	assert.Contains(t, err.Error(), "element 1")
}

func TestValueKeepsPointerShape(t *testing.T) {
	t.Parallel()

	head := &link{Name: "head"}
	head.Next = &link{Name: "tail", Next: head}

	res, err := convert.Value(reflect.ValueOf(head), reflect.TypeFor[*chain]())
	require.NoError(t, err)

	out := res.Interface().(*chain)
	assert.Equal(t, "head", out.Name)
	assert.Equal(t, "tail", out.Next.Name)
	assert.Same(t, out, out.Next.Next)
}

type (
	cell  struct{ N int }
	frame struct {
		Head  cell
		Label string
	}
	flat struct {
		N     int
		Label string
	}
)

func TestValueSharedAddress(t *testing.T) {
	t.Parallel()

	f := &frame{Head: cell{N: 7}, Label: "frame"}
	src := struct {
		Frame *frame
		Head  *cell
	}{f, &f.Head}

	res, err := convert.Value(reflect.ValueOf(src), reflect.TypeFor[struct {
		Frame *flat
		Head  *flat
	}]())
	require.NoError(t, err)

	out := res.Interface().(struct {
		Frame *flat
		Head  *flat
	})
	assert.Equal(t, &flat{Label: "frame"}, out.Frame)
	assert.Equal(t, &flat{N: 7}, out.Head)
	assert.NotSame(t, out.Frame, out.Head)
}

func TestToType(t *testing.T) {
	t.Parallel()

	res, err := convert.ToType(reflect.TypeFor[float32](), "1.5")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), res)

	res, err = convert.ToType(reflect.TypeFor[int](), "nope")
	require.NoError(t, err)
	assert.Equal(t, 0, res)

	_, err = convert.ToType(nil, "1")
	require.ErrorIs(t, err, convert.ErrInvalidArgument)
}

func TestToString(t *testing.T) {
	t.Parallel()

	var absent *int
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{"nil", nil, "", false},
		{"nil pointer", absent, "", false},
		{"string", "x", "x", true},
		{"int", 42, "42", true},
		{"bool", true, "true", true},
		{"duration", time.Second, "1s", true},
		{"bytes", []byte("raw"), "raw", true},
		{"struct", point{1, 2}, "{1 2}", true},
		{"time", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), "2024-02-29T12:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := convert.ToString(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	t.Run("caster", func(t *testing.T) {
		t.Parallel()

		c, err := convert.New(convert.WithCaster(parseCelsius))
		require.NoError(t, err)

		assert.Equal(t, Celsius(21.5), convert.ToWith[Celsius](c, "21.5C"))
		assert.Equal(t, Celsius(0), convert.ToWith[Celsius](c, "21.5"))

		_, err = c.Value(reflect.ValueOf("21.5"), reflect.TypeFor[Celsius]())
		require.ErrorIs(t, err, errNoUnit)
		require.ErrorIs(t, err, convert.ErrInvalidCast)

		_, err = convert.New(convert.WithCaster("not a function"))
		require.ErrorIs(t, err, convert.ErrInvalidArgument)
	})

	t.Run("categories", func(t *testing.T) {
		t.Parallel()

		c, err := convert.New(convert.WithCategories(primitive.CategoryAll &^ primitive.CategoryUnsafeArray))
		require.NoError(t, err)

		assert.Equal(t, [2]int{1, 2}, convert.ToWith[[2]int](c, []int{1, 2}))
		assert.Equal(t, [2]int{}, convert.ToWith[[2]int](c, []int{1, 2, 3}))
		assert.Equal(t, 3, convert.ToWith[int](c, 3.4))

		c, err = convert.New(convert.WithCategories(primitive.CategorySafeNumber))
		require.NoError(t, err)
		assert.Equal(t, 0, convert.ToWith[int](c, "3"))
	})

	t.Run("words and layouts", func(t *testing.T) {
		t.Parallel()

		c, err := convert.New(
			convert.WithBoolWords([]string{"ja"}, []string{"nein"}),
			convert.WithTimeLayouts("02.01.2006"),
		)
		require.NoError(t, err)

		assert.True(t, convert.ToWith[bool](c, "JA"))
		assert.False(t, convert.ToWith[bool](c, "yes"))
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), convert.ToWith[time.Time](c, "01.03.2024"))

		_, err = convert.New(convert.WithTimeLayouts())
		require.ErrorIs(t, err, convert.ErrInvalidArgument)
	})

	t.Run("config", func(t *testing.T) {
		t.Parallel()

		cfg, err := options.Parse([]byte("categories: [all, -text_number]\n"), options.FormatYAML)
		require.NoError(t, err)

		c, err := convert.FromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, 0, convert.ToWith[int](c, "3"))
		assert.True(t, convert.ToWith[bool](c, "on"))

		_, err = convert.FromConfig(nil)
		require.ErrorIs(t, err, convert.ErrInvalidArgument)
	})
}
