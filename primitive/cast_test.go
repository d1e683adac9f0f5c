package primitive_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflex/internal/common"
	"reflex/primitive"
)

type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	}

	return "unknown"
}

func (c *Color) UnmarshalText(text []byte) error {
	for candidate := ColorRed; candidate <= ColorBlue; candidate++ {
		if strings.EqualFold(candidate.String(), string(text)) {
			*c = candidate
			return nil
		}
	}

	return common.ErrFormat
}

type Level string

func (l Level) IsValid() bool { return l == "low" || l == "high" }

type Flag bool

func cast[T any](t *testing.T, src any, opts primitive.Options) (T, error) {
	t.Helper()

	res, err := primitive.Cast(reflect.ValueOf(src), reflect.TypeFor[T](), opts)
	if err != nil {
		var zero T
		return zero, err
	}

	return res.Interface().(T), nil
}

func TestCastNumbers(t *testing.T) {
	t.Parallel()

	opts := primitive.DefaultOptions()

	t.Run("widening", func(t *testing.T) {
		t.Parallel()

		res, err := cast[int64](t, int8(-5), opts)
		require.NoError(t, err)
		assert.Equal(t, int64(-5), res)
	})

	t.Run("narrowing in range", func(t *testing.T) {
		t.Parallel()

		res, err := cast[uint8](t, 200, opts)
		require.NoError(t, err)
		assert.Equal(t, uint8(200), res)
	})

	t.Run("narrowing overflow", func(t *testing.T) {
		t.Parallel()

		_, err := cast[int8](t, 300, opts)
		assert.ErrorIs(t, err, common.ErrInvalidCast)

		_, err = cast[uint](t, -1, opts)
		assert.ErrorIs(t, err, common.ErrInvalidCast)
	})

	t.Run("float rounds half to even", func(t *testing.T) {
		t.Parallel()

		for src, expected := range map[float64]int{2.5: 2, 3.5: 4, -2.5: -2, 2.4: 2} {
			res, err := cast[int](t, src, opts)
			require.NoError(t, err)
			assert.Equal(t, expected, res, "source %v", src)
		}
	})

	t.Run("float out of range", func(t *testing.T) {
		t.Parallel()

		_, err := cast[int64](t, 1e300, opts)
		assert.ErrorIs(t, err, common.ErrInvalidCast)
	})

	t.Run("unsafe numbers disabled", func(t *testing.T) {
		t.Parallel()

		strict := opts
		strict.Allowed = primitive.CategorySafeNumber

		_, err := cast[int8](t, 1, strict)
		assert.ErrorIs(t, err, common.ErrInvalidCast)

		res, err := cast[int64](t, int32(1), strict)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res)
	})
}

func TestCastText(t *testing.T) {
	t.Parallel()

	opts := primitive.DefaultOptions()

	t.Run("text to number", func(t *testing.T) {
		t.Parallel()

		res, err := cast[int](t, " 42 ", opts)
		require.NoError(t, err)
		assert.Equal(t, 42, res)

		_, err = cast[int](t, "forty two", opts)
		assert.ErrorIs(t, err, common.ErrFormat)

		_, err = cast[int8](t, "1000", opts)
		assert.ErrorIs(t, err, common.ErrInvalidCast)
	})

	t.Run("number to text", func(t *testing.T) {
		t.Parallel()

		res, err := cast[string](t, float32(0.1), opts)
		require.NoError(t, err)
		assert.Equal(t, "0.1", res)

		res, err = cast[string](t, uint16(7), opts)
		require.NoError(t, err)
		assert.Equal(t, "7", res)
	})

	t.Run("textual bool", func(t *testing.T) {
		t.Parallel()

		for text, expected := range map[string]bool{"yes": true, "On": true, "1": true, "no": false, "OFF": false, "false": false} {
			res, err := cast[bool](t, text, opts)
			require.NoError(t, err)
			assert.Equal(t, expected, res, "text %q", text)
		}

		_, err := cast[bool](t, "maybe", opts)
		assert.ErrorIs(t, err, common.ErrFormat)
	})

	t.Run("numeric bool", func(t *testing.T) {
		t.Parallel()

		res, err := cast[bool](t, -3, opts)
		require.NoError(t, err)
		assert.True(t, res)

		n, err := cast[uint8](t, true, opts)
		require.NoError(t, err)
		assert.Equal(t, uint8(1), n)
	})
}

func TestCastTime(t *testing.T) {
	t.Parallel()

	opts := primitive.DefaultOptions()
	moment := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)

	t.Run("datetime", func(t *testing.T) {
		t.Parallel()

		res, err := cast[time.Time](t, "2024-03-01T12:30:00Z", opts)
		require.NoError(t, err)
		assert.True(t, moment.Equal(res))

		text, err := cast[string](t, moment, opts)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01T12:30:00Z", text)

		_, err = cast[time.Time](t, "yesterday", opts)
		assert.ErrorIs(t, err, common.ErrFormat)
	})

	t.Run("timestamp", func(t *testing.T) {
		t.Parallel()

		res, err := cast[time.Time](t, moment.Unix(), opts)
		require.NoError(t, err)
		assert.True(t, moment.Equal(res))

		seconds, err := cast[int64](t, moment, opts)
		require.NoError(t, err)
		assert.Equal(t, moment.Unix(), seconds)
	})

	t.Run("durations", func(t *testing.T) {
		t.Parallel()

		d, err := cast[time.Duration](t, "2h45m", opts)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour+45*time.Minute, d)

		d, err = cast[time.Duration](t, 1.5, opts)
		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, d)

		ns, err := cast[int64](t, time.Microsecond, opts)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), ns)

		text, err := cast[string](t, 90*time.Second, opts)
		require.NoError(t, err)
		assert.Equal(t, "1m30s", text)
	})
}

func TestCastEnums(t *testing.T) {
	t.Parallel()

	opts := primitive.DefaultOptions()

	t.Run("text unmarshaler", func(t *testing.T) {
		t.Parallel()

		res, err := cast[Color](t, "Green", opts)
		require.NoError(t, err)
		assert.Equal(t, ColorGreen, res)

		_, err = cast[Color](t, "purple", opts)
		assert.ErrorIs(t, err, common.ErrFormat)
	})

	t.Run("stringer", func(t *testing.T) {
		t.Parallel()

		res, err := cast[string](t, ColorBlue, opts)
		require.NoError(t, err)
		assert.Equal(t, "blue", res)
	})

	t.Run("underlying number", func(t *testing.T) {
		t.Parallel()

		res, err := cast[Color](t, 2, opts)
		require.NoError(t, err)
		assert.Equal(t, ColorBlue, res)

		n, err := cast[int64](t, ColorGreen, opts)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("validated strings", func(t *testing.T) {
		t.Parallel()

		res, err := cast[Level](t, "high", opts)
		require.NoError(t, err)
		assert.Equal(t, Level("high"), res)

		_, err = cast[Level](t, "medium", opts)
		assert.ErrorIs(t, err, common.ErrFormat)
	})

	t.Run("named bool", func(t *testing.T) {
		t.Parallel()

		res, err := cast[Flag](t, "yes", opts)
		require.NoError(t, err)
		assert.Equal(t, Flag(true), res)
	})
}

func TestCastRejectsComposites(t *testing.T) {
	t.Parallel()

	_, err := primitive.Cast(reflect.ValueOf([]int{1}), reflect.TypeFor[int](), primitive.DefaultOptions())
	assert.ErrorIs(t, err, common.ErrInvalidCast)
}
