package mapper_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflex/internal/diagnostic"
	"reflex/internal/stubs"
	"reflex/kv"
	"reflex/mapper"
)

type order struct {
	ID     int
	Amount string
	Placed string
	Tags   []string
	Note   string
	Done   chan bool
}

type invoice struct {
	ID     int64
	Amount float64
	Placed time.Time
	Tags   []string
	Notes  string
	Done   bool
	Total  int
}

func ExampleCopyMembers() {
	src := stubs.NewFoo(42, "answer", "hidden", 7)

	var dst stubs.Bar
	if err := mapper.CopyMembers(src, &dst); err != nil {
		panic(err)
	}

	fmt.Printf("%+v\n", dst)

	// Output:
	// {A:42 B:answer}
}

func TestCopyMembers(t *testing.T) {
	t.Parallel()

	t.Run("same types round trip", func(t *testing.T) {
		t.Parallel()

		src := stubs.Bar{A: 1, B: "one"}
		var dst stubs.Foo
		require.NoError(t, mapper.CopyMembers(&src, &dst))

		assert.Equal(t, src.A, dst.A)
		assert.Equal(t, src.B, dst.B)
		assert.Empty(t, dst.PV())
	})

	t.Run("conversions", func(t *testing.T) {
		t.Parallel()

		src := order{ID: 7, Amount: "12.5", Placed: "2024-01-02T03:04:05Z", Tags: []string{"a"}, Note: "n", Done: make(chan bool)}
		dst := invoice{Notes: "kept", Done: true}
		require.NoError(t, mapper.CopyMembers(src, &dst))

		assert.Equal(t, int64(7), dst.ID)
		assert.Equal(t, 12.5, dst.Amount)
		assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(dst.Placed))
		assert.Equal(t, []string{"a"}, dst.Tags)
		assert.Equal(t, "kept", dst.Notes)
		assert.True(t, dst.Done)
	})

	t.Run("failed conversions store zero values", func(t *testing.T) {
		t.Parallel()

		dst := invoice{Amount: 3}
		require.NoError(t, mapper.CopyMembers(order{Amount: "lots"}, &dst))
		assert.Zero(t, dst.Amount)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		t.Parallel()

		var dst stubs.Bar
		require.ErrorIs(t, mapper.CopyMembers(nil, &dst), mapper.ErrInvalidArgument)
		require.ErrorIs(t, mapper.CopyMembers(stubs.Foo{}, dst), mapper.ErrInvalidArgument)
		require.ErrorIs(t, mapper.CopyMembers(stubs.Foo{}, (*stubs.Bar)(nil)), mapper.ErrInvalidArgument)

		n := 1
		require.ErrorIs(t, mapper.CopyMembers(stubs.Foo{}, &n), mapper.ErrInvalidArgument)
	})
}

func TestCopyFromMapping(t *testing.T) {
	t.Parallel()

	var dst stubs.Derived
	require.NoError(t, mapper.CopyFromMapping(kv.Mapping{"Name": "d"}, &dst))
	assert.Equal(t, "d", dst.Name)

	err := mapper.CopyFromMapping(kv.Mapping{"Missing": 1}, &dst)
	require.ErrorIs(t, err, mapper.ErrUnknownMember)

	err = mapper.CopyFromMapping(kv.Mapping{"ID": 3}, &dst)
	require.ErrorIs(t, err, mapper.ErrUnknownMember)
	assert.Zero(t, dst.ID)

	err = mapper.CopyFromMapping(kv.Mapping{"Name": 3}, &dst)
	require.ErrorIs(t, err, mapper.ErrTypeMismatch)

	err = mapper.CopyFromMapping(nil, &dst)
	require.ErrorIs(t, err, mapper.ErrInvalidArgument)

	require.NoError(t, mapper.CopyFromMapping(kv.Mapping{"Name": nil}, &dst))
	assert.Empty(t, dst.Name)
}

func TestCopyFromStringMapping(t *testing.T) {
	t.Parallel()

	t.Run("converts values", func(t *testing.T) {
		t.Parallel()

		dst := invoice{Notes: "old"}
		mapping := kv.FromMap(map[string]string{"ID": "12", "Amount": "9.75", "Done": "yes", "Total": "many"})
		mapping.SetNull("Notes")

		require.NoError(t, mapper.CopyFromStringMapping(mapping, &dst))
		assert.Equal(t, int64(12), dst.ID)
		assert.Equal(t, 9.75, dst.Amount)
		assert.True(t, dst.Done)
		assert.Zero(t, dst.Total)
		assert.Empty(t, dst.Notes)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		dst := invoice{ID: 1}
		mapping := kv.FromMap(map[string]string{"ID": "2", "Note": "x"})

		err := mapper.CopyFromStringMapping(mapping, &dst)
		require.ErrorIs(t, err, mapper.ErrUnknownKey)
		assert.Contains(t, err.Error(), `did you mean "Notes"?`)
		assert.Equal(t, int64(1), dst.ID)

		err = mapper.CopyFromStringMapping(kv.FromMap(map[string]string{"Zzzzzzzz": "x"}), &dst)
		require.ErrorIs(t, err, mapper.ErrUnknownKey)
		assert.NotContains(t, err.Error(), "did you mean")
	})

	t.Run("inherited key", func(t *testing.T) {
		t.Parallel()

		dst := stubs.Derived{Name: "d"}
		err := mapper.CopyFromStringMapping(kv.FromMap(map[string]string{"ID": "5", "Name": "e"}), &dst)
		require.ErrorIs(t, err, mapper.ErrUnknownKey)
		assert.Zero(t, dst.ID)
		assert.Equal(t, "d", dst.Name)
	})

	t.Run("tagged members", func(t *testing.T) {
		t.Parallel()

		var dst stubs.Tagged
		require.NoError(t, mapper.CopyFromStringMapping(kv.FromMap(map[string]string{"first_name": "Ada", "Nickname": "ada"}), &dst))
		assert.Equal(t, "Ada", dst.FirstName)
		require.NotNil(t, dst.Nickname)
		assert.Equal(t, "ada", *dst.Nickname)

		err := mapper.CopyFromStringMapping(kv.FromMap(map[string]string{"Secret": "x"}), &dst)
		require.ErrorIs(t, err, mapper.ErrUnknownKey)
	})
}

func TestCopyFromStringCollection(t *testing.T) {
	t.Parallel()

	c := kv.NewCollection()
	c.Add("A", "1")
	c.Add("A", "2")
	c.Add("B", "b")

	var dst stubs.Bar
	require.NoError(t, mapper.CopyFromStringCollection(c, &dst))
	assert.Equal(t, stubs.Bar{A: 2, B: "b"}, dst)

	require.ErrorIs(t, mapper.CopyFromStringCollection(nil, &dst), mapper.ErrInvalidArgument)
}

func TestExplain(t *testing.T) {
	t.Parallel()

	diags, err := mapper.Explain(order{}, invoice{})
	require.NoError(t, err)
	assert.False(t, diags.IsValid())

	paths := func(code string) []string {
		var res []string
		for _, diag := range diags.ByCode(code) {
			res = append(res, diag.FieldPath)
		}
		return res
	}

	assert.Equal(t, []string{"Tags"}, paths(diagnostic.CodeAssign))
	assert.Equal(t, []string{"ID"}, paths(diagnostic.CodeConvert))
	assert.Equal(t, []string{"Amount", "Placed"}, paths(diagnostic.CodeLossy))
	assert.Equal(t, []string{"Done"}, paths(diagnostic.CodeIncompatible))
	assert.Equal(t, []string{"Notes", "Total"}, paths(diagnostic.CodeUnmatchedTarget))

	missing := diags.ByCode(diagnostic.CodeMissing)
	require.Len(t, missing, 1)
	assert.Equal(t, "Note", missing[0].FieldPath)
	assert.Equal(t, []string{"Notes"}, missing[0].Suggestions)
	assert.Equal(t, "mapper_test.order -> mapper_test.invoice", missing[0].TypePair)

	_, err = mapper.Explain(order{}, nil)
	require.ErrorIs(t, err, mapper.ErrInvalidArgument)
}
