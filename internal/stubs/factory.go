package stubs

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// StubFactory makes randomly filled fixtures.
type StubFactory struct {
	rand *rand.Rand
}

func NewStubFactory(seed int64) *StubFactory {
	return &StubFactory{rand: rand.New(rand.NewSource(seed))}
}

func (f *StubFactory) MakeRandomNumber() int {
	return f.rand.Intn(math.MaxInt32)
}

func (f *StubFactory) MakeRandomString() string {
	return "RandomStr" + strconv.Itoa(f.MakeRandomNumber())
}

func (f *StubFactory) MakeRandomFoo() Foo {
	return NewFoo(f.MakeRandomNumber(), uuid.NewString(), f.MakeRandomString(), f.MakeRandomNumber())
}

func (f *StubFactory) MakeRandomBar() *Bar {
	return &Bar{A: f.MakeRandomNumber(), B: uuid.NewString()}
}
