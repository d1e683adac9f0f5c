// Package stubs holds the fixture types shared by the package tests.
package stubs

import (
	"errors"
	"fmt"
	"time"

	"reflex/introspect"
)

type Foo struct {
	A  int
	B  string
	pv string
	pw int
}

// NewFoo fills the unexported members too.
func NewFoo(a int, b, pv string, pw int) Foo {
	return Foo{A: a, B: b, pv: pv, pw: pw}
}

func (f Foo) PV() string { return f.pv }

type Bar struct {
	A int
	B string
}

func (b *Bar) SayHello(name string) string   { return "Hello " + name }
func (b *Bar) SayGoodbye(name string) string { return "Goodbye " + name }

func (b *Bar) sayHi(name string) string  { return "Hi " + name }
func (b *Bar) sayBye(name string) string { return "Bye " + name }

// get_Total is an accessor, it is never listed as a method.
func (b *Bar) get_Total() int { return b.A }

func StaticHello(name string) string { return "Bzz... " + name }

func init() {
	introspect.MustRegisterMethod[Bar]("", (*Bar).sayHi)
	introspect.MustRegisterMethod[Bar]("", (*Bar).sayBye)
	introspect.MustRegisterMethod[Bar]("", (*Bar).get_Total)
	introspect.MustRegisterStatic[Bar]("StaticHello", StaticHello)
}

type Base struct {
	ID      int
	Created time.Time
}

func (b Base) Describe() string { return fmt.Sprintf("base %d", b.ID) }
func (b *Base) Touch()          { b.Created = time.Unix(0, 0).UTC() }

// Derived embeds Base, overriding Describe and inheriting Touch.
type Derived struct {
	Base
	Name string
}

func (d Derived) Describe() string { return "derived " + d.Name }

type Tagged struct {
	FirstName string `reflex:"first_name"`
	Secret    string `reflex:"-"`
	Age       int
	Nickname  *string
}

var ErrDivideByZero = errors.New("divide by zero")

type Calculator struct {
	Factor float64
}

func (c Calculator) Scale(value float64) float64 { return c.Factor * value }

func (c *Calculator) Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}

	return a / b, nil
}

func (c *Calculator) Sum(prefix string, values ...int) string {
	total := 0
	for _, v := range values {
		total += v
	}

	return fmt.Sprintf("%s%d", prefix, total)
}

func (c *Calculator) Reset() { c.Factor = 0 }

func (c *Calculator) Explode() { panic("boom") }
