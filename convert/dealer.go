package convert

import "reflect"

// visit identifies a pointer conversion in progress. A struct and its first
// field share an address, so the source type is part of the key.
type visit struct {
	ptr uintptr
	src reflect.Type
	dst reflect.Type
}

// Dealer remembers the pointers converted during one call, so shared and
// cyclic pointer graphs come out with the same shape instead of recursing forever.
type Dealer struct {
	done map[visit]reflect.Value
}

func newDealer() *Dealer {
	return &Dealer{done: make(map[visit]reflect.Value)}
}

func (d *Dealer) Lookup(src reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	v, ok := d.done[visit{src.Pointer(), src.Type(), dst}]
	return v, ok
}

func (d *Dealer) Deal(src reflect.Value, dst reflect.Value) {
	d.done[visit{src.Pointer(), src.Type(), dst.Type()}] = dst
}
