package introspect

import (
	"reflect"
	"sync"

	"reflex/internal/common"
)

// table is the descriptor set of one type. Tables are immutable, concurrent
// builds of the same type are equivalent and the last stored one wins.
type table struct {
	members    []*MemberDescriptor
	methods    []*MethodDescriptor
	generation uint64
}

var tables sync.Map // reflect.Type -> *table

func tableOf(t reflect.Type) *table {
	generation := methodRegistry.currentGeneration()
	if cached, ok := tables.Load(t); ok && cached.(*table).generation == generation {
		return cached.(*table)
	}

	registered, generation := methodRegistry.snapshot(t)
	tbl := &table{
		members:    buildMembers(t),
		methods:    buildMethods(t, registered),
		generation: generation,
	}

	tables.Store(t, tbl)
	log.Debugf("built descriptors of %s: %d members, %d methods", common.TypeName(t), len(tbl.members), len(tbl.methods))

	return tbl
}
