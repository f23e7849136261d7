package vm

// stack_pool.go implements a sync.Pool-backed allocator for OperandStack
// instances. A stack at the default capacity owns a 32 KiB slot buffer;
// since every call frame needs exactly one stack, reusing them across
// frames keeps the interpreter free of per-call allocations. Usage is
// tracked with counters from the metrics package.

import (
	"sync"

	"github.com/vmforge/evmstack/metrics"
)

// StackPool hands out OperandStack instances at the default capacity and
// takes them back when a call frame completes. Stacks returned by Get are
// always empty. Safe for concurrent use.
type StackPool struct {
	pool sync.Pool

	allocs  *metrics.Counter // stacks newly allocated by the pool
	gets    *metrics.Counter // total Get calls
	returns *metrics.Counter // total Put calls
}

// NewStackPool creates an empty StackPool.
func NewStackPool() *StackPool {
	return NewStackPoolWithRegistry(metrics.DefaultRegistry)
}

// NewStackPoolWithRegistry creates a StackPool whose usage counters are
// registered in reg. Pools sharing a registry share counters.
func NewStackPoolWithRegistry(reg *metrics.Registry) *StackPool {
	sp := &StackPool{
		allocs:  reg.Counter("vm.stackpool.allocs"),
		gets:    reg.Counter("vm.stackpool.gets"),
		returns: reg.Counter("vm.stackpool.returns"),
	}
	sp.pool = sync.Pool{
		New: func() interface{} {
			sp.allocs.Inc()
			return NewOperandStack()
		},
	}
	return sp
}

// Get retrieves a stack from the pool, allocating one if none is cached.
// The returned stack is empty.
func (sp *StackPool) Get() *OperandStack {
	st := sp.pool.Get().(*OperandStack)
	if st.Size() > 0 {
		st.Reset()
	}
	sp.gets.Inc()
	return st
}

// Put returns a stack to the pool for reuse. The stack is reset first.
// Stacks constructed with a non-default capacity are accepted too; the
// pool does not segregate by capacity. nil is ignored.
func (sp *StackPool) Put(st *OperandStack) {
	if st == nil {
		return
	}
	st.Reset()
	sp.returns.Inc()
	sp.pool.Put(st)
}

// Stats returns a snapshot of pool usage.
func (sp *StackPool) Stats() StackPoolStats {
	return StackPoolStats{
		Allocations: uint64(sp.allocs.Value()),
		Gets:        uint64(sp.gets.Value()),
		Returns:     uint64(sp.returns.Value()),
	}
}

// StackPoolStats holds pool usage counters.
type StackPoolStats struct {
	Allocations uint64 // stacks newly allocated
	Gets        uint64 // total Get calls
	Returns     uint64 // total Put calls
}

// HitRate returns the fraction of Get calls served by a cached stack,
// in [0, 1]. Returns 0 before any Get.
func (s StackPoolStats) HitRate() float64 {
	if s.Gets == 0 || s.Allocations >= s.Gets {
		return 0
	}
	return float64(s.Gets-s.Allocations) / float64(s.Gets)
}
