package vm

// stack.go implements the EVM operand stack as a single packed buffer of
// 32-byte slots with a parallel length table. Values shorter than a full
// word are written left-aligned and their significant byte count recorded,
// so pushes never allocate per element and reads return exactly the stored
// width. Overflow and underflow are reported to the caller, not raised:
// the interpreter turns them into a halted frame.

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	// WordSize is the width of one stack slot in bytes (a 256-bit word).
	WordSize = 32

	// StackLimit is the protocol maximum operand stack depth.
	StackLimit = 1024

	// DefaultStackCapacity is StackLimit plus one sentinel slot. The push
	// that crosses the protocol limit still lands in the sentinel, letting
	// the interpreter observe Overflowed() after the limiting push instead
	// of losing the operand.
	DefaultStackCapacity = StackLimit + 1
)

// OperandStack is the operand stack of a single EVM call frame. One
// instance is created per frame, mutated only by the goroutine executing
// that frame's opcodes, and discarded (or returned to a StackPool) when
// the frame completes. It is not safe for concurrent use and deliberately
// carries no locking.
type OperandStack struct {
	storage  []byte // capacity * WordSize bytes; slot k occupies [k*WordSize, (k+1)*WordSize)
	lengths  []int  // significant byte count per occupied slot; len(lengths) is the stack size
	capacity int
}

// NewOperandStack returns an empty stack with the conventional capacity of
// StackLimit+1 slots.
func NewOperandStack() *OperandStack {
	return NewOperandStackWithCapacity(DefaultStackCapacity)
}

// NewOperandStackWithCapacity returns an empty stack holding at most
// capacity words. Non-positive capacities fall back to the default.
func NewOperandStackWithCapacity(capacity int) *OperandStack {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &OperandStack{
		storage:  make([]byte, capacity*WordSize),
		lengths:  make([]int, 0, capacity),
		capacity: capacity,
	}
}

// Push appends value to the top of the stack. It returns false without
// mutating anything if the stack is already at capacity. Values longer
// than 32 bytes are a caller bug and panic rather than silently truncate.
// The unwritten tail of the slot is left as-is; readers only see the
// recorded length.
func (st *OperandStack) Push(value []byte) bool {
	if len(value) > WordSize {
		panic(fmt.Sprintf("vm: push of %d bytes exceeds the %d-byte word size", len(value), WordSize))
	}
	n := len(st.lengths)
	if n == st.capacity {
		return false
	}
	copy(st.storage[n*WordSize:], value)
	st.lengths = append(st.lengths, len(value))
	return true
}

// PushWord pushes the minimal big-endian encoding of val. Same overflow
// contract as Push.
func (st *OperandStack) PushWord(val *uint256.Int) bool {
	return st.Push(val.Bytes())
}

// Pop removes the top element and returns it decoded as a big-endian
// unsigned integer. Returns (nil, false) on an empty stack.
func (st *OperandStack) Pop() (*uint256.Int, bool) {
	n := len(st.lengths)
	if n == 0 {
		return nil, false
	}
	length := st.lengths[n-1]
	st.lengths = st.lengths[:n-1]
	off := (n - 1) * WordSize
	return new(uint256.Int).SetBytes(st.storage[off : off+length]), true
}

// PopBytes removes the top element and returns a copy of its raw bytes at
// the stored width, for opcodes that move operands verbatim (addresses,
// hashes, topics). Returns (nil, false) on an empty stack.
func (st *OperandStack) PopBytes() ([]byte, bool) {
	n := len(st.lengths)
	if n == 0 {
		return nil, false
	}
	length := st.lengths[n-1]
	st.lengths = st.lengths[:n-1]
	off := (n - 1) * WordSize
	out := make([]byte, length)
	copy(out, st.storage[off:off+length])
	return out, true
}

// Get returns the element depth positions from the top (0 = top) decoded
// as a big-endian unsigned integer, without mutating the stack. Returns
// (nil, false) when depth is out of range.
func (st *OperandStack) Get(depth int) (*uint256.Int, bool) {
	n := len(st.lengths)
	if depth < 0 || depth >= n {
		return nil, false
	}
	idx := n - depth - 1
	off := idx * WordSize
	return new(uint256.Int).SetBytes(st.storage[off : off+st.lengths[idx]]), true
}

// GetBytes is the raw-byte counterpart of Get. The returned slice is a
// copy and safe to retain.
func (st *OperandStack) GetBytes(depth int) ([]byte, bool) {
	n := len(st.lengths)
	if depth < 0 || depth >= n {
		return nil, false
	}
	idx := n - depth - 1
	off := idx * WordSize
	out := make([]byte, st.lengths[idx])
	copy(out, st.storage[off:off+st.lengths[idx]])
	return out, true
}

// Peek returns the top element without removing it. Equivalent to Get(0).
func (st *OperandStack) Peek() (*uint256.Int, bool) {
	return st.Get(0)
}

// Set overwrites the element depth positions from the top (0 = top) with
// the minimal big-endian encoding of val and updates its length entry.
// The interpreter is expected to have validated depth against Size()
// already; an out-of-range depth is a caller bug and panics rather than
// corrupting an unrelated slot.
func (st *OperandStack) Set(depth int, val *uint256.Int) {
	n := len(st.lengths)
	if depth < 0 || depth >= n {
		panic(fmt.Sprintf("vm: set at depth %d with stack size %d", depth, n))
	}
	idx := n - depth - 1
	b := val.Bytes()
	copy(st.storage[idx*WordSize:], b)
	st.lengths[idx] = len(b)
}

// Dup duplicates the nth element from the top (1 = top, matching DUP1)
// and pushes the copy. Returns false on underflow (fewer than n elements)
// or overflow (stack at capacity).
func (st *OperandStack) Dup(n int) bool {
	size := len(st.lengths)
	if n < 1 || size < n || size == st.capacity {
		return false
	}
	src := (size - n) * WordSize
	dst := size * WordSize
	copy(st.storage[dst:dst+WordSize], st.storage[src:src+WordSize])
	st.lengths = append(st.lengths, st.lengths[size-n])
	return true
}

// Swap exchanges the top element with the element n positions below it
// (1 = the element directly under the top, matching SWAP1). Returns false
// when the stack holds fewer than n+1 elements.
func (st *OperandStack) Swap(n int) bool {
	size := len(st.lengths)
	if n < 1 || size < n+1 {
		return false
	}
	i, j := size-1, size-1-n
	var tmp [WordSize]byte
	a := st.storage[i*WordSize : (i+1)*WordSize]
	b := st.storage[j*WordSize : (j+1)*WordSize]
	copy(tmp[:], a)
	copy(a, b)
	copy(b, tmp[:])
	st.lengths[i], st.lengths[j] = st.lengths[j], st.lengths[i]
	return true
}

// Size returns the current number of elements on the stack.
func (st *OperandStack) Size() int {
	return len(st.lengths)
}

// Capacity returns the fixed slot capacity set at construction.
func (st *OperandStack) Capacity() int {
	return st.capacity
}

// Overflowed reports whether the stack has reached capacity, meaning any
// further Push will fail. With the default sentinel capacity this becomes
// true on the push that crosses the protocol limit.
func (st *OperandStack) Overflowed() bool {
	return len(st.lengths) >= st.capacity
}

// Reset empties the stack so the instance can be reused for another call
// frame. Slot contents are not cleared; the length table alone decides
// what is visible.
func (st *OperandStack) Reset() {
	st.lengths = st.lengths[:0]
}
