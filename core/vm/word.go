package vm

// word.go provides typed views over stack operands for opcodes that treat
// them as opaque bytes rather than integers: addresses (CALL, BALANCE,
// EXTCODE*), hashes and log topics. Stored values are minimal big-endian
// encodings; the full 32-byte word is the stored bytes left-padded with
// zeros, so addresses occupy the low 20 bytes of the padded word.

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PopAddress pops the top element and returns the low 20 bytes of its
// zero-padded word as an address. Returns (common.Address{}, false) on an
// empty stack.
func (st *OperandStack) PopAddress() (common.Address, bool) {
	b, ok := st.PopBytes()
	if !ok {
		return common.Address{}, false
	}
	return common.BytesToAddress(b), true
}

// PopHash pops the top element and returns its full zero-padded 32-byte
// word. Returns (common.Hash{}, false) on an empty stack.
func (st *OperandStack) PopHash() (common.Hash, bool) {
	b, ok := st.PopBytes()
	if !ok {
		return common.Hash{}, false
	}
	return common.Hash(leftPadWord(b)), true
}

// GetHash returns the zero-padded word depth positions from the top
// (0 = top) without mutating the stack.
func (st *OperandStack) GetHash(depth int) (common.Hash, bool) {
	b, ok := st.GetBytes(depth)
	if !ok {
		return common.Hash{}, false
	}
	return common.Hash(leftPadWord(b)), true
}

// Dump returns the stack contents bottom to top as 0x-prefixed hex strings
// at the stored widths. Intended for tracers and debug output; an empty
// value renders as "0x".
func (st *OperandStack) Dump() []string {
	out := make([]string, len(st.lengths))
	for i, length := range st.lengths {
		off := i * WordSize
		out[i] = hexutil.Encode(st.storage[off : off+length])
	}
	return out
}

// leftPadWord returns b left-padded with zeros to a full 32-byte word.
// b must be at most WordSize bytes.
func leftPadWord(b []byte) [WordSize]byte {
	var w [WordSize]byte
	copy(w[WordSize-len(b):], b)
	return w
}
