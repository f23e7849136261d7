package vm

// stack_bounds.go implements the depth checks the interpreter runs before
// dispatching an instruction, and a height tracker for static analysis of
// linear code sections. The checks are expressed over abstract stack
// effects (items popped, items pushed) so the package stays independent
// of any particular opcode set.

import (
	"errors"
	"fmt"
)

// Depth-validation errors. BoundsChecker methods wrap these with context,
// so callers match them with errors.Is.
var (
	ErrStackOverflow  = errors.New("vm: stack overflow")
	ErrStackUnderflow = errors.New("vm: stack underflow")
)

// StackEffect describes what an instruction does to stack depth: how many
// items it consumes and how many it produces.
type StackEffect struct {
	Pops   int
	Pushes int
}

// Delta returns the net depth change, Pushes - Pops.
func (e StackEffect) Delta() int {
	return e.Pushes - e.Pops
}

// BoundsChecker validates stack depth against a maximum before an
// operation executes. The zero limit is replaced by StackLimit.
type BoundsChecker struct {
	maxDepth int
}

// NewBoundsChecker returns a checker enforcing the protocol StackLimit.
func NewBoundsChecker() *BoundsChecker {
	return &BoundsChecker{maxDepth: StackLimit}
}

// NewBoundsCheckerWithLimit returns a checker with a custom depth limit.
// Non-positive limits fall back to StackLimit.
func NewBoundsCheckerWithLimit(maxDepth int) *BoundsChecker {
	if maxDepth <= 0 {
		maxDepth = StackLimit
	}
	return &BoundsChecker{maxDepth: maxDepth}
}

// MaxDepth returns the configured depth limit.
func (c *BoundsChecker) MaxDepth() int {
	return c.maxDepth
}

// CheckPush reports overflow if one more item would exceed the limit.
func (c *BoundsChecker) CheckPush(depth int) error {
	if depth >= c.maxDepth {
		return fmt.Errorf("%w: depth %d at limit %d", ErrStackOverflow, depth, c.maxDepth)
	}
	return nil
}

// CheckPop reports underflow if fewer than count items are available.
func (c *BoundsChecker) CheckPop(depth, count int) error {
	if depth < count {
		return fmt.Errorf("%w: need %d items, have %d", ErrStackUnderflow, count, depth)
	}
	return nil
}

// CheckDup validates a DUPn: n items must be present and there must be
// room for the copy.
func (c *BoundsChecker) CheckDup(depth, n int) error {
	if n < 1 || depth < n {
		return fmt.Errorf("%w: DUP%d needs %d items, have %d", ErrStackUnderflow, n, n, depth)
	}
	if depth >= c.maxDepth {
		return fmt.Errorf("%w: DUP%d at depth %d", ErrStackOverflow, n, depth)
	}
	return nil
}

// CheckSwap validates a SWAPn: n+1 items must be present. Depth is
// unchanged by the swap itself.
func (c *BoundsChecker) CheckSwap(depth, n int) error {
	if n < 1 || depth < n+1 {
		return fmt.Errorf("%w: SWAP%d needs %d items, have %d", ErrStackUnderflow, n, n+1, depth)
	}
	return nil
}

// CheckEffect validates an arbitrary stack effect against the current
// depth: enough items to pop, and the resulting depth within the limit.
func (c *BoundsChecker) CheckEffect(depth int, effect StackEffect) error {
	if err := c.CheckPop(depth, effect.Pops); err != nil {
		return err
	}
	if after := depth + effect.Delta(); after > c.maxDepth {
		return fmt.Errorf("%w: effect would reach depth %d (limit %d)", ErrStackOverflow, after, c.maxDepth)
	}
	return nil
}

// HeightTracker walks a sequence of stack effects, recording the current,
// minimum and maximum heights reached. It is the static-analysis
// counterpart of the runtime checks above, used to validate linear code
// sections before execution.
type HeightTracker struct {
	current int
	min     int
	max     int
	checker *BoundsChecker
}

// NewHeightTracker returns a tracker starting at the given height, bounded
// by the protocol StackLimit.
func NewHeightTracker(initial int) *HeightTracker {
	return &HeightTracker{
		current: initial,
		min:     initial,
		max:     initial,
		checker: NewBoundsChecker(),
	}
}

// Apply validates one stack effect at the current height and records the
// resulting height. On error the tracker is left unchanged.
func (t *HeightTracker) Apply(effect StackEffect) error {
	if err := t.checker.CheckEffect(t.current, effect); err != nil {
		return err
	}
	t.current += effect.Delta()
	if t.current < t.min {
		t.min = t.current
	}
	if t.current > t.max {
		t.max = t.current
	}
	return nil
}

// ApplySequence applies effects in order, stopping at the first violation.
// It returns the final height and the index of the failing effect (-1 on
// success) wrapped into the error.
func (t *HeightTracker) ApplySequence(effects []StackEffect) (int, error) {
	for i, e := range effects {
		if err := t.Apply(e); err != nil {
			return t.current, fmt.Errorf("effect %d: %w", i, err)
		}
	}
	return t.current, nil
}

// Current returns the height after the effects applied so far.
func (t *HeightTracker) Current() int { return t.current }

// Min returns the lowest height reached.
func (t *HeightTracker) Min() int { return t.min }

// Max returns the highest height reached.
func (t *HeightTracker) Max() int { return t.max }
