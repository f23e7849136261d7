package vm

import (
	"errors"
	"testing"
)

func TestBoundsChecker_CheckPush(t *testing.T) {
	c := NewBoundsChecker()

	if err := c.CheckPush(0); err != nil {
		t.Errorf("CheckPush(0): %v", err)
	}
	if err := c.CheckPush(StackLimit - 1); err != nil {
		t.Errorf("CheckPush(%d): %v", StackLimit-1, err)
	}
	err := c.CheckPush(StackLimit)
	if !errors.Is(err, ErrStackOverflow) {
		t.Errorf("CheckPush(%d) = %v, want ErrStackOverflow", StackLimit, err)
	}
}

func TestBoundsChecker_CheckPop(t *testing.T) {
	c := NewBoundsChecker()

	if err := c.CheckPop(2, 2); err != nil {
		t.Errorf("CheckPop(2, 2): %v", err)
	}
	err := c.CheckPop(1, 2)
	if !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("CheckPop(1, 2) = %v, want ErrStackUnderflow", err)
	}
}

func TestBoundsChecker_CheckDup(t *testing.T) {
	c := NewBoundsChecker()

	if err := c.CheckDup(3, 3); err != nil {
		t.Errorf("CheckDup(3, 3): %v", err)
	}
	if err := c.CheckDup(2, 3); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("CheckDup(2, 3) = %v, want ErrStackUnderflow", err)
	}
	if err := c.CheckDup(5, 0); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("CheckDup(5, 0) = %v, want ErrStackUnderflow", err)
	}
	if err := c.CheckDup(StackLimit, 1); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("CheckDup at limit = %v, want ErrStackOverflow", err)
	}
}

func TestBoundsChecker_CheckSwap(t *testing.T) {
	c := NewBoundsChecker()

	if err := c.CheckSwap(2, 1); err != nil {
		t.Errorf("CheckSwap(2, 1): %v", err)
	}
	if err := c.CheckSwap(1, 1); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("CheckSwap(1, 1) = %v, want ErrStackUnderflow", err)
	}
	if err := c.CheckSwap(3, 0); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("CheckSwap(3, 0) = %v, want ErrStackUnderflow", err)
	}
}

func TestBoundsChecker_CheckEffect(t *testing.T) {
	c := NewBoundsCheckerWithLimit(10)

	// A binary op at depth 2: pops 2, pushes 1.
	if err := c.CheckEffect(2, StackEffect{Pops: 2, Pushes: 1}); err != nil {
		t.Errorf("CheckEffect binary op: %v", err)
	}
	if err := c.CheckEffect(1, StackEffect{Pops: 2, Pushes: 1}); !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("CheckEffect underflow = %v, want ErrStackUnderflow", err)
	}
	if err := c.CheckEffect(10, StackEffect{Pops: 0, Pushes: 1}); !errors.Is(err, ErrStackOverflow) {
		t.Errorf("CheckEffect overflow = %v, want ErrStackOverflow", err)
	}
}

func TestBoundsChecker_LimitFallback(t *testing.T) {
	if got := NewBoundsCheckerWithLimit(0).MaxDepth(); got != StackLimit {
		t.Errorf("MaxDepth() = %d with zero limit, want %d", got, StackLimit)
	}
	if got := NewBoundsCheckerWithLimit(16).MaxDepth(); got != 16 {
		t.Errorf("MaxDepth() = %d, want 16", got)
	}
}

func TestStackEffect_Delta(t *testing.T) {
	if d := (StackEffect{Pops: 2, Pushes: 1}).Delta(); d != -1 {
		t.Errorf("Delta() = %d, want -1", d)
	}
	if d := (StackEffect{Pops: 0, Pushes: 1}).Delta(); d != 1 {
		t.Errorf("Delta() = %d, want 1", d)
	}
}

func TestHeightTracker_Sequence(t *testing.T) {
	tr := NewHeightTracker(0)

	// PUSH, PUSH, ADD, PUSH: heights 1, 2, 1, 2.
	final, err := tr.ApplySequence([]StackEffect{
		{Pops: 0, Pushes: 1},
		{Pops: 0, Pushes: 1},
		{Pops: 2, Pushes: 1},
		{Pops: 0, Pushes: 1},
	})
	if err != nil {
		t.Fatalf("ApplySequence: %v", err)
	}
	if final != 2 {
		t.Errorf("final height = %d, want 2", final)
	}
	if tr.Max() != 2 {
		t.Errorf("Max() = %d, want 2", tr.Max())
	}
	if tr.Min() != 0 {
		t.Errorf("Min() = %d, want 0", tr.Min())
	}
}

func TestHeightTracker_UnderflowStopsSequence(t *testing.T) {
	tr := NewHeightTracker(1)

	_, err := tr.ApplySequence([]StackEffect{
		{Pops: 1, Pushes: 0}, // ok, height 0
		{Pops: 1, Pushes: 0}, // underflow
		{Pops: 0, Pushes: 1}, // never reached
	})
	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("ApplySequence = %v, want ErrStackUnderflow", err)
	}
	if tr.Current() != 0 {
		t.Errorf("Current() = %d after failed effect, want 0", tr.Current())
	}
}

func TestHeightTracker_FailedApplyLeavesStateUnchanged(t *testing.T) {
	tr := NewHeightTracker(2)

	if err := tr.Apply(StackEffect{Pops: 5, Pushes: 0}); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("Apply = %v, want ErrStackUnderflow", err)
	}
	if tr.Current() != 2 || tr.Min() != 2 || tr.Max() != 2 {
		t.Errorf("tracker moved on failed Apply: current=%d min=%d max=%d, want all 2",
			tr.Current(), tr.Min(), tr.Max())
	}
}
