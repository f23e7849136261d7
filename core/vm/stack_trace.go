package vm

// stack_trace.go implements step-by-step stack capture for debug tracing.
// The interpreter opts in by calling RecordStep before each instruction;
// nothing here runs on the hot path otherwise. Snapshots reuse the hex
// rendering from Dump, matching the debug_traceTransaction stack format.

import (
	"github.com/vmforge/evmstack/log"
)

// StackRecorderConfig controls what the recorder captures at each step.
type StackRecorderConfig struct {
	// CaptureSnapshots stores the full stack contents per step. Depth and
	// peak tracking are always on.
	CaptureSnapshots bool

	// Logger, when set, receives a debug line per recorded step.
	Logger *log.Logger
}

// StackStep is one recorded observation of the operand stack.
type StackStep struct {
	Depth    int      // stack size at this step
	Snapshot []string // hex contents bottom to top; nil unless snapshots are enabled
}

// StackRecorder collects per-step stack depth observations and optional
// snapshots during a frame's execution. Like the stack it observes, it
// belongs to a single frame and is not safe for concurrent use.
type StackRecorder struct {
	config StackRecorderConfig
	steps  []StackStep
	peak   int
}

// NewStackRecorder returns a recorder with the given config.
func NewStackRecorder(config StackRecorderConfig) *StackRecorder {
	return &StackRecorder{config: config}
}

// RecordStep records the stack's current state as one step.
func (r *StackRecorder) RecordStep(st *OperandStack) {
	step := StackStep{Depth: st.Size()}
	if r.config.CaptureSnapshots {
		step.Snapshot = st.Dump()
	}
	if step.Depth > r.peak {
		r.peak = step.Depth
	}
	r.steps = append(r.steps, step)

	if r.config.Logger != nil {
		r.config.Logger.Debug("stack step",
			"step", len(r.steps)-1,
			"depth", step.Depth,
			"overflowed", st.Overflowed(),
		)
	}
}

// Steps returns the recorded steps in execution order.
func (r *StackRecorder) Steps() []StackStep {
	return r.steps
}

// StepCount returns the number of steps recorded.
func (r *StackRecorder) StepCount() int {
	return len(r.steps)
}

// PeakDepth returns the highest stack depth observed.
func (r *StackRecorder) PeakDepth() int {
	return r.peak
}

// Reset clears the recorder so it can be reused for another frame.
func (r *StackRecorder) Reset() {
	r.steps = r.steps[:0]
	r.peak = 0
}
