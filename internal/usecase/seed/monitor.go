package seed

import "context"

// CancellationMonitor reports whether a seeding run should stop early.
// The run polls it once before each title, never mid-generation, so an
// in-flight generation always completes before the run reacts.
type CancellationMonitor interface {
	// Cancelled returns true once the run should stop.
	// Implementations must be safe for concurrent use.
	Cancelled() bool
}

// ContextMonitor adapts a context to CancellationMonitor, reporting
// cancellation once the context is done.
type ContextMonitor struct {
	ctx context.Context
}

// NewContextMonitor creates a monitor backed by ctx.
func NewContextMonitor(ctx context.Context) *ContextMonitor {
	return &ContextMonitor{ctx: ctx}
}

// Cancelled implements CancellationMonitor.
func (m *ContextMonitor) Cancelled() bool {
	return m.ctx.Err() != nil
}
