package profile

import (
	"fmt"
	"io"

	"go.jacobcolvin.com/cycleprof/cpuclock"
)

// Profiler is a profiling session. It owns the anchor table and is the only
// thing that mutates it, through the blocks it hands out.
//
// Create instances with [New] or [Config.NewProfiler].
type Profiler struct {
	out       io.Writer
	closer    io.Closer
	clock     func() uint64
	frequency func() uint64
	table     anchorTable
	format    Format
	parent    int
	start     uint64
	end       uint64
	capacity  int
}

// Option configures a [Profiler].
type Option func(*Profiler)

// WithClock sets the cycle source. The default is [cpuclock.Read].
func WithClock(clock func() uint64) Option {
	return func(p *Profiler) {
		p.clock = clock
	}
}

// WithFrequency sets the function that reports the clock frequency in Hz at
// report time. The default is [cpuclock.Frequency].
func WithFrequency(frequency func() uint64) Option {
	return func(p *Profiler) {
		p.frequency = frequency
	}
}

// WithCapacity sets the maximum number of distinct labels.
// Values less than 1 select [DefaultCapacity].
func WithCapacity(n int) Option {
	return func(p *Profiler) {
		if n < 1 {
			n = DefaultCapacity
		}

		p.capacity = n
	}
}

// WithFormat sets the format used by [Profiler.EndAndReport].
// The default is [FormatText].
func WithFormat(f Format) Option {
	return func(p *Profiler) {
		p.format = f
	}
}

// New creates a [Profiler] that reports to w.
// Call [Profiler.Start] to begin measuring.
func New(w io.Writer, opts ...Option) *Profiler {
	p := &Profiler{
		out:       w,
		clock:     cpuclock.Read,
		frequency: cpuclock.Frequency,
		format:    FormatText,
		capacity:  DefaultCapacity,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.table = newAnchorTable(p.capacity)
	p.start = p.clock()

	return p
}

// Start begins a new measurement epoch, discarding every anchor, label and
// timestamp recorded so far.
func (p *Profiler) Start() {
	if p == nil {
		return
	}

	p.table.reset()
	p.parent = 0
	p.end = 0
	p.start = p.clock()
}

// End freezes the session end timestamp used by [Profiler.Report].
func (p *Profiler) End() {
	if p == nil {
		return
	}

	p.end = p.clock()
}

// EndAndReport ends the session and writes the report to the profiler's
// destination.
func (p *Profiler) EndAndReport() error {
	if p == nil {
		return nil
	}

	p.End()

	err := p.Report().Write(p.out, p.format)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// Close closes the report destination if the profiler opened it.
func (p *Profiler) Close() error {
	if p == nil || p.closer == nil {
		return nil
	}

	err := p.closer.Close()
	p.closer = nil

	if err != nil {
		return fmt.Errorf("close report output: %w", err)
	}

	return nil
}

// Anchors returns a copy of every registered anchor, in the order their labels
// were first seen.
func (p *Profiler) Anchors() []Anchor {
	if p == nil {
		return nil
	}

	return append([]Anchor(nil), p.table.registered()...)
}

// Lookup returns the anchor registered for label.
func (p *Profiler) Lookup(label string) (Anchor, bool) {
	if p == nil {
		return Anchor{}, false
	}

	idx, ok := p.table.indexes[label]
	if !ok {
		return Anchor{}, false
	}

	return p.table.anchors[idx], true
}
