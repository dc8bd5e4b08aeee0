package profile

// Block is one open measurement. Create it with [Profiler.BeginBlock] or
// [Profiler.BeginBlockWithBandwidth] and call [Block.End] exactly once when the
// region exits, normally with defer.
//
// The zero Block is inert.
type Block struct {
	p              *Profiler
	label          string
	start          uint64
	savedInclusive uint64
	bytes          uint64
	anchor         int
	parent         int
}

// BeginBlock opens a block for label under the block that is currently open.
func (p *Profiler) BeginBlock(label string) Block {
	return p.BeginBlockWithBandwidth(label, 0)
}

// BeginBlockWithBandwidth opens a block for label that processes bytes of
// payload. The payload is summed into the anchor and reported as throughput.
func (p *Profiler) BeginBlockWithBandwidth(label string, bytes uint64) Block {
	if p == nil {
		return Block{}
	}

	idx := p.table.resolve(label)

	b := Block{
		p:              p,
		label:          label,
		bytes:          bytes,
		anchor:         idx,
		parent:         p.parent,
		savedInclusive: p.table.anchors[idx].InclusiveCycles,
	}

	p.parent = idx

	// Read the clock last so the bookkeeping above is not measured.
	b.start = p.clock()

	return b
}

// End closes the block, attributing its elapsed cycles to its anchor and
// removing them from its parent's exclusive total.
func (b Block) End() {
	p := b.p
	if p == nil {
		return
	}

	elapsed := p.clock() - b.start

	p.parent = b.parent

	a := &p.table.anchors[b.anchor]
	a.ExclusiveCycles += elapsed
	// The outermost of a recursive chain finishes last and its elapsed spans
	// every inner call, so overwriting here never double counts.
	a.InclusiveCycles = b.savedInclusive + elapsed
	a.Hits++
	a.BytesProcessed += b.bytes
	a.Label = b.label

	// Wraps below zero while the parent is still open; the parent's own
	// elapsed brings it back when it ends.
	p.table.anchors[b.parent].ExclusiveCycles -= elapsed
}
