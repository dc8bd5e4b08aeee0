package profile

// RootExclusive returns the exclusive cycles held by the root anchor.
func (p *Profiler) RootExclusive() uint64 {
	return p.table.anchors[0].ExclusiveCycles
}
