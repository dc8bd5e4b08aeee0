// Package profile attributes hardware cycles to named regions of code.
//
// A [Profiler] owns a session: a fixed-capacity table of [Anchor] records, one
// per label, and a cursor naming the block that is currently open.
// Instrumented code opens a [Block] on entry to a region and ends it on exit.
// Ending a block adds its elapsed cycles to its own anchor and subtracts them
// from its parent's exclusive total, so every cycle is exclusive to exactly one
// region while inclusive totals stay correct under recursion.
//
// Typical usage creates a [Config], registers flags, then wraps the program:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//
//	p, err := cfg.NewProfiler()
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	p.Start()
//	work(p)
//	err = p.EndAndReport()
//
// Regions are marked with a deferred [Block.End]:
//
//	func work(p *profile.Profiler) {
//	    defer p.BeginBlock("work").End()
//	    // ...
//	}
//
// The report goes to [Config.Output], else the file named by the PROFILE_OUT
// environment variable, else standard output.
//
// A Profiler is not safe for concurrent use: the parent cursor assumes a
// single call stack. Use one Profiler per goroutine.
// A nil *Profiler is valid and records nothing.
package profile
