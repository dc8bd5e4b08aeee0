// Package workload is a small deterministic program instrumented with
// [profile] blocks. It exercises the profiler's nesting, recursion and
// throughput reporting end to end.
package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"

	"go.jacobcolvin.com/cycleprof/profile"
)

// ErrInvalidConfig indicates a [Config] value out of range.
var ErrInvalidConfig = errors.New("invalid workload config")

// Config sizes each stage of the workload.
type Config struct {
	// Size is the number of bytes generated, hashed and compressed.
	Size int
	// Seed seeds the byte generator.
	Seed uint64
	// FibDepth is the argument to the recursive Fibonacci stage.
	FibDepth int
	// PingPongDepth is the depth of the mutually recursive stage.
	PingPongDepth int
}

// DefaultConfig returns a workload that takes a few milliseconds.
func DefaultConfig() Config {
	return Config{
		Size:          4 << 20,
		Seed:          1,
		FibDepth:      20,
		PingPongDepth: 32,
	}
}

// Result holds the outputs of each stage so callers can check the work was
// done.
type Result struct {
	Checksum       uint64
	CompressedSize int
	Fib            uint64
	PingPong       int
}

// Run executes every stage under an outer "workload" block.
func Run(p *profile.Profiler, cfg Config) (Result, error) {
	if cfg.Size < 0 || cfg.FibDepth < 0 || cfg.PingPongDepth < 0 {
		return Result{}, fmt.Errorf("%w: sizes must not be negative", ErrInvalidConfig)
	}

	defer p.BeginBlock("workload").End()

	var (
		res Result
		err error
	)

	data := generate(p, cfg.Size, cfg.Seed)
	res.Checksum = checksum(p, data)

	res.CompressedSize, err = compress(p, data)
	if err != nil {
		return Result{}, err
	}

	res.Fib = fib(p, cfg.FibDepth)
	res.PingPong = ping(p, cfg.PingPongDepth)

	return res, nil
}

// words is the vocabulary [generate] draws from. A small fixed vocabulary
// gives the compressor repeated sequences to match.
var words = [...]string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
	"india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa",
}

// generate fills size bytes with space-separated words picked by a seeded
// PCG. The last word is truncated to fit.
func generate(p *profile.Profiler, size int, seed uint64) []byte {
	defer p.BeginBlockWithBandwidth("generate", uint64(size)).End()

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // Deterministic test data.

	data := make([]byte, 0, size+len("november "))
	for len(data) < size {
		data = append(data, words[rng.IntN(len(words))]...)
		data = append(data, ' ')
	}

	return data[:size]
}

func checksum(p *profile.Profiler, data []byte) uint64 {
	defer p.BeginBlockWithBandwidth("checksum", uint64(len(data))).End()

	return xxh3.Hash(data)
}

func compress(p *profile.Profiler, data []byte) (int, error) {
	defer p.BeginBlockWithBandwidth("compress", uint64(len(data))).End()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return 0, fmt.Errorf("create zstd encoder: %w", err)
	}

	out := enc.EncodeAll(data, nil)

	err = enc.Close()
	if err != nil {
		return 0, fmt.Errorf("close zstd encoder: %w", err)
	}

	return len(out), nil
}

func fib(p *profile.Profiler, n int) uint64 {
	defer p.BeginBlock("fib").End()

	if n < 2 {
		return uint64(n)
	}

	return fib(p, n-1) + fib(p, n-2)
}

func ping(p *profile.Profiler, depth int) int {
	defer p.BeginBlock("ping").End()

	if depth == 0 {
		return 0
	}

	return pong(p, depth-1) + 1
}

func pong(p *profile.Profiler, depth int) int {
	defer p.BeginBlock("pong").End()

	if depth == 0 {
		return 0
	}

	return ping(p, depth-1) + 1
}
