package profile_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/cycleprof/profile"
)

// sampleSession records 1.5s at 1MHz: "parse" wraps a 1s "copy" of 1MiB.
func sampleSession(t *testing.T, opts ...profile.Option) *profile.Profiler {
	t.Helper()

	p, clk := newTestProfiler(t, opts...)

	parse := p.BeginBlock("parse")
	clk.Advance(250_000)

	cp := p.BeginBlockWithBandwidth("copy", 1<<20)
	clk.Advance(1_000_000)
	cp.End()

	clk.Advance(250_000)
	parse.End()

	p.End()

	return p
}

func TestReport_Text(t *testing.T) {
	t.Parallel()

	p := sampleSession(t)

	var buf bytes.Buffer

	require.NoError(t, p.Report().WriteText(&buf))

	want := strings.Join([]string{
		"Performance report:",
		"    CPU frequency: 1000000hz",
		"    Total time = 1500.0000ms",
		"parse[1]: 500.0000000000ms (33.33%, 100.00% w/children)",
		"copy[1]: 1000.0000000000ms (66.67%) 1.000MBs at 0.00GB/s",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestReport_Entries(t *testing.T) {
	t.Parallel()

	r := sampleSession(t).Report()

	assert.Equal(t, uint64(1_000_000), r.FrequencyHz)
	assert.Equal(t, uint64(1_500_000), r.TotalCycles)
	assert.InDelta(t, 1500.0, r.TotalMillis, 1e-9)

	require.Len(t, r.Entries, 2)

	parse := r.Entries[0]
	assert.Equal(t, "parse", parse.Label)
	assert.InDelta(t, 500.0, parse.ExclusiveMillis, 1e-9)
	assert.InDelta(t, 100.0, parse.InclusivePercent, 1e-9)
	assert.Zero(t, parse.Megabytes)

	cp := r.Entries[1]
	assert.Equal(t, "copy", cp.Label)
	assert.InDelta(t, 1.0, cp.Megabytes, 1e-12)
	assert.InDelta(t, 1.0/1024, cp.GigabytesPerSecond, 1e-12)
}

func TestReport_OmitsUnhitLabels(t *testing.T) {
	t.Parallel()

	p, clk := newTestProfiler(t)

	open := p.BeginBlock("open")
	clk.Advance(5)

	done := p.BeginBlock("done")
	clk.Advance(5)
	done.End()

	r := p.Report()
	require.Len(t, r.Entries, 1)
	assert.Equal(t, "done", r.Entries[0].Label)

	open.End()
}

func TestReport_WithoutEnd(t *testing.T) {
	t.Parallel()

	p, clk := newTestProfiler(t)

	clk.Advance(42)
	assert.Equal(t, uint64(42), p.Report().TotalCycles)

	clk.Advance(8)
	assert.Equal(t, uint64(50), p.Report().TotalCycles)
}

func TestReport_ZeroTotal(t *testing.T) {
	t.Parallel()

	p, _ := newTestProfiler(t)

	p.BeginBlockWithBandwidth("instant", 64).End()
	p.End()

	var buf bytes.Buffer

	require.NoError(t, p.Report().WriteText(&buf))
	assert.Contains(t, buf.String(), "instant[1]: 0.0000000000ms (0.00%) 0.000MBs at 0.00GB/s\n")
}

func TestReport_ZeroFrequencyPanics(t *testing.T) {
	t.Parallel()

	p, _ := newTestProfiler(t, profile.WithFrequency(func() uint64 { return 0 }))

	assert.Panics(t, func() {
		p.Report()
	})
}

func TestReport_Write(t *testing.T) {
	t.Parallel()

	r := sampleSession(t).Report()

	tcs := map[string]struct {
		checkFunc func(*testing.T, []byte)
		format    profile.Format
	}{
		"text": {
			format: profile.FormatText,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()
				assert.True(t, bytes.HasPrefix(out, []byte("Performance report:\n")))
			},
		},
		"json": {
			format: profile.FormatJSON,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()

				var got map[string]any

				require.NoError(t, json.Unmarshal(out, &got))
				assert.Equal(t, float64(1_000_000), got["frequencyHz"])

				entries, ok := got["entries"].([]any)
				require.True(t, ok)
				require.Len(t, entries, 2)

				first, ok := entries[0].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "parse", first["label"])
				assert.NotContains(t, first, "bytesProcessed")
			},
		},
		"yaml": {
			format: profile.FormatYAML,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()

				s := string(out)
				assert.Contains(t, s, "frequencyHz: 1000000")
				assert.Contains(t, s, "label: copy")
				assert.Contains(t, s, "bytesProcessed: 1048576")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			require.NoError(t, r.Write(&buf, tc.format))
			tc.checkFunc(t, buf.Bytes())
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		err := r.Write(&bytes.Buffer{}, profile.Format("xml"))
		require.ErrorIs(t, err, profile.ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    profile.Format
		expectError bool
	}{
		"text":             {input: "text", expected: profile.FormatText},
		"json":             {input: "json", expected: profile.FormatJSON},
		"yaml":             {input: "yaml", expected: profile.FormatYAML},
		"case insensitive": {input: "YAML", expected: profile.FormatYAML},
		"unknown":          {input: "csv", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := profile.ParseFormat(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, profile.ErrUnknownFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestReportSchema(t *testing.T) {
	t.Parallel()

	s, err := profile.ReportSchema()
	require.NoError(t, err)

	require.Contains(t, s.Properties, "entries")
	require.Contains(t, s.Properties, "frequencyHz")
	assert.Equal(t, "calibrated cycle counter frequency", s.Properties["frequencyHz"].Description)
	assert.Contains(t, s.Required, "totalCycles")
}

func TestProfiler_EndAndReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	clk := &fakeClock{}
	p := profile.New(&buf,
		profile.WithClock(clk.Read),
		profile.WithFrequency(func() uint64 { return 1000 }),
		profile.WithFormat(profile.FormatText),
	)
	p.Start()

	b := p.BeginBlock("main")
	clk.Advance(2000)
	b.End()

	require.NoError(t, p.EndAndReport())
	assert.Equal(t, strings.Join([]string{
		"Performance report:",
		"    CPU frequency: 1000hz",
		"    Total time = 2000.0000ms",
		"main[1]: 2000.0000000000ms (100.00%)",
		"",
	}, "\n"), buf.String())

	require.NoError(t, p.Close())
}
