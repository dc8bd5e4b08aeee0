package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/cycleprof/cpuclock"
	"go.jacobcolvin.com/cycleprof/profile"
	"go.jacobcolvin.com/cycleprof/workload"
)

func TestCalibrate(t *testing.T) {
	t.Parallel()

	freqs := []uint64{2_000_000_000, 2_020_000_000, 2_010_000_000}
	estimate := func() uint64 {
		f := freqs[0]
		freqs = freqs[1:]

		return f
	}

	var buf bytes.Buffer

	infos := []cpu.InfoStat{{ModelName: "Test CPU", Mhz: 2000}}

	require.NoError(t, calibrate(&buf, 3, infos, estimate))

	want := strings.Join([]string{
		"counter: " + cpuclock.Name(),
		"cpu: Test CPU (nominal 2000MHz)",
		"run 1: 2000000000hz",
		"run 2: 2020000000hz",
		"run 3: 2010000000hz",
		"spread: 1.00%",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestCalibrate_ZeroFrequency(t *testing.T) {
	t.Parallel()

	err := calibrate(&bytes.Buffer{}, 1, nil, func() uint64 { return 0 })
	require.ErrorIs(t, err, cpuclock.ErrBrokenTimer)
}

func TestRun(t *testing.T) {
	if testing.Short() {
		t.Skip("calibrates the cycle counter")
	}

	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")

	cfg := profile.NewConfig()
	cfg.Output = path
	cfg.Format = "json"

	require.NoError(t, run(cfg, workload.Config{Size: 1024, Seed: 1, FibDepth: 5, PingPongDepth: 3}))

	out, err := os.ReadFile(path)
	require.NoError(t, err)

	var r profile.Report

	require.NoError(t, json.Unmarshal(out, &r))
	require.NotEmpty(t, r.Entries)
	assert.Equal(t, "workload", r.Entries[0].Label)
	assert.NotZero(t, r.FrequencyHz)
}

func TestRun_BadOutput(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cfg.Output = filepath.Join(t.TempDir(), "missing", "report.txt")

	err := run(cfg, workload.DefaultConfig())
	require.ErrorIs(t, err, profile.ErrOpenOutput)
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cmd := newSchemaCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var schema map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["properties"], "entries")
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "devel ("))
}
