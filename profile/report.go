package profile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/cycleprof/cpuclock"
)

const (
	megabyte = 1024 * 1024
	gigabyte = megabyte * 1024
)

// Format is a report output format.
type Format string

const (
	// FormatText is the human-readable line-oriented report.
	FormatText Format = "text"
	// FormatJSON is the [Report] as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is the [Report] as YAML.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an unrecognized report format string.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat parses a report format string.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(allFormats, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

var allFormats = []Format{FormatText, FormatJSON, FormatYAML}

// GetAllFormatStrings returns every supported report format.
func GetAllFormatStrings() []string {
	s := make([]string, 0, len(allFormats))
	for _, f := range allFormats {
		s = append(s, string(f))
	}

	return s
}

// Report is the rendered result of a session.
type Report struct {
	Entries     []Entry `json:"entries" yaml:"entries" jsonschema:"measured regions in first-seen order"`
	FrequencyHz uint64  `json:"frequencyHz" yaml:"frequencyHz" jsonschema:"calibrated cycle counter frequency"`
	TotalCycles uint64  `json:"totalCycles" yaml:"totalCycles" jsonschema:"cycles between session start and end"`
	TotalMillis float64 `json:"totalMillis" yaml:"totalMillis" jsonschema:"session duration in milliseconds"`
}

// Entry is one reported region.
type Entry struct {
	Label              string  `json:"label" yaml:"label"`
	Hits               uint64  `json:"hits" yaml:"hits"`
	ExclusiveCycles    uint64  `json:"exclusiveCycles" yaml:"exclusiveCycles"`
	InclusiveCycles    uint64  `json:"inclusiveCycles" yaml:"inclusiveCycles"`
	BytesProcessed     uint64  `json:"bytesProcessed,omitempty" yaml:"bytesProcessed,omitempty"`
	ExclusiveMillis    float64 `json:"exclusiveMillis" yaml:"exclusiveMillis"`
	ExclusivePercent   float64 `json:"exclusivePercent" yaml:"exclusivePercent"`
	InclusivePercent   float64 `json:"inclusivePercent" yaml:"inclusivePercent"`
	Megabytes          float64 `json:"megabytes,omitempty" yaml:"megabytes,omitempty"`
	GigabytesPerSecond float64 `json:"gigabytesPerSecond,omitempty" yaml:"gigabytesPerSecond,omitempty"`
}

// Report computes the session report. Every label with at least one hit is
// included, in the order it was first seen.
//
// The session end is the timestamp frozen by [Profiler.End], or the current
// cycle count if the session has not ended. Report panics if the clock
// frequency is zero. A nil profiler reports nothing.
func (p *Profiler) Report() Report {
	if p == nil {
		return Report{}
	}

	freq := p.frequency()
	if freq == 0 {
		panic(fmt.Errorf("%w: cycle counter frequency is zero", cpuclock.ErrBrokenTimer))
	}

	end := p.end
	if end == 0 {
		end = p.clock()
	}

	total := end - p.start

	r := Report{
		FrequencyHz: freq,
		TotalCycles: total,
		TotalMillis: millis(total, freq),
	}

	for _, a := range p.table.registered() {
		if a.Hits == 0 {
			continue
		}

		e := Entry{
			Label:            a.Label,
			Hits:             a.Hits,
			ExclusiveCycles:  a.ExclusiveCycles,
			InclusiveCycles:  a.InclusiveCycles,
			BytesProcessed:   a.BytesProcessed,
			ExclusiveMillis:  millis(a.ExclusiveCycles, freq),
			ExclusivePercent: percent(a.ExclusiveCycles, total),
			InclusivePercent: percent(a.InclusiveCycles, total),
		}

		if a.BytesProcessed != 0 {
			e.Megabytes = float64(a.BytesProcessed) / megabyte

			seconds := float64(a.InclusiveCycles) / float64(freq)
			if seconds > 0 {
				e.GigabytesPerSecond = float64(a.BytesProcessed) / seconds / gigabyte
			}
		}

		r.Entries = append(r.Entries, e)
	}

	return r
}

func millis(cycles, freq uint64) float64 {
	return 1000 * float64(cycles) / float64(freq)
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}

	return 100 * float64(part) / float64(total)
}

// Write encodes the report to w in format f.
func (r Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.WriteText(w)

	case FormatJSON:
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		_, err = w.Write(append(out, '\n'))
		if err != nil {
			return fmt.Errorf("write json: %w", err)
		}

		return nil

	case FormatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		_, err = w.Write(out)
		if err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}

		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteText writes the human-readable report:
//
//	Performance report:
//	    CPU frequency: 3000000000hz
//	    Total time = 12.3456ms
//	parse[1]: 4.5000000000ms (36.45%, 100.00% w/children)
//	copy[4]: 7.8000000000ms (63.18%) 16.000MBs at 2.00GB/s
//
// The inclusive percentage appears only when it differs from the exclusive one,
// and throughput only for regions that declared a payload.
func (r Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Performance report:")
	fmt.Fprintf(bw, "    CPU frequency: %dhz\n", r.FrequencyHz)
	fmt.Fprintf(bw, "    Total time = %.4fms\n", r.TotalMillis)

	for _, e := range r.Entries {
		fmt.Fprintf(bw, "%s[%d]: %.10fms (%.2f%%", e.Label, e.Hits, e.ExclusiveMillis, e.ExclusivePercent)

		if e.InclusiveCycles != e.ExclusiveCycles {
			fmt.Fprintf(bw, ", %.2f%% w/children", e.InclusivePercent)
		}

		bw.WriteByte(')')

		if e.BytesProcessed != 0 {
			fmt.Fprintf(bw, " %.3fMBs at %.2fGB/s", e.Megabytes, e.GigabytesPerSecond)
		}

		bw.WriteByte('\n')
	}

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("write text: %w", err)
	}

	return nil
}

// ReportSchema returns the JSON Schema describing the [FormatJSON] and
// [FormatYAML] encodings of a [Report].
func ReportSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Report](nil)
	if err != nil {
		return nil, fmt.Errorf("infer report schema: %w", err)
	}

	return s, nil
}
