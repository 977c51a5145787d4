// Package report renders capacity snapshots, analytics and ledgers for
// terminals and machine consumers.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

// Format selects an output encoding.
type Format string

const (
	// FormatTable is a human-readable table format.
	FormatTable Format = "table"
	// FormatJSON is JSON for machine consumption.
	FormatJSON Format = "json"
	// FormatYAML is YAML for declarative consumers.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format string, typically a flag value.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("report: unsupported format %q (supported: table, json, yaml)", s)
	}
}

// Renderer turns model values into printable text. The zero value renders
// tables with headers against the wall clock.
type Renderer struct {
	// Format selects the encoding; unset means table.
	Format Format
	// NoHeaders omits the header row in table format.
	NoHeaders bool
	// Now anchors tier classification; zero means time.Now.
	Now time.Time
}

func (r *Renderer) now() time.Time {
	if r.Now.IsZero() {
		return time.Now()
	}
	return r.Now
}

// RenderStatus formats one capacity snapshot.
func (r *Renderer) RenderStatus(st storage.Status) (string, error) {
	switch r.Format {
	case FormatJSON:
		return marshalJSON(st)
	case FormatYAML:
		return marshalYAML(st)
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Physical limit:\t%.2f GB\n", st.PhysicalLimitGB)
	fmt.Fprintf(w, "Virtual capacity:\t%.2f GB\n", st.VirtualCapacityGB)
	fmt.Fprintf(w, "Multiplier:\tx%.2f\n", st.Multiplier)
	fmt.Fprintf(w, "Virtual used:\t%.2f GB\n", st.UsedVirtualGB)
	fmt.Fprintf(w, "Physical used:\t%.2f GB\n", st.UsedPhysicalGB)
	fmt.Fprintf(w, "Efficiency:\tx%.2f\n", st.Efficiency)
	fmt.Fprintf(w, "Files:\t%d\n", st.FileCount)
	_ = w.Flush()
	return buf.String(), nil
}

// RenderFiles formats the ledger. Table rows carry the access tier
// relative to the renderer clock.
func (r *Renderer) RenderFiles(files []storage.TrackedFile) (string, error) {
	switch r.Format {
	case FormatJSON:
		return marshalJSON(files)
	case FormatYAML:
		return marshalYAML(files)
	}

	if len(files) == 0 {
		return "No files tracked\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !r.NoHeaders {
		fmt.Fprintln(w, "NAME\tVIRTUAL\tPHYSICAL\tRATIO\tTIER\tREADS")
	}

	now := r.now()
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\t%s\t%d\n",
			f.Name, f.VirtualSize.Humanized(), f.PhysicalSize.Humanized(),
			f.CompressionRatio*100, storage.TierFor(f.LastAccess, now), f.AccessCount)
	}

	_ = w.Flush()
	return buf.String(), nil
}

// RenderAnalytics formats the prediction summary.
func (r *Renderer) RenderAnalytics(a storage.Analytics) (string, error) {
	switch r.Format {
	case FormatJSON:
		return marshalJSON(a)
	case FormatYAML:
		return marshalYAML(a)
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !r.NoHeaders {
		fmt.Fprintln(w, "FILE\tCOMPRESSION")
	}
	for _, name := range sortedKeys(a.FileCompressionPct) {
		fmt.Fprintf(w, "%s\t%.1f%%\n", name, a.FileCompressionPct[name])
	}

	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "Average compression:\t%.1f%%\n", a.AvgCompressionPct)
	fmt.Fprintf(w, "Predicted next multiplier:\tx%.2f\n", a.PredictedNextMultiplier)
	fmt.Fprintf(w, "Predicted storage efficiency:\t%.1f%%\n", a.PredictedEfficiencyPct)

	_ = w.Flush()
	return buf.String(), nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal json: %w", err)
	}
	return string(data) + "\n", nil
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("report: marshal yaml: %w", err)
	}
	return string(data), nil
}
