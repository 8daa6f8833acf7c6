// Package report renders the outcome of one scan run, both as console
// output and as an optional YAML artifact.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"aliasguard/pkg/engine"
)

// Report is the serialized form of one scan run.
type Report struct {
	ScanID      string        `yaml:"scan_id"`
	GeneratedAt time.Time     `yaml:"generated_at"`
	Scanned     int           `yaml:"scanned"`
	Compromised int           `yaml:"compromised"`
	Deactivated int           `yaml:"deactivated"`
	Failed      int           `yaml:"failed"`
	Results     []AliasResult `yaml:"results"`
}

// AliasResult is the per-alias entry in a report.
type AliasResult struct {
	AliasID               string   `yaml:"alias_id"`
	Email                 string   `yaml:"email"`
	Description           string   `yaml:"description,omitempty"`
	BreachCount           int      `yaml:"breach_count"`
	Breaches              []string `yaml:"breaches,omitempty"`
	DeactivationAttempted bool     `yaml:"deactivation_attempted"`
	Deactivated           bool     `yaml:"deactivated"`
	LookupError           string   `yaml:"lookup_error,omitempty"`
	DeactivationError     string   `yaml:"deactivation_error,omitempty"`
}

// New builds a report from the engine's per-alias results.
func New(scanID string, results []engine.ScanResult) *Report {
	summary := engine.Summarize(results)
	report := &Report{
		ScanID:      scanID,
		GeneratedAt: time.Now().UTC(),
		Scanned:     summary.Scanned,
		Compromised: summary.Compromised,
		Deactivated: summary.Deactivated,
		Failed:      summary.Failed,
		Results:     make([]AliasResult, 0, len(results)),
	}

	for _, r := range results {
		entry := AliasResult{
			AliasID:               r.AliasID,
			Email:                 r.Email,
			Description:           r.Description,
			BreachCount:           len(r.Breaches),
			Breaches:              engine.BreachNames(r.Breaches),
			DeactivationAttempted: r.DeactivationAttempted,
			Deactivated:           r.Deactivated(),
		}
		if r.LookupErr != nil {
			entry.LookupError = r.LookupErr.Error()
		}
		if r.DeactivateErr != nil {
			entry.DeactivationError = r.DeactivateErr.Error()
		}
		report.Results = append(report.Results, entry)
	}
	return report
}

// WriteYAML encodes the report to the writer.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// Save writes the report as YAML to the given path.
func (r *Report) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	return r.WriteYAML(f)
}

// Print writes a human-readable summary of the run.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "Breach Scan Report")
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "Scan ID:     %s\n", r.ScanID)
	fmt.Fprintf(w, "Scanned:     %d active aliases\n", r.Scanned)
	fmt.Fprintf(w, "Compromised: %d\n", r.Compromised)
	fmt.Fprintf(w, "Deactivated: %d\n", r.Deactivated)
	fmt.Fprintf(w, "Failed:      %d\n", r.Failed)

	for _, entry := range r.Results {
		if entry.BreachCount == 0 && entry.LookupError == "" {
			continue
		}

		fmt.Fprintf(w, "\n• %s", entry.Email)
		if entry.Description != "" {
			fmt.Fprintf(w, " (%s)", entry.Description)
		}
		fmt.Fprintln(w)

		if entry.LookupError != "" {
			fmt.Fprintf(w, "  Lookup failed: %s\n", entry.LookupError)
			continue
		}
		fmt.Fprintf(w, "  Found in %d breach(es): %s\n", entry.BreachCount, strings.Join(entry.Breaches, ", "))
		switch {
		case entry.Deactivated:
			fmt.Fprintln(w, "  Deactivated")
		case entry.DeactivationError != "":
			fmt.Fprintf(w, "  Deactivation failed: %s\n", entry.DeactivationError)
		}
	}
}
