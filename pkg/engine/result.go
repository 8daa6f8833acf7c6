package engine

import "aliasguard/pkg/breach"

// ScanResult records the outcome of scanning one active alias.
type ScanResult struct {
	AliasID     string
	Email       string
	Description string

	// Breaches found for the address; empty when the alias is clean
	// or the lookup failed.
	Breaches  []breach.Breach
	LookupErr error

	// DeactivationAttempted is true exactly when the lookup succeeded
	// with one or more breaches, regardless of the breach count.
	DeactivationAttempted bool
	DeactivateErr         error
}

// Compromised reports whether the lookup found the address in at
// least one breach.
func (r ScanResult) Compromised() bool {
	return len(r.Breaches) > 0
}

// Deactivated reports whether the alias was successfully deactivated
// during this scan.
func (r ScanResult) Deactivated() bool {
	return r.DeactivationAttempted && r.DeactivateErr == nil
}

// Failed reports whether any step for this alias errored.
func (r ScanResult) Failed() bool {
	return r.LookupErr != nil || r.DeactivateErr != nil
}

// Summary aggregates one run.
type Summary struct {
	Scanned     int
	Compromised int
	Deactivated int
	Failed      int
}

// Summarize folds per-alias results into run totals.
func Summarize(results []ScanResult) Summary {
	var s Summary
	s.Scanned = len(results)
	for _, r := range results {
		if r.Compromised() {
			s.Compromised++
		}
		if r.Deactivated() {
			s.Deactivated++
		}
		if r.Failed() {
			s.Failed++
		}
	}
	return s
}

// BreachNames lists the source names of the given breaches, for
// reporting and notifications.
func BreachNames(breaches []breach.Breach) []string {
	names := make([]string, 0, len(breaches))
	for _, b := range breaches {
		name := b.Title
		if name == "" {
			name = b.Name
		}
		names = append(names, name)
	}
	return names
}
