package domain

import "time"

// SpecStatus is the outcome of a single spec.
type SpecStatus string

// Spec outcomes.
const (
	SpecPassed  SpecStatus = "passed"
	SpecFailed  SpecStatus = "failed"
	SpecPending SpecStatus = "pending"
)

// SpecResult is the outcome of one it() declaration.
type SpecResult struct {
	Suite       string        `json:"suite"`
	Description string        `json:"description"`
	FullName    string        `json:"fullName"`
	Status      SpecStatus    `json:"status"`
	Failures    []string      `json:"failures,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// SpecReport aggregates the results of a spec run.
type SpecReport struct {
	Results []SpecResult
}

// Add appends a result.
func (r *SpecReport) Add(res SpecResult) {
	r.Results = append(r.Results, res)
}

// Count returns how many results have the given status.
func (r *SpecReport) Count(status SpecStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any spec failed.
func (r *SpecReport) Failed() bool {
	return r.Count(SpecFailed) > 0
}
