package report

import "fmt"

// Status classifies the outcome of a single validation check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Check records the outcome of one named check within a run.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Line renders the streamed per-check output line.
func (c Check) Line() string {
	return fmt.Sprintf("[%s] %-13s %s", c.Status, c.Name, c.Detail)
}

// Report is the ordered record of check outcomes for one run. It is built
// once per invocation and never persisted.
type Report struct {
	checks []Check
}

func New() *Report {
	return &Report{}
}

// Add appends a completed check outcome.
func (r *Report) Add(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the executed checks in order.
func (r *Report) Checks() []Check {
	return r.checks
}

// Passed counts checks that did not fail (warnings are advisory).
func (r *Report) Passed() int {
	n := 0
	for _, c := range r.checks {
		if c.Status != StatusFail {
			n++
		}
	}
	return n
}

// Failed counts failed checks.
func (r *Report) Failed() int {
	return len(r.checks) - r.Passed()
}

// OK reports whether every executed check passed. Skipped checks never
// appear in the report, so they are excluded by construction.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Summary renders the final aggregate line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d/%d checks passed", r.Passed(), len(r.checks))
}
