package scenario

import (
	"fmt"
	"io"
	"time"
)

// Check is the outcome of one scenario step.
type Check struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Detail   string        `json:"detail"`
	Duration time.Duration `json:"duration_ns"`
}

// Report collects the checks of one run.
type Report struct {
	RunID     string        `json:"run_id"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration_ns"`
	Checks    []Check       `json:"checks"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the names of failed checks.
func (r *Report) Failed() []string {
	var names []string
	for _, c := range r.Checks {
		if !c.Passed {
			names = append(names, c.Name)
		}
	}
	return names
}

// WriteText prints one line per check followed by a summary.
func (r *Report) WriteText(w io.Writer) error {
	for _, c := range r.Checks {
		mark := "PASS"
		if !c.Passed {
			mark = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "%s  %-22s %8s  %s\n", mark, c.Name, c.Duration.Round(time.Millisecond), c.Detail); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d checks, %d failed, run %s in %s\n",
		len(r.Checks), len(r.Failed()), r.RunID, r.Duration.Round(time.Millisecond))
	return err
}
