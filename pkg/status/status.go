// Package status holds the result type produced by the launcher's
// planning steps (manager detection, entrypoint resolution, environment
// composition).
package status

// State represents the outcome of a planning step.
type State string

const (
	StateOK   State = "OK"
	StateFail State = "FAIL"
)

// Result holds the outcome of a single planning step. The launcher collects
// one per stage so a run can be reported, and aborted, stage by stage.
type Result struct {
	Name    string   // e.g., "manager: pnpm", "entrypoint: npm"
	State   State    // OK or FAIL
	Details []string // report lines shown indented under the step name
	Err     error    // what stopped the stage, nil when it passed
}

// OK reports whether the planning step succeeded.
func (r Result) OK() bool {
	return r.State == StateOK
}
