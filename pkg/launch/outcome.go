package launch

// FailureCode is the fixed exit code for planning failures, spawn failures
// and signal-terminated children.
const FailureCode = 1

// Outcome is the terminal result of the launched child.
type Outcome struct {
	ExitCode int
	Signal   string // signal name when the child was killed, else empty
}

// Status maps the outcome to this process's own exit code: the child's code
// on a normal exit, FailureCode for signals or indeterminate codes.
func (o Outcome) Status() int {
	if o.Signal != "" || o.ExitCode < 0 {
		return FailureCode
	}
	return o.ExitCode
}
