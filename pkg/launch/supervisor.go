package launch

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/vertti/pmlaunch/pkg/childenv"
	"github.com/vertti/pmlaunch/pkg/redact"
)

// Supervisor spawns a plan's child process and relays its output. The child
// is invoked directly (runtime executable + script path), never through a
// shell, with stdin discarded. Stderr is always relayed through the
// redactor; stdout is relayed only when RelayStdout is set and is otherwise
// suppressed.
type Supervisor struct {
	Stdout      io.Writer
	Stderr      io.Writer
	RelayStdout bool
	Redactor    *redact.Redactor
}

// Run executes the plan to completion. A non-nil error means the child
// could not be started at all; otherwise the outcome carries the child's
// exit code or terminating signal. There are no retries.
func (s *Supervisor) Run(plan *Plan) (Outcome, error) {
	args := append([]string{plan.Entrypoint}, plan.Args...)
	cmd := exec.Command(plan.Runtime, args...)
	cmd.Env = childenv.Flatten(plan.Env)
	cmd.Stdin = nil

	if s.RelayStdout {
		cmd.Stdout = redact.NewWriter(s.Stdout, s.Redactor)
	} else {
		cmd.Stdout = io.Discard
	}
	cmd.Stderr = redact.NewWriter(s.Stderr, s.Redactor)

	err := cmd.Run()
	if err == nil {
		return Outcome{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := signalName(exitErr); ok {
			return Outcome{ExitCode: -1, Signal: sig}, nil
		}
		code := exitErr.ExitCode()
		if code < 0 {
			// Indeterminate exit status defaults to failure.
			code = FailureCode
		}
		return Outcome{ExitCode: code}, nil
	}
	return Outcome{}, fmt.Errorf("failed to start %s: %w", plan.Runtime, err)
}
