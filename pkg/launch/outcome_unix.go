//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// signalName extracts the terminating signal from an exit error, if any.
func signalName(err *exec.ExitError) (string, bool) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return "", false
	}
	return ws.Signal().String(), true
}
