//go:build windows

package launch

import "os/exec"

// signalName reports no signal on Windows; process death always surfaces as
// an exit code there.
func signalName(_ *exec.ExitError) (string, bool) {
	return "", false
}
