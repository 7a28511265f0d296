//go:build unix

package launch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vertti/pmlaunch/pkg/redact"
)

// writeScript creates an executable-agnostic shell script; the supervisor
// runs it through /bin/sh the same way it runs a manager CLI through node.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "child.sh")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func shellPlan(script string, args ...string) *Plan {
	return &Plan{
		Runtime:    "/bin/sh",
		Entrypoint: script,
		Args:       args,
		Env:        map[string]string{"PATH": os.Getenv("PATH")},
	}
}

func newSupervisor(stdout, stderr *bytes.Buffer, relayStdout bool, secrets ...string) *Supervisor {
	return &Supervisor{
		Stdout:      stdout,
		Stderr:      stderr,
		RelayStdout: relayStdout,
		Redactor:    redact.New(secrets...),
	}
}

func TestRun_ExitCodePropagates(t *testing.T) {
	script := writeScript(t, "exit 3\n")
	var stdout, stderr bytes.Buffer

	outcome, err := newSupervisor(&stdout, &stderr, false).Run(shellPlan(script))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if outcome.Signal != "" {
		t.Errorf("Signal = %q, want none", outcome.Signal)
	}
	if outcome.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", outcome.ExitCode)
	}
	if outcome.Status() != 3 {
		t.Errorf("Status() = %d, want 3", outcome.Status())
	}
}

func TestRun_CleanExit(t *testing.T) {
	script := writeScript(t, "exit 0\n")
	var stdout, stderr bytes.Buffer

	outcome, err := newSupervisor(&stdout, &stderr, false).Run(shellPlan(script))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if outcome.Status() != 0 {
		t.Errorf("Status() = %d, want 0", outcome.Status())
	}
}

func TestRun_SignalTermination(t *testing.T) {
	script := writeScript(t, "kill -KILL $$\n")
	var stdout, stderr bytes.Buffer

	outcome, err := newSupervisor(&stdout, &stderr, false).Run(shellPlan(script))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if outcome.Signal == "" {
		t.Fatal("Signal empty, want signal name")
	}
	if outcome.Status() != FailureCode {
		t.Errorf("Status() = %d, want fixed failure code %d", outcome.Status(), FailureCode)
	}
}

func TestRun_SpawnError(t *testing.T) {
	plan := &Plan{
		Runtime:    filepath.Join(t.TempDir(), "missing-runtime"),
		Entrypoint: "whatever.js",
		Env:        map[string]string{},
	}
	var stdout, stderr bytes.Buffer

	_, err := newSupervisor(&stdout, &stderr, false).Run(plan)
	if err == nil {
		t.Fatal("Run error = nil, want spawn failure")
	}
	if !strings.Contains(err.Error(), "failed to start") {
		t.Errorf("error = %q, want failed-to-start wrapping", err)
	}
}

func TestRun_StderrRedacted(t *testing.T) {
	script := writeScript(t, "echo \"token hunter2 used\" >&2\n")
	var stdout, stderr bytes.Buffer

	_, err := newSupervisor(&stdout, &stderr, false, "hunter2").Run(shellPlan(script))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if strings.Contains(stderr.String(), "hunter2") {
		t.Errorf("stderr %q contains the secret", stderr.String())
	}
	if !strings.Contains(stderr.String(), redact.Mask) {
		t.Errorf("stderr %q missing the mask token", stderr.String())
	}
}

func TestRun_StdoutSuppressedByDefault(t *testing.T) {
	script := writeScript(t, "echo \"noisy hunter2 output\"\n")
	var stdout, stderr bytes.Buffer

	_, err := newSupervisor(&stdout, &stderr, false, "hunter2").Run(shellPlan(script))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want suppressed", stdout.String())
	}
}

func TestRun_StdoutRelayedAndRedactedInDebug(t *testing.T) {
	script := writeScript(t, "echo \"installing with hunter2\"\n")
	var stdout, stderr bytes.Buffer

	_, err := newSupervisor(&stdout, &stderr, true, "hunter2").Run(shellPlan(script))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(stdout.String(), "installing with "+redact.Mask) {
		t.Errorf("stdout = %q, want relayed redacted line", stdout.String())
	}
}

func TestRun_ChildSeesComposedEnvOnly(t *testing.T) {
	script := writeScript(t, "printf '%s' \"$PMLAUNCH_PROBE\"\n")
	plan := shellPlan(script)
	plan.Env["PMLAUNCH_PROBE"] = "composed-value"
	var stdout, stderr bytes.Buffer

	_, err := newSupervisor(&stdout, &stderr, true).Run(plan)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stdout.String() != "composed-value" {
		t.Errorf("child env probe = %q, want composed-value", stdout.String())
	}
}

func TestRun_ArgsReachChild(t *testing.T) {
	script := writeScript(t, "printf '%s' \"$1\"\n")
	var stdout, stderr bytes.Buffer

	_, err := newSupervisor(&stdout, &stderr, true).Run(shellPlan(script, "install"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stdout.String() != "install" {
		t.Errorf("first child arg = %q, want install", stdout.String())
	}
}
