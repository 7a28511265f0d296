// Package entrypoint locates the on-disk CLI script for a package manager,
// plus the node runtime that executes it. Every result is a script file;
// platform shims (npm.cmd, yarn.exe) are never returned, so the eventual
// spawn needs no shell.
package entrypoint

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vertti/pmlaunch/pkg/manager"
)

// FileStater provides filesystem stat operations for testing.
type FileStater interface {
	Stat(path string) (os.FileInfo, error)
}

// RealFileStater uses actual os.Stat.
type RealFileStater struct{}

func (r *RealFileStater) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// LookPather abstracts PATH lookup for testing.
type LookPather interface {
	LookPath(file string) (string, error)
}

// RealLookPather uses exec.LookPath.
type RealLookPather struct{}

func (r *RealLookPather) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// DirReader provides directory listings for testing (yarn release scan).
type DirReader interface {
	ReadDir(name string) ([]os.DirEntry, error)
}

// RealDirReader uses os.ReadDir.
type RealDirReader struct{}

func (r *RealDirReader) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// runtimeName is the host runtime executable looked up in PATH.
const runtimeName = "node"

// scriptExts are the file extensions accepted as directly spawnable
// entrypoints. Anything else (shims, native binaries) is skipped.
var scriptExts = map[string]bool{".js": true, ".cjs": true, ".mjs": true}

// cliScripts maps each manager to its CLI script path inside the manager's
// installed package directory.
var cliScripts = map[manager.Identity]string{
	manager.Npm:  filepath.Join("bin", "npm-cli.js"),
	manager.Yarn: filepath.Join("bin", "yarn.js"),
	manager.Pnpm: filepath.Join("bin", "pnpm.cjs"),
}

// Resolver finds manager entrypoints through an ordered list of fallible
// strategies. A strategy that errors is skipped; the first candidate that
// exists as a regular script file wins.
type Resolver struct {
	Env     manager.EnvGetter // injected for testing
	Stat    FileStater        // injected for testing
	Look    LookPather        // injected for testing
	Dirs    DirReader         // injected for testing
	WorkDir string            // directory resolution starts from
	GOOS    string            // target platform, defaults to runtime's
	Log     *log.Logger       // optional candidate tracing
}

// NotFoundError reports that no strategy produced an existing entrypoint.
type NotFoundError struct {
	Manager manager.Identity
	Tried   []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s entrypoint found (tried %d locations); install %s or set %s to its CLI script",
		e.Manager, len(e.Tried), e.Manager, manager.ExecPathVar)
}

// Runtime returns the absolute path of the node executable.
func (r *Resolver) Runtime() (string, error) {
	path, err := r.Look.LookPath(runtimeName)
	if err != nil {
		return "", fmt.Errorf("%s runtime not found in PATH: %w", runtimeName, err)
	}
	return filepath.Abs(path)
}

// Resolve returns the absolute path of the manager's CLI script, or a
// *NotFoundError. It never returns an empty path with a nil error.
func (r *Resolver) Resolve(id manager.Identity) (string, error) {
	var tried []string

	if path, ok := r.fromExecPath(); ok {
		return path, nil
	}

	for _, candidate := range r.localCandidates(id) {
		tried = append(tried, candidate)
		if r.isScript(candidate) {
			return filepath.Abs(candidate)
		}
	}

	if candidate, err := r.globalCandidate(id); err == nil {
		tried = append(tried, candidate)
		if r.isScript(candidate) {
			return filepath.Abs(candidate)
		}
	}

	if id == manager.Yarn {
		if path, ok := r.pinnedRelease(); ok {
			return filepath.Abs(path)
		}
		tried = append(tried, filepath.Join(r.WorkDir, ".yarn", "releases"))
	}

	return "", &NotFoundError{Manager: id, Tried: tried}
}

// fromExecPath accepts the invoking script itself when the hint points at a
// script file rather than a shim.
func (r *Resolver) fromExecPath() (string, bool) {
	execPath, ok := r.Env.LookupEnv(manager.ExecPathVar)
	if !ok || execPath == "" {
		return "", false
	}
	if !scriptExts[strings.ToLower(filepath.Ext(execPath))] {
		r.debug("exec path hint is not a script", "path", execPath)
		return "", false
	}
	if !r.isScript(execPath) {
		return "", false
	}
	abs, err := filepath.Abs(execPath)
	if err != nil {
		return "", false
	}
	return abs, true
}

// localCandidates emulates require.resolve from the working directory:
// node_modules in each ancestor directory, nearest first.
func (r *Resolver) localCandidates(id manager.Identity) []string {
	var candidates []string
	dir := r.WorkDir
	for {
		candidates = append(candidates, filepath.Join(dir, "node_modules", string(id), cliScripts[id]))
		parent := filepath.Dir(dir)
		if parent == dir || parent == "" {
			break
		}
		dir = parent
	}
	return candidates
}

// globalCandidate is the fixed location under the node installation
// directory: lib/node_modules beside bin on Unix, node_modules beside
// node.exe on Windows.
func (r *Resolver) globalCandidate(id manager.Identity) (string, error) {
	runtimePath, err := r.Runtime()
	if err != nil {
		return "", err
	}
	nodeDir := filepath.Dir(runtimePath)
	if r.GOOS == "windows" {
		return filepath.Join(nodeDir, "node_modules", string(id), cliScripts[id]), nil
	}
	return filepath.Join(nodeDir, "..", "lib", "node_modules", string(id), cliScripts[id]), nil
}

// isScript reports whether path exists as a regular file. Stat errors mean
// the candidate is skipped, never that resolution aborts.
func (r *Resolver) isScript(path string) bool {
	info, err := r.Stat.Stat(path)
	if err != nil {
		r.debug("candidate missing", "path", path)
		return false
	}
	if !info.Mode().IsRegular() {
		r.debug("candidate is not a regular file", "path", path)
		return false
	}
	r.debug("candidate found", "path", path)
	return true
}

func (r *Resolver) debug(msg string, keyvals ...interface{}) {
	if r.Log != nil {
		r.Log.Debug(msg, keyvals...)
	}
}
