package childenv

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Mode selects the injection policy for a run.
type Mode string

const (
	// ModeInject wires private-registry credentials, the certificate path
	// and the binary mirror URL into the child environment.
	ModeInject Mode = "inject-credentials"
	// ModeClean strips registry configuration so the install runs against
	// public defaults, with no residue from earlier invocations.
	ModeClean Mode = "clean"
)

// Variables consumed from and produced into the environment.
const (
	UserVar     = "REGISTRY_USER"
	PasswordVar = "REGISTRY_PASSWORD"
	CertPathVar = "NODE_EXTRA_CA_CERTS"
	MirrorVar   = "NODE_DOWNLOAD_MIRROR"
)

// telemetryOptOuts are set in every mode, including clean installs.
var telemetryOptOuts = map[string]string{
	"DO_NOT_TRACK":           "1",
	"DISABLE_OPENCOLLECTIVE": "1",
}

// Secrets holds the credential values captured during composition. They
// exist only to seed the output redactor; they are never logged.
type Secrets struct {
	User     string
	Password string
}

// Values returns the non-empty secret strings.
func (s Secrets) Values() []string {
	var out []string
	for _, v := range []string{s.User, s.Password} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// MissingCredentialsError enumerates exactly which credential variables are
// absent.
type MissingCredentialsError struct {
	Missing []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing credential variables: %s", strings.Join(e.Missing, ", "))
}

// CertificateError reports the resolved path the certificate was expected at.
type CertificateError struct {
	Path string
	Err  error
}

func (e *CertificateError) Error() string {
	return fmt.Sprintf("registry certificate not found at %s", e.Path)
}

func (e *CertificateError) Unwrap() error { return e.Err }

// Composer builds the finalized child environment.
type Composer struct {
	Config      Config
	Source      EnvSource  // injected for testing
	Stat        FileStater // injected for testing
	LauncherDir string     // directory containing the launcher executable
	GOOS        string     // target platform
	GOARCH      string
}

// Compose produces the child environment map and the secrets captured for
// redaction. It reads the ambient environment and stats the certificate
// file; it performs no other side effects and no network access.
func (c *Composer) Compose(mode Mode) (map[string]string, Secrets, error) {
	env := ambientMap(c.Source.Environ())

	if c.GOOS == "windows" {
		normalizePathVar(env)
	}

	for k, v := range telemetryOptOuts {
		env[k] = v
	}

	if mode == ModeClean {
		delete(env, CertPathVar)
		delete(env, MirrorVar)
		return env, Secrets{}, nil
	}

	secrets, err := c.credentials(env)
	if err != nil {
		return nil, Secrets{}, err
	}

	certPath := filepath.Join(c.LauncherDir, c.Config.CertFile)
	if info, err := c.Stat.Stat(certPath); err != nil || info.IsDir() {
		return nil, Secrets{}, &CertificateError{Path: certPath, Err: err}
	}

	mirror, err := mirrorURL(c.Config, secrets, c.GOOS, c.GOARCH)
	if err != nil {
		return nil, Secrets{}, err
	}

	env[CertPathVar] = certPath
	env[MirrorVar] = mirror
	return env, secrets, nil
}

// credentials pulls both credential variables, failing with the full list
// of missing names rather than the first one.
func (c *Composer) credentials(env map[string]string) (Secrets, error) {
	var missing []string
	user, ok := env[UserVar]
	if !ok || user == "" {
		missing = append(missing, UserVar)
	}
	password, ok := env[PasswordVar]
	if !ok || password == "" {
		missing = append(missing, PasswordVar)
	}
	if len(missing) > 0 {
		return Secrets{}, &MissingCredentialsError{Missing: missing}
	}
	return Secrets{User: user, Password: password}, nil
}

// ambientMap converts KEY=value pairs to a map. Later duplicates win, so
// the result has unique keys; entries without '=' are dropped.
func ambientMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// pathCasings are the PATH spellings seen on Windows, in preference order.
var pathCasings = []string{"PATH", "Path", "path"}

// normalizePathVar collapses the case-insensitive PATH variants so exactly
// one casing survives, holding the first non-empty candidate value.
func normalizePathVar(env map[string]string) {
	var value string
	for _, name := range pathCasings {
		if v, ok := env[name]; ok && v != "" {
			value = v
			break
		}
	}
	for _, name := range pathCasings {
		delete(env, name)
	}
	if value != "" {
		env["Path"] = value
	}
}

// Flatten renders the map as sorted KEY=value pairs for os/exec.
func Flatten(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
