package manager

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Environment hints set by the package managers themselves when they invoke
// lifecycle scripts.
const (
	// UserAgentVar looks like "pnpm/9.6.0 npm/? node/v20.15.0 linux x64".
	UserAgentVar = "npm_config_user_agent"
	// ExecPathVar is the path of the script that invoked this process.
	ExecPathVar = "npm_execpath"
)

// packageJSONFile is probed in the working directory for the corepack
// "packageManager" field ("name@version").
const packageJSONFile = "package.json"

// Detector infers the package manager in effect. It always returns exactly
// one Identity: with no signal present the result is Default.
type Detector struct {
	Env   EnvGetter  // injected for testing
	Files FileReader // injected for testing
}

// Detect resolves the manager identity. Precedence, highest first:
// explicit name, user-agent hint, invoking-script path, package.json
// packageManager field, then Default. The returned source names the signal
// that decided, for diagnostics.
func (d *Detector) Detect(explicit string) (Identity, string, error) {
	if explicit != "" {
		id, err := Parse(explicit)
		if err != nil {
			return "", "", err
		}
		return id, "argument", nil
	}

	if ua, ok := d.Env.LookupEnv(UserAgentVar); ok {
		if id, ok := matchKnown(ua); ok {
			return id, "user agent", nil
		}
	}

	if execPath, ok := d.Env.LookupEnv(ExecPathVar); ok {
		if id, ok := matchKnown(execPath); ok {
			return id, "exec path", nil
		}
	}

	if id, ok := d.fromPackageJSON(); ok {
		return id, "package.json", nil
	}

	return Default, "default", nil
}

// matchKnown finds the first identity, in detection order, whose name occurs
// as a case-insensitive substring of the signal.
func matchKnown(signal string) (Identity, bool) {
	lower := strings.ToLower(signal)
	for _, id := range detectionOrder {
		if strings.Contains(lower, string(id)) {
			return id, true
		}
	}
	return "", false
}

// fromPackageJSON reads the corepack packageManager field ("pnpm@9.6.0")
// from the working directory. Any read or parse failure just means no
// signal.
func (d *Detector) fromPackageJSON() (Identity, bool) {
	data, err := d.Files.ReadFile(packageJSONFile)
	if err != nil {
		return "", false
	}
	field := gjson.GetBytes(data, "packageManager")
	if !field.Exists() {
		return "", false
	}
	name, _, _ := strings.Cut(field.String(), "@")
	id, err := Parse(name)
	if err != nil {
		return "", false
	}
	return id, true
}
