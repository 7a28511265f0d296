// Package manager identifies which Node package manager an invocation is
// for, and owns the per-manager install argument tables.
package manager

import (
	"fmt"
	"strings"
)

// Identity is one of the supported package managers. The set is closed:
// adding a manager means adding detection rules, install arguments, and
// entrypoint locations together.
type Identity string

const (
	Npm  Identity = "npm"
	Yarn Identity = "yarn"
	Pnpm Identity = "pnpm"
)

// Default is used when no detection signal is present.
const Default = Npm

// detectionOrder lists identities for substring matching. pnpm comes first:
// "npm" is a substring of "pnpm", so probing npm earlier would shadow it.
var detectionOrder = []Identity{Pnpm, Yarn, Npm}

// Parse maps a user-supplied name to an Identity, case-insensitively.
func Parse(name string) (Identity, error) {
	switch Identity(strings.ToLower(strings.TrimSpace(name))) {
	case Npm:
		return Npm, nil
	case Yarn:
		return Yarn, nil
	case Pnpm:
		return Pnpm, nil
	}
	return "", fmt.Errorf("unknown package manager %q (supported: npm, yarn, pnpm)", name)
}

// InstallArgs returns the fixed install arguments for the manager.
// Quiet by default; debug selects the manager's verbose form instead.
func (id Identity) InstallArgs(debug bool) []string {
	switch id {
	case Yarn:
		if debug {
			return []string{"install", "--verbose"}
		}
		return []string{"install", "--silent"}
	case Pnpm:
		if debug {
			return []string{"install", "--loglevel", "debug"}
		}
		return []string{"install", "--reporter", "silent"}
	default: // npm
		if debug {
			return []string{"install", "--no-audit", "--no-fund", "--loglevel", "verbose"}
		}
		return []string{"install", "--no-audit", "--no-fund", "--loglevel", "error"}
	}
}

func (id Identity) String() string { return string(id) }
