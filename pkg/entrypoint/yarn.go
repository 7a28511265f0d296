package entrypoint

import (
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// pinnedRelease scans the repository's .yarn/releases directory for
// yarn-<version>.cjs files and selects the highest version. Repositories
// that vendor a pinned yarn release this way may have no yarn installed
// anywhere else.
func (r *Resolver) pinnedRelease() (string, bool) {
	dir := filepath.Join(r.WorkDir, ".yarn", "releases")
	entries, err := r.Dirs.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var bestName string
	var bestVer *semver.Version
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version, ok := releaseVersion(entry.Name())
		if !ok {
			continue
		}
		if bestVer == nil || version.GreaterThan(bestVer) {
			bestVer = version
			bestName = entry.Name()
		}
	}
	if bestName == "" {
		return "", false
	}

	candidate := filepath.Join(dir, bestName)
	if !r.isScript(candidate) {
		return "", false
	}
	return candidate, true
}

// releaseVersion extracts the semver from a yarn-<version>.cjs file name.
func releaseVersion(name string) (*semver.Version, bool) {
	rest, ok := strings.CutPrefix(name, "yarn-")
	if !ok {
		return nil, false
	}
	raw, ok := strings.CutSuffix(rest, ".cjs")
	if !ok {
		return nil, false
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, false
	}
	return version, true
}
