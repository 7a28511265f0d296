package childenv

import (
	"fmt"
	"net/url"
	"path"
)

// mirrorPlatforms is the closed GOOS×GOARCH to mirror-path-segment table.
// Unmapped pairs are an error: downloading the wrong node binary fails much
// later and much more confusingly.
var mirrorPlatforms = map[string]string{
	"linux/amd64":   "linux-x64",
	"linux/arm64":   "linux-arm64",
	"darwin/amd64":  "darwin-x64",
	"darwin/arm64":  "darwin-arm64",
	"windows/amd64": "win-x64",
	"windows/arm64": "win-arm64",
}

// platformSegment maps the target platform to its mirror directory.
func platformSegment(goos, goarch string) (string, error) {
	key := goos + "/" + goarch
	segment, ok := mirrorPlatforms[key]
	if !ok {
		return "", fmt.Errorf("no node mirror path for platform %s", key)
	}
	return segment, nil
}

// mirrorURL builds the credential-bearing download URL. net/url handles the
// percent-encoding of the embedded credentials.
func mirrorURL(cfg Config, secrets Secrets, goos, goarch string) (string, error) {
	segment, err := platformSegment(goos, goarch)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme: "https",
		User:   url.UserPassword(secrets.User, secrets.Password),
		Host:   cfg.RegistryHost,
		Path:   path.Join(cfg.MirrorPath, segment),
	}
	return u.String(), nil
}
