package childenv

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a short BLAKE3 digest of the certificate file, shown
// in debug output so operators can tell which CA bundle a run picked up.
func Fingerprint(opener FileOpener, path string) (string, error) {
	f, err := opener.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read certificate: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash certificate: %w", err)
	}
	return "blake3:" + hex.EncodeToString(h.Sum(nil))[:32], nil
}
