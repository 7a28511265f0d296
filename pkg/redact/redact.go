// Package redact masks credential material in text before it reaches any
// user-visible stream.
package redact

import (
	"regexp"
	"strings"
)

// Mask replaces every redacted secret occurrence.
const Mask = "***"

// credentialURL matches scheme://user:pass@ prefixes so embedded credentials
// are masked even when the literal secret values are unknown.
var credentialURL = regexp.MustCompile(`([A-Za-z][A-Za-z0-9+.-]*://)[^/\s@]+:[^/\s@]+@`)

// Redactor masks a fixed set of secret strings plus any credential-embedded
// URL. The zero set is valid: URL masking still applies.
type Redactor struct {
	secrets []string
}

// New builds a Redactor for the given secrets. Empty strings are dropped so
// an unset credential can never cause mask-everything behavior.
func New(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		if s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// Redact returns text with credential URLs and all registered secrets masked.
// Matches must be fully contained in text; callers feeding a chunked stream
// get per-chunk masking only (see Writer).
func (r *Redactor) Redact(text string) string {
	out := credentialURL.ReplaceAllString(text, "${1}"+Mask+":"+Mask+"@")
	for _, s := range r.secrets {
		out = strings.ReplaceAll(out, s, Mask)
	}
	return out
}
