package redact

import "io"

// Writer relays writes to an underlying writer after masking each chunk.
// Masking is applied per Write call: a secret split across two chunks is not
// masked. The install-step secrets are short single-line values, so a split
// is unlikely but possible; the limitation is accepted rather than buffering
// across chunk boundaries.
type Writer struct {
	w io.Writer
	r *Redactor
}

// NewWriter wraps w so every chunk passes through the redactor first.
func NewWriter(w io.Writer, r *Redactor) *Writer {
	return &Writer{w: w, r: r}
}

// Write masks p and forwards it. It reports len(p) consumed on success so
// upstream copies never see a short write from mask-induced length changes.
func (rw *Writer) Write(p []byte) (int, error) {
	if _, err := io.WriteString(rw.w, rw.r.Redact(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
