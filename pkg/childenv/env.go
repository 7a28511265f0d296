package childenv

import (
	"io"
	"os"
)

// EnvSource provides the ambient environment for testing.
type EnvSource interface {
	Environ() []string
}

// RealEnvSource uses the process environment.
type RealEnvSource struct{}

func (r *RealEnvSource) Environ() []string {
	return os.Environ()
}

// FileStater provides filesystem stat operations for testing.
type FileStater interface {
	Stat(path string) (os.FileInfo, error)
}

// RealFileStater uses actual os.Stat.
type RealFileStater struct{}

func (r *RealFileStater) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// FileOpener provides file reads for the certificate fingerprint.
type FileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// RealFileOpener uses the real filesystem.
type RealFileOpener struct{}

func (r *RealFileOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
