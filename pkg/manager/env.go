package manager

import "os"

// EnvGetter provides environment lookups for testing.
type EnvGetter interface {
	LookupEnv(key string) (string, bool)
}

// RealEnvGetter uses the process environment.
type RealEnvGetter struct{}

func (r *RealEnvGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// FileReader provides file reads for testing (package.json probing).
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// RealFileReader uses the real filesystem.
type RealFileReader struct{}

func (r *RealFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
