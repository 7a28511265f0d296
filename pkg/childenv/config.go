// Package childenv composes the environment handed to the package manager
// child process, injecting or withholding private-registry configuration.
package childenv

// Config carries the fixed launcher configuration. It is read once at
// startup and passed explicitly; nothing mutates it afterwards.
type Config struct {
	RegistryHost string // private registry host for the node artifact mirror
	MirrorPath   string // base path of the mirror on the registry
	CertFile     string // certificate file name, colocated with the launcher
}

// DefaultConfig returns the built-in launcher configuration.
func DefaultConfig() Config {
	return Config{
		RegistryHost: "registry.corp.internal",
		MirrorPath:   "/artifacts/node",
		CertFile:     "registry-ca.pem",
	}
}
