package paths

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Paths holds the resolved location of the optional config file
type Paths struct {
	ConfigFile string
}

// DefaultPaths returns the default paths based on current user
// Root user: /etc/pingpong/config.yaml
// Non-root: ~/.pingpong/config.yaml
func DefaultPaths() (*Paths, error) {
	if os.Geteuid() == 0 {
		return &Paths{ConfigFile: "/etc/pingpong/config.yaml"}, nil
	}

	usr, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	return ForHome(usr.HomeDir), nil
}

// ForHome returns the paths used for a non-root user with the given home
func ForHome(home string) *Paths {
	return &Paths{ConfigFile: filepath.Join(home, ".pingpong", "config.yaml")}
}

// ConfigExists checks if the config file exists
func (p *Paths) ConfigExists() bool {
	_, err := os.Stat(p.ConfigFile)
	return err == nil
}

// ResolveConfigFile returns explicit when set, otherwise the default config
// file if it exists, otherwise "".
func ResolveConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	p, err := DefaultPaths()
	if err != nil || !p.ConfigExists() {
		return ""
	}
	return p.ConfigFile
}

// String returns a human-readable representation of the paths
func (p *Paths) String() string {
	if p.ConfigFile == "" {
		return "Config: none"
	}
	return fmt.Sprintf("Config: %s", p.ConfigFile)
}
