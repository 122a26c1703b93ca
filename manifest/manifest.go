// Package manifest handles tether.toml attach profiles.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest represents a tether.toml attach profile: what the host expects
// from the runtime it attaches to, and where captured metadata goes.
type Manifest struct {
	Profile  Profile        `toml:"profile"`
	Runtime  RuntimeConfig  `toml:"runtime"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Store    StoreConfig    `toml:"store"`

	// Dir is the directory containing the tether.toml file (set at load
	// time).
	Dir string `toml:"-"`
}

// Profile contains profile metadata.
type Profile struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// RuntimeConfig configures attach expectations.
type RuntimeConfig struct {
	// Assemblies that must be loaded for the profile to be usable.
	Assemblies []string `toml:"assemblies"`
	// Preload lists classes (Namespace.Name) to resolve eagerly at
	// attach, forcing their static initialization up front.
	Preload []string `toml:"preload"`
}

// SnapshotConfig configures metadata snapshot output.
type SnapshotConfig struct {
	Output string `toml:"output"`
}

// StoreConfig configures the metadata store.
type StoreConfig struct {
	Path string `toml:"path"`
}

// Load parses a tether.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "tether.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	m.Dir = dir

	if m.Profile.Name == "" {
		return nil, fmt.Errorf("%s: profile.name is required", path)
	}
	for _, entry := range m.Runtime.Preload {
		if _, _, err := SplitClassName(entry); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return &m, nil
}

// SplitClassName splits a Namespace.Name entry into its parts. The
// namespace may be empty ("Loose" is a bare class in the global
// namespace); the name may not.
func SplitClassName(entry string) (namespace, name string, err error) {
	if entry == "" {
		return "", "", fmt.Errorf("empty class entry")
	}
	i := strings.LastIndex(entry, ".")
	if i < 0 {
		return "", entry, nil
	}
	namespace, name = entry[:i], entry[i+1:]
	if name == "" {
		return "", "", fmt.Errorf("class entry %q has no name after the namespace", entry)
	}
	return namespace, name, nil
}
