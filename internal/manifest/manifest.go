// Package manifest locates and reads the project manifest the shell is
// running inside. The manifest supplies the project name and version shown
// in the prompt. Only the TOML [package] table is read; the rest of the
// manifest belongs to the build tool.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNotFound is returned when no manifest exists in the working directory
// or any of its parents.
var ErrNotFound = errors.New("could not find a project manifest")

// Manifest holds the fields the shell needs from the project manifest.
type Manifest struct {
	// Name is the package name.
	Name string

	// Version is the package version string.
	Version string

	// Path is the absolute path of the manifest file.
	Path string

	// Root is the directory containing the manifest.
	Root string
}

// manifestFile mirrors the [package] table of the manifest.
type manifestFile struct {
	Package packageSection `toml:"package"`
}

type packageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// FindRoot walks up from dir looking for a file named name and returns the
// path of the first one found. Returns ErrNotFound when the filesystem root
// is reached without a hit.
func FindRoot(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("could not resolve directory %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrNotFound, name, dir)
		}
		dir = parent
	}
}

// Load finds and parses the manifest for the project containing dir.
func Load(dir, name string) (*Manifest, error) {
	path, err := FindRoot(dir, name)
	if err != nil {
		return nil, err
	}

	var mf manifestFile
	if _, err := toml.DecodeFile(path, &mf); err != nil {
		return nil, fmt.Errorf("could not parse manifest %s: %w", path, err)
	}

	if mf.Package.Name == "" {
		return nil, fmt.Errorf("manifest %s has no package name", path)
	}

	return &Manifest{
		Name:    mf.Package.Name,
		Version: mf.Package.Version,
		Path:    path,
		Root:    filepath.Dir(path),
	}, nil
}
