package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quocvuong92/build-shell/internal/logging"
)

// Locate resolves the selector binary named name. The home directory (if
// non-empty) is checked first as <home>/bin/<name>; otherwise each entry of
// pathList (the PATH environment value) is scanned for <dir>/<name>.
// A missing selector is a fatal startup condition for the shell.
func Locate(home, name, pathList string) (string, error) {
	if home != "" {
		candidate := filepath.Join(home, "bin", name)
		if isFile(candidate) {
			logging.Debug("selector found under home", logging.Fields{"path": candidate})
			return candidate, nil
		}
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			logging.Debug("selector found on PATH", logging.Fields{"path": candidate})
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not find a %s binary (checked %s and PATH)",
		name, describeHome(home, name))
}

// LocateFromEnv is Locate with the process PATH.
func LocateFromEnv(home, name string) (string, error) {
	return Locate(home, name, os.Getenv("PATH"))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func describeHome(home, name string) string {
	if home == "" {
		return "no home directory"
	}
	return strings.Join([]string{home, "bin", name}, string(os.PathSeparator))
}
