package dispatch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseBatchFile reads a batch file and returns one argument vector per
// command line. Blank lines and lines whose first non-space character is
// `#` are skipped. There are no quoting or escaping rules; arguments are
// split on single spaces.
func ParseBatchFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	commands, err := parseBatch(f)
	if err != nil {
		return nil, fmt.Errorf("could not read commands from %s: %w", path, err)
	}
	return commands, nil
}

func parseBatch(r io.Reader) ([][]string, error) {
	var commands [][]string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		commands = append(commands, strings.Split(line, " "))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return commands, nil
}
