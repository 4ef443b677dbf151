package order

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadOrderFile reads one file name per line. Lines are trimmed and blank
// lines dropped.
func ReadOrderFile(path string) (CustomOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read order file: %w", err)
	}
	defer f.Close()

	var names CustomOrder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read order file %s: %w", path, err)
	}
	return names, nil
}
