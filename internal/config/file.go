package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFile reads a key=value config file: blank lines and lines
// starting with '#' are skipped, and whitespace is trimmed from both
// sides of the '='.
func ParseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseFile(f)
}

func parseFile(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		idx := strings.IndexByte(text, '=')
		if idx < 0 {
			return nil, fmt.Errorf("config: line %d: expected key=value, got %q", line, text)
		}

		key := strings.TrimSpace(text[:idx])
		value := strings.TrimSpace(text[idx+1:])
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", line)
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
