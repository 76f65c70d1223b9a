package config

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Entry is one configuration assignment recovered from a key = value line,
// together with the file it came from.
type Entry struct {
	Name   string
	Value  string
	Source string
}

// keyLine matches an identifier followed by '='. The value side is captured
// raw; tfvars and backend-config files both fit this shape.
var keyLine = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// ScanEntries extracts key = value assignments from r. Blank lines and
// full-line comments are skipped; anything else that does not look like an
// assignment is ignored rather than rejected, because environment files mix
// Terraform blocks with bare assignments.
func ScanEntries(r io.Reader, source string) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		m := keyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		entries = append(entries, Entry{
			Name:   m[1],
			Value:  cleanValue(m[2]),
			Source: source,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// cleanValue strips a trailing comment and surrounding quotes from a raw
// value. Values that are themselves blocks (e.g. `{`) come back as-is.
func cleanValue(raw string) string {
	v := strings.TrimSpace(raw)
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	return v
}
