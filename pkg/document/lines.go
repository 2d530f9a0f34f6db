package document

import (
	"strings"
)

// parseLines splits list file content into entries. Trailing whitespace and
// carriage returns are trimmed and blank lines dropped.
func parseLines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// renderLines writes one entry per line with a trailing newline, dropping
// duplicates and blank entries.
func renderLines(lines []string) []byte {
	var b strings.Builder
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
