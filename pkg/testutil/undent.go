package testutil

import "strings"

// Undent removes the leading indentation from each line of the given string.
// It lets tests inline YAML and PEM fixtures in raw string literals that
// follow the indentation of the surrounding Go code:
//
//	Undent(`
//		kind: profile
//		bits: 2048
//	`)
//
// The first line may be left empty, the last line may hold nothing but the
// closing indentation, and blank lines may omit the indentation entirely. The
// smallest indentation found on a non-blank line is the amount removed from
// every line.
func Undent(s string) string {
	if s == "" {
		return ""
	}

	// For code readability purposes, the first line may be left empty.
	s = strings.TrimPrefix(s, "\n")

	lines := strings.Split(s, "\n")

	// The last line often holds nothing but the closing indentation of the
	// raw string literal. Treat it as empty.
	if last := lines[len(lines)-1]; last != "" && strings.TrimLeft(last, " \t") == "" {
		lines[len(lines)-1] = ""
	}

	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent == -1 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
