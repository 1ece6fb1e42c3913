package config

import (
	"fmt"
	"strings"
)

// Expand substitutes %name and %{name} references in s from vars, and
// turns %% into a literal percent sign. References must name a key in
// vars: configuration files may not depend on unset expansion variables,
// so an unknown reference or a malformed placeholder is an error.
//
// Names follow identifier rules: a letter or underscore followed by
// letters, digits, or underscores.
func Expand(s string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)
			i++
			continue
		}

		if i+1 >= len(s) {
			return "", fmt.Errorf("line %d: incomplete placeholder at end of input", lineOf(s, i))
		}

		switch next := s[i+1]; {
		case next == '%':
			b.WriteByte('%')
			i += 2

		case next == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("line %d: unterminated '%%{' placeholder", lineOf(s, i))
			}
			name := s[i+2 : i+2+end]
			if !validPlaceholderName(name) {
				return "", fmt.Errorf("line %d: invalid placeholder name '%s'", lineOf(s, i), name)
			}
			v, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("line %d: undefined variable '%s'", lineOf(s, i), name)
			}
			b.WriteString(v)
			i += 2 + end + 1

		case isNameStart(next):
			j := i + 1
			for j < len(s) && isNameByte(s[j]) {
				j++
			}
			name := s[i+1 : j]
			v, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("line %d: undefined variable '%s'", lineOf(s, i), name)
			}
			b.WriteString(v)
			i = j

		default:
			return "", fmt.Errorf("line %d: invalid placeholder", lineOf(s, i))
		}
	}

	return b.String(), nil
}

func validPlaceholderName(name string) bool {
	if name == "" || !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9')
}

func lineOf(s string, offset int) int {
	return 1 + strings.Count(s[:offset], "\n")
}
