package options

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseFormats splits a comma or space separated list of decoder names,
// lower-cases them and drops duplicates. Every name must appear in known.
// An empty input yields nil, meaning "all decoders".
func ParseFormats(input string, known []string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		name := strings.ToLower(f)
		if !contains(known, name) {
			return nil, fmt.Errorf("unknown beacon format %q (known: %s)", f, strings.Join(known, ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
