package dataset

import (
	"strconv"
	"strings"
	"unicode"
)

// CleanName converts a raw column name to snake_case: letters lowercased,
// runs of non-alphanumerics collapsed to a single underscore, and a
// lower-to-upper boundary treated as a word break ("speedFPM" ->
// "speed_fpm").
func CleanName(name string) string {
	var b strings.Builder
	prevUnderscore := true // suppress leading underscore
	prevLower := false

	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && prevLower && !prevUnderscore {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
			prevUnderscore = false
		default:
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
			prevLower = false
		}
	}

	return strings.TrimRight(b.String(), "_")
}

// CleanNames rewrites every column name in place using CleanName. When two
// raw names clean to the same result, later columns get a numeric suffix.
func CleanNames(t *Table) {
	names := make([]string, len(t.cols))
	for i := range t.cols {
		names[i] = CleanName(t.cols[i].Name)
	}
	for i, name := range dedupeNames(names) {
		t.cols[i].Name = name
	}
}

// dedupeNames suffixes repeated names so each is unique ("floor_to",
// "floor_to_2", ...).
func dedupeNames(names []string) []string {
	seen := map[string]int{}
	out := make([]string, len(names))
	for i, name := range names {
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}
