package validate

import "strings"

// Trim trims a supplied string field in place.
func Trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// Lower trims and lower-cases a supplied string field in place.
func Lower(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// Default sets a missing or blank field to def.
func Default(s **string, def string) {
	if *s == nil || strings.TrimSpace(**s) == "" {
		v := def
		*s = &v
	}
}

// Value dereferences s, returning "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Tags normalizes tag input: each entry may itself be comma separated; the
// result is trimmed, lower-cased, de-duplicated and free of empty entries.
func Tags(in []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			tag := strings.ToLower(strings.TrimSpace(part))
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
