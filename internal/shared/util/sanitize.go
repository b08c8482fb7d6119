package util

import (
	"errors"
	"path"
	"strings"
)

const maxFileNameLen = 80

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces a client-supplied upload name to something safe to
// embed in a storage key and a public URL. Directory components are dropped
// and every run of characters outside [A-Za-z0-9._-] becomes a single "-".
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))

	var b strings.Builder
	dash := false
	for _, r := range base {
		if isSafeRune(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.Trim(b.String(), "-.")
	if s == "" {
		return "", errInvalidFileName
	}
	return truncateKeepExt(s, maxFileNameLen), nil
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}

func truncateKeepExt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	ext := path.Ext(s)
	if len(ext) >= n {
		return s[:n]
	}
	return s[:n-len(ext)] + ext
}
