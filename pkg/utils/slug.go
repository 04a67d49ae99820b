package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify converts a display name into a URL-safe slug: lowercase ASCII
// letters, digits and single hyphens. "DJ Rohan (Mumbai)" -> "dj-rohan-mumbai".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading hyphens

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// UniqueSlug appends a numeric suffix until taken reports the slug as free.
// The base slug itself is tried first.
func UniqueSlug(name string, taken func(slug string) bool) string {
	base := Slugify(name)
	if base == "" {
		base = "dj"
	}
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
