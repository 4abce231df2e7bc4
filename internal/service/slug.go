package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Slugify derives a URL slug from a display name: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens trimmed. A name with no usable characters falls back to
// a short random slug so the result is never empty.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "item-" + randomSuffix()
	}
	return slug
}

// randomSuffix returns 6 hex characters for slug collision avoidance.
func randomSuffix() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; keep the slug usable anyway
		return "000000"
	}
	return hex.EncodeToString(buf)
}
