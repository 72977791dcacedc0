// Package keys builds deterministic, redis-safe cache keys.
package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/Ruilesser/HackTheChange2025/internal/core/model"
)

// FeatureTile keys a processed feature list by its query footprint and
// response format. The quantized bbox text keeps keys readable; the
// xxhash suffix guards against collisions introduced by sanitizing.
func FeatureTile(bb model.BBox, format string) string {
	canonical := fmt.Sprintf("%.5f,%.5f,%.5f,%.5f:%s", bb.X1, bb.Y1, bb.X2, bb.Y2, strings.TrimSpace(format))
	return fmt.Sprintf("features:%s:f=%016x", sanitizeForKey(canonical), xxhash.Sum64String(canonical))
}

// Elevation keys a memoized elevation sample by its H3 cell token.
func Elevation(cell string) string {
	return "elev:" + sanitizeForKey(cell)
}

// FeaturePrefix is the key prefix shared by all feature tiles, used by
// invalidation to address the whole response cache.
const FeaturePrefix = "features:"

func sanitizeForKey(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	for _, r := range s {
		out := rune(0)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			out = '_'
		case isAlphaNum(r) || r == ':' || r == '_' || r == '-' || r == '=' || r == '.' || r == ',':
			out = r
		default:
			// any other rune (including non-ASCII) becomes '-'
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		unicode.IsDigit(r)
}
