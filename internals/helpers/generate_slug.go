package helper

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const DefaultSlugMaxLen = 63

var (
	reDash   = regexp.MustCompile(`-+`)
	reIsSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// GenerateSlug menormalkan string menjadi slug ASCII:
// diakritik dibuang (NFKD), non-alnum jadi "-", "-" beruntun dipadatkan.
func GenerateSlug(s string) string {
	s = norm.NFKD.String(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := reDash.ReplaceAllString(b.String(), "-")
	return cutToLen(strings.Trim(out, "-"), DefaultSlugMaxLen)
}

func IsSlug(s string) bool { return reIsSlug.MatchString(s) }

// cutToLen memotong string agar panjangnya <= n, lalu trim "-"
func cutToLen(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return strings.Trim(s, "-")
	}
	return strings.Trim(s[:n], "-")
}
