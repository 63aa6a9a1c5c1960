package fetch

import (
	"strings"
	"unicode"

	"github.com/raphaelgruber/animcp/internal/mixamo"
)

// SafeName makes a catalog name usable on local filesystems: every rune
// outside letters, digits, '.', '_', '-' and space becomes an underscore,
// then spaces become underscores.
func SafeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == '.' || r == '_' || r == '-' || r == ' ':
			return r
		}
		return '_'
	}, name)
	return strings.ReplaceAll(mapped, " ", "_")
}

// SafeFileName sanitizes name and appends the export extension unless it
// is already present.
func SafeFileName(name string) string {
	s := SafeName(name)
	if !strings.HasSuffix(s, mixamo.FileExtension) {
		s += mixamo.FileExtension
	}
	return s
}
