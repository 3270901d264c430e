// Package slug derives unique URL-safe identifiers from human-readable
// names, transliterating Cyrillic input to ASCII first.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// placeholderBase substitutes for names that slugify to nothing.
const placeholderBase = "item"

// DefaultMaxAttempts bounds the collision retry loop when callers pass 0.
const DefaultMaxAttempts = 1000

// ErrTooManyCollisions is returned when the retry loop exhausts its bound.
var ErrTooManyCollisions = errors.New("slug: too many collisions")

// translit maps Cyrillic letters to Latin sequences, character for character.
// Unmapped runes pass through unchanged.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate lowercases s and substitutes Cyrillic letters with their
// Latin equivalents.
func Transliterate(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if latin, ok := translit[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slugify transliterates name and reduces it to lowercase alphanumerics
// separated by single hyphens, with no leading or trailing hyphen.
func Slugify(name string) string {
	mapped := Transliterate(name)

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range mapped {
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
	return strings.TrimRight(b.String(), "-")
}

// ExistsFunc reports whether a candidate slug is already taken among
// records of the same entity type.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Generate produces a unique slug for name. When the base candidate is
// taken it appends -2, -3, ... until a free candidate is found, up to
// maxAttempts probes. The algorithm only prevents algorithmic collisions;
// a storage-level unique constraint remains the final arbiter against
// concurrent writers.
func Generate(ctx context.Context, name string, maxAttempts int, exists ExistsFunc) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = placeholderBase
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	candidate := base
	for i := 2; i < maxAttempts+2; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrTooManyCollisions
}
