package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

const DefaultSlugMaxLen = 80

// Slugify lowercases, strips accents ("Salle Équilibre" → "salle-equilibre")
// and keeps [a-z0-9-]. Falls back to "club".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := reNonAlnum.ReplaceAllString(b.String(), "-")
	out = strings.Trim(reHyphen.ReplaceAllString(out, "-"), "-")
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	if out == "" {
		out = "club"
	}
	return out
}

// EnsureUniqueSlug appends -2, -3, ... until column has no row with that slug.
func EnsureUniqueSlug(ctx context.Context, db *gorm.DB, table, column, base string) (string, error) {
	slug := base
	for i := 2; i < 100; i++ {
		var n int64
		if err := db.WithContext(ctx).Table(table).
			Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(slug)).
			Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return slug, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		cut := base
		if len(cut)+len(suffix) > DefaultSlugMaxLen {
			cut = strings.Trim(cut[:DefaultSlugMaxLen-len(suffix)], "-")
		}
		slug = cut + suffix
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
