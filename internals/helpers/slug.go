package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into an [a-z0-9-] slug: strips diacritics,
// compresses "-", trims the ends, enforces maxLen (100 when <=0),
// falls back to "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	// Strip diacritics (é → e, ...)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // nonspacing marks
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "item"
	}
	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = string(rs[:maxLen])
		s = strings.Trim(s, "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// EnsureUniqueSlugCI guarantees a case-insensitive unique slug in one
// table/column. scopeFn may be nil; when set it narrows the WHERE
// (e.g. per community, alive rows only). Suffixes -2, -3, ... are tried
// until a free slug is found.
func EnsureUniqueSlugCI(
	ctx context.Context,
	db *gorm.DB,
	table, column, base string,
	scopeFn func(*gorm.DB) *gorm.DB,
	maxLen int,
) (string, error) {
	if maxLen <= 0 {
		maxLen = 100
	}
	base = Slugify(base, maxLen)

	exists := func(s string) (bool, error) {
		q := db.WithContext(ctx).Table(table).
			Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", column), s)
		if scopeFn != nil {
			q = scopeFn(q)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}

	ok, err := exists(base)
	if err != nil {
		return "", err
	}
	if !ok {
		return base, nil
	}

	for i := 2; i < 1000; i++ {
		suffix := fmt.Sprintf("-%d", i)
		cand := base
		if utf8.RuneCountInString(cand)+len(suffix) > maxLen {
			rs := []rune(cand)
			cand = strings.Trim(string(rs[:maxLen-len(suffix)]), "-")
		}
		cand += suffix
		ok, err := exists(cand)
		if err != nil {
			return "", err
		}
		if !ok {
			return cand, nil
		}
	}
	return "", fmt.Errorf("could not find a unique slug for %q", base)
}
