package output

import (
	"strings"
	"time"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/util"
)

// MaxBaseNameLength bounds the generated file base name, in runes.
const MaxBaseNameLength = 80

const (
	dayDirLayout     = "2006-01-02"
	datePrefixLayout = "20060102"
)

// ArticleDate picks the date a draft is filed under: published, then
// scheduled, then created, then now.
func ArticleDate(a *content.ArticleDraft, now time.Time) time.Time {
	switch {
	case a.PublishedAt != nil:
		return *a.PublishedAt
	case a.ScheduledAt != nil:
		return *a.ScheduledAt
	case !a.CreatedAt.IsZero():
		return a.CreatedAt
	default:
		return now
	}
}

// BaseName builds "<yyyymmdd>_<slug|article>[_<id>]" truncated to
// MaxBaseNameLength runes. The id is the draft id, else its hot topic id.
func BaseName(a *content.ArticleDraft, date time.Time) string {
	var b strings.Builder
	b.WriteString(date.Format(datePrefixLayout))
	b.WriteByte('_')
	if slug := Slug(a.Title); slug != "" {
		b.WriteString(slug)
	} else {
		b.WriteString("article")
	}
	id := a.ID
	if util.IsBlank(id) {
		id = a.HotTopicID
	}
	if !util.IsBlank(id) {
		b.WriteByte('_')
		b.WriteString(id)
	}
	return truncateRunes(b.String(), MaxBaseNameLength)
}

// ObjectPath returns the day directory joined with the base name, without
// an extension.
func ObjectPath(a *content.ArticleDraft, now time.Time) string {
	date := ArticleDate(a, now)
	return date.Format(dayDirLayout) + "/" + BaseName(a, date)
}

// Slug lowercases s, keeps ASCII letters and digits, and collapses every
// other run of characters into a single dash. Leading and trailing dashes
// are dropped, so a title without ASCII alphanumerics yields "".
func Slug(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
