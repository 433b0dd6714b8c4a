package stages

import (
	"time"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/util"
)

// DraftFromResponse fills a draft for t from the generated markdown body.
// The word count is the number of characters in the trimmed body.
func DraftFromResponse(t *content.HotTopic, body string, now time.Time) *content.ArticleDraft {
	return &content.ArticleDraft{
		HotTopicID: t.ID,
		Title:      DraftTitle(t),
		Summary:    t.Description,
		Body:       body,
		AuthorID:   content.AuthorLLM,
		EditorID:   content.AuthorLLM,
		Status:     content.StatusDraft,
		WordCount:  util.RuneCount(body),
		Language:   t.Language,
		Tags:       util.Clone(t.Keywords),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
