package content

import "time"

// Record defaults shared by sources and stages.
const (
	StatusActive    = "active"
	StatusDraft     = "draft"
	AuthorLLM       = "llm"
	PlatformWeibo   = "weibo"
	DefaultLanguage = "zh-CN"
)

// HotTopic is a trending topic pulled from a hot list.
type HotTopic struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Category        string     `json:"category,omitempty"`
	SourcePlatform  string     `json:"source_platform,omitempty"`
	SourceURL       string     `json:"source_url,omitempty"`
	Language        string     `json:"language,omitempty"`
	Region          string     `json:"region,omitempty"`
	PopularityScore *float64   `json:"popularity_score,omitempty"`
	MentionCount    *int       `json:"mention_count,omitempty"`
	Sentiment       string     `json:"sentiment,omitempty"`
	Keywords        []string   `json:"keywords,omitempty"`
	FirstSeenAt     *time.Time `json:"first_seen_at,omitempty"`
	LastUpdatedAt   *time.Time `json:"last_updated_at,omitempty"`
	Status          string     `json:"status,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ArticleDraft is a long-form explainer written for a topic.
type ArticleDraft struct {
	ID          string     `json:"id,omitempty"`
	HotTopicID  string     `json:"hot_topic_id,omitempty"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body"`
	AuthorID    string     `json:"author_id,omitempty"`
	EditorID    string     `json:"editor_id,omitempty"`
	Status      string     `json:"status"`
	WordCount   int        `json:"word_count"`
	Language    string     `json:"language,omitempty"`
	Tags        []string   `json:"tags"`
	Version     int        `json:"version"`
	SourceLinks []string   `json:"source_links,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// VideoScript is a segmented short-video script derived from a draft.
// Numeric fields are nil when the model left them out.
type VideoScript struct {
	ID                    string    `json:"id,omitempty"`
	HotTopicID            string    `json:"hot_topic_id,omitempty"`
	Title                 string    `json:"title"`
	Style                 string    `json:"style"`
	TargetDurationSeconds *int      `json:"target_duration_seconds"`
	Language              string    `json:"language"`
	Narration             string    `json:"narration"`
	Segments              []Segment `json:"segments"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Segment is one timed part of a video script.
type Segment struct {
	OrderIndex         *int     `json:"order_index"`
	Type               string   `json:"type"`
	Text               string   `json:"text"`
	VisualNotes        string   `json:"visual_notes"`
	DurationSeconds    *int     `json:"duration_seconds"`
	AssetURLs          []string `json:"asset_urls"`
	StartOffsetSeconds *int     `json:"start_offset_seconds"`
}

// Package pairs a draft with the video script written from it. It is the
// unit handed to content sinks.
type Package struct {
	Article *ArticleDraft `json:"article"`
	Script  *VideoScript  `json:"script"`
}

// TopicID returns the hot topic the package was generated for.
func (p *Package) TopicID() string {
	if p == nil {
		return ""
	}
	if p.Article != nil && p.Article.HotTopicID != "" {
		return p.Article.HotTopicID
	}
	if p.Script != nil {
		return p.Script.HotTopicID
	}
	return ""
}

// TotalDuration sums the segment durations that are set.
func (s *VideoScript) TotalDuration() int {
	total := 0
	for _, seg := range s.Segments {
		if seg.DurationSeconds != nil {
			total += *seg.DurationSeconds
		}
	}
	return total
}
