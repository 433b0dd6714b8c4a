package mockserver

// HotItem is one record of the hot list wire format.
type HotItem struct {
	TopicID      string   `json:"topic_id"`
	Title        string   `json:"title"`
	Desc         string   `json:"desc,omitempty"`
	Category     string   `json:"category,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	HotScore     float64  `json:"hot_score,omitempty"`
	MentionCount int      `json:"mention_count,omitempty"`
	Sentiment    string   `json:"sentiment,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	FirstSeenAt  string   `json:"first_seen_at,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
	Language     string   `json:"language,omitempty"`
	Region       string   `json:"region,omitempty"`
	Status       string   `json:"status,omitempty"`
}

// HotPage is the body of GET /weibo/hot.
type HotPage struct {
	Data []HotItem `json:"data"`
}

// DefaultTopics returns the fixture hot list.
func DefaultTopics() []HotItem {
	return []HotItem{{
		TopicID:      "t-1001",
		Title:        "AI 助手在办公场景持续升温",
		Desc:         "越来越多企业尝试将 AI 助手融入日常办公流程。",
		Category:     "科技",
		SourceURL:    "https://weibo.com/example",
		HotScore:     87654.3,
		MentionCount: 15678,
		Sentiment:    "positive",
		Tags:         []string{"AI", "办公", "效率"},
		FirstSeenAt:  "2024-10-01T08:00:00",
		UpdatedAt:    "2024-10-01T09:00:00",
		Language:     "zh-CN",
		Region:       "CN",
		Status:       "active",
	}}
}
