package hotlist

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/util"
)

// timestampLayout is an ISO-8601 local date-time with optional fraction.
const timestampLayout = "2006-01-02T15:04:05.999999999"

// ParseTopics decodes one hot list page. It returns the valid topics and
// the number of records the page carried, valid or not. An empty body or a
// missing data array is an empty page.
func ParseTopics(body []byte, now time.Time) ([]*content.HotTopic, int, error) {
	if len(body) == 0 {
		return nil, 0, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, 0, fmt.Errorf("hot list response is not valid JSON")
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return nil, 0, nil
	}
	if !data.IsArray() {
		return nil, 0, fmt.Errorf("hot list data must be an array, got %s", data.Type)
	}

	items := data.Array()
	topics := make([]*content.HotTopic, 0, len(items))
	for i, item := range items {
		if item.Type == gjson.Null {
			continue
		}
		if !item.IsObject() {
			return nil, len(items), fmt.Errorf("data[%d] must be an object, got %s", i, item.Type)
		}
		topic, err := parseTopic(item, now)
		if err != nil {
			return nil, len(items), fmt.Errorf("data[%d]: %w", i, err)
		}
		if util.IsBlank(topic.ID) || util.IsBlank(topic.Title) {
			continue
		}
		topics = append(topics, topic)
	}
	return topics, len(items), nil
}

func parseTopic(item gjson.Result, now time.Time) (*content.HotTopic, error) {
	t := &content.HotTopic{
		ID:             item.Get("topic_id").String(),
		Title:          item.Get("title").String(),
		Description:    item.Get("desc").String(),
		Category:       item.Get("category").String(),
		SourcePlatform: content.PlatformWeibo,
		SourceURL:      item.Get("source_url").String(),
		Sentiment:      item.Get("sentiment").String(),
		Keywords:       util.StringList(item.Get("tags")),
		Status:         util.DefaultIfBlank(item.Get("status").String(), content.StatusActive),
		Language:       util.DefaultIfBlank(item.Get("language").String(), content.DefaultLanguage),
		Region:         item.Get("region").String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var err error
	if t.PopularityScore, err = util.FloatField(item, "hot_score"); err != nil {
		return nil, err
	}
	if t.MentionCount, err = util.IntField(item, "mention_count"); err != nil {
		return nil, err
	}
	if t.FirstSeenAt, err = timeField(item, "first_seen_at"); err != nil {
		return nil, err
	}
	if t.LastUpdatedAt, err = timeField(item, "updated_at"); err != nil {
		return nil, err
	}
	return t, nil
}

// timeField parses a zone-less timestamp as UTC. Missing or empty gives nil.
func timeField(obj gjson.Result, key string) (*time.Time, error) {
	s := obj.Get(key).String()
	if s == "" {
		return nil, nil
	}
	ts, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &ts, nil
}
