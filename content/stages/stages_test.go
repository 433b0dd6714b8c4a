package stages

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/errors"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/llm/mock"
	"github.com/kbukum/contentgen/logger"
	"github.com/kbukum/contentgen/modelstage"
	"github.com/kbukum/contentgen/pipeline"
	"github.com/kbukum/contentgen/util"
)

var fixedNow = time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Params: modelstage.Params{Temperature: util.Ptr(0.7), MaxTokens: util.Ptr(1200)},
		Clock:  func() time.Time { return fixedNow },
		Logger: logger.Nop(),
	}
}

func sampleTopic() *content.HotTopic {
	return &content.HotTopic{
		ID:              "t-1001",
		Title:           "AI 助手在办公场景持续升温",
		Description:     "越来越多企业尝试将 AI 助手融入日常办公流程。",
		Category:        "科技",
		SourcePlatform:  content.PlatformWeibo,
		SourceURL:       "https://weibo.com/example",
		Language:        "zh-CN",
		Region:          "CN",
		PopularityScore: util.Ptr(87654.3),
		MentionCount:    util.Ptr(15678),
		Sentiment:       "positive",
		Keywords:        []string{"AI", "办公", "效率"},
	}
}

// fixedClient answers every request with content.
func fixedClient(content string) llm.Client {
	return llm.ClientFunc(func(_ context.Context, req llm.Request) (llm.Response, error) {
		return llm.Response{RequestID: req.RequestID, Content: content}, nil
	})
}

func TestTopicExplainer(t *testing.T) {
	var seen llm.Request
	client := llm.ClientFunc(func(ctx context.Context, req llm.Request) (llm.Response, error) {
		seen = req
		return mock.New().Generate(ctx, req)
	})
	st, err := NewTopicExplainer(client, testOptions())
	if err != nil {
		t.Fatalf("NewTopicExplainer: %v", err)
	}
	draft, err := st.Transform(context.Background(), sampleTopic())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if draft.Title != "AI 助手在办公场景持续升温解读" {
		t.Errorf("Title = %q", draft.Title)
	}
	if draft.HotTopicID != "t-1001" || draft.Summary != sampleTopic().Description {
		t.Errorf("HotTopicID/Summary = %q / %q", draft.HotTopicID, draft.Summary)
	}
	if draft.WordCount != util.RuneCount(draft.Body) || draft.WordCount == 0 {
		t.Errorf("WordCount = %d", draft.WordCount)
	}
	if strings.Join(draft.Tags, ",") != "AI,办公,效率" {
		t.Errorf("Tags = %v", draft.Tags)
	}
	if draft.AuthorID != "llm" || draft.EditorID != "llm" || draft.Status != "draft" || draft.Version != 1 {
		t.Errorf("draft metadata = %+v", draft)
	}
	if !draft.CreatedAt.Equal(fixedNow) || draft.Language != "zh-CN" {
		t.Errorf("CreatedAt/Language = %v / %q", draft.CreatedAt, draft.Language)
	}

	if seen.Attributes[modelstage.AttrPromptVariantID] != ExplainVariantID || seen.Attributes["hotTopicId"] != "t-1001" {
		t.Errorf("attributes = %v", seen.Attributes)
	}
	if !strings.Contains(seen.UserPrompt, "- 热度分数：87654.3") || !strings.Contains(seen.UserPrompt, "- 关键词：AI, 办公, 效率") {
		t.Errorf("user prompt missing topic fields:\n%s", seen.UserPrompt)
	}
	if *seen.Temperature != 0.7 || *seen.MaxTokens != 1200 {
		t.Errorf("params = %v / %v", *seen.Temperature, *seen.MaxTokens)
	}
}

func TestTopicExplainer_BlankTitle(t *testing.T) {
	st, _ := NewTopicExplainer(fixedClient("  正文  "), testOptions())
	topic := sampleTopic()
	topic.Title = "   "
	draft, err := st.Transform(context.Background(), topic)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if draft.Title != FallbackDraftTitle {
		t.Errorf("Title = %q, want %q", draft.Title, FallbackDraftTitle)
	}
	if draft.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", draft.WordCount)
	}
}

func TestTopicExplainer_NilTopic(t *testing.T) {
	st, _ := NewTopicExplainer(fixedClient(""), testOptions())
	if _, err := st.Transform(context.Background(), nil); err == nil {
		t.Error("expected error for nil topic")
	}
}

func TestTopicExplainer_NilKeywordsGiveEmptyTags(t *testing.T) {
	draft := DraftFromResponse(&content.HotTopic{Title: "x"}, "", fixedNow)
	if draft.Tags == nil || len(draft.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty", draft.Tags)
	}
	if draft.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", draft.WordCount)
	}
}

func sampleDraft() *content.ArticleDraft {
	return &content.ArticleDraft{HotTopicID: "t-1", Title: "X", Language: "en", Body: "# X"}
}

func TestScriptWriter_MockReply(t *testing.T) {
	st, err := NewScriptWriter(mock.New(), testOptions())
	if err != nil {
		t.Fatalf("NewScriptWriter: %v", err)
	}
	script, err := st.Transform(context.Background(), sampleDraft())
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if script.Title != "AI 助手办公趋势解读" || script.Style != "知识解读" || script.Language != "zh-CN" {
		t.Errorf("script = %+v", script)
	}
	if script.TargetDurationSeconds == nil || *script.TargetDurationSeconds != 120 {
		t.Errorf("TargetDurationSeconds = %v", script.TargetDurationSeconds)
	}
	if len(script.Segments) != 3 || script.TotalDuration() != 38 {
		t.Fatalf("segments = %+v", script.Segments)
	}
	intro := script.Segments[0]
	if *intro.OrderIndex != 1 || intro.Type != "intro" || *intro.StartOffsetSeconds != 0 || len(intro.AssetURLs) != 0 {
		t.Errorf("intro = %+v", intro)
	}
	if script.HotTopicID != "t-1" || script.Status != "draft" || !script.UpdatedAt.Equal(fixedNow) {
		t.Errorf("metadata = %+v", script)
	}
}

func TestParseScript_Fallbacks(t *testing.T) {
	script, err := ParseScript(sampleDraft(), `{"title":"","segments":[]}`, fixedNow)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if script.Title != "X" {
		t.Errorf("Title = %q, want X", script.Title)
	}
	if script.Segments == nil || len(script.Segments) != 0 {
		t.Errorf("Segments = %#v, want empty", script.Segments)
	}
	if script.Language != "en" {
		t.Errorf("Language = %q, want en", script.Language)
	}
	if script.TargetDurationSeconds != nil {
		t.Errorf("TargetDurationSeconds = %v, want nil", *script.TargetDurationSeconds)
	}
}

func TestParseScript_MissingSegments(t *testing.T) {
	for _, doc := range []string{`{}`, `{"segments":null}`} {
		script, err := ParseScript(sampleDraft(), doc, fixedNow)
		if err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		if script.Segments == nil || len(script.Segments) != 0 {
			t.Errorf("%s: Segments = %#v", doc, script.Segments)
		}
	}
}

func TestParseScript_LenientValues(t *testing.T) {
	doc := "```json\n" + `{
	  "target_duration_seconds": "90",
	  "segments": [
	    null,
	    {"order_index": 2, "text": "hi", "asset_urls": "https://a/1.png", "duration_seconds": 7.0},
	    {"type": "outro"}
	  ]
	}` + "\n```"
	script, err := ParseScript(sampleDraft(), doc, fixedNow)
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if *script.TargetDurationSeconds != 90 {
		t.Errorf("TargetDurationSeconds = %d, want 90", *script.TargetDurationSeconds)
	}
	if len(script.Segments) != 2 {
		t.Fatalf("segments = %d, want 2 (null skipped)", len(script.Segments))
	}
	first := script.Segments[0]
	if *first.OrderIndex != 2 || *first.DurationSeconds != 7 || len(first.AssetURLs) != 1 || first.AssetURLs[0] != "https://a/1.png" {
		t.Errorf("first = %+v", first)
	}
	second := script.Segments[1]
	if second.OrderIndex != nil || second.DurationSeconds != nil || second.StartOffsetSeconds != nil {
		t.Errorf("missing numbers should be nil: %+v", second)
	}
	if second.AssetURLs == nil || len(second.AssetURLs) != 0 {
		t.Errorf("AssetURLs = %#v, want empty", second.AssetURLs)
	}
}

func TestParseScript_Errors(t *testing.T) {
	for _, doc := range []string{
		`not json at all`,
		`[1,2]`,
		`{"target_duration_seconds":"two minutes"}`,
		`{"target_duration_seconds":true}`,
		`{"segments":"none"}`,
		`{"segments":[1]}`,
	} {
		if _, err := ParseScript(sampleDraft(), doc, fixedNow); err == nil {
			t.Errorf("%s: expected error", doc)
		}
	}
}

func TestScriptWriter_MalformedResponse(t *testing.T) {
	st, _ := NewScriptWriter(fixedClient("sorry, I cannot"), testOptions())
	_, err := st.Transform(context.Background(), sampleDraft())
	if errors.CodeOf(err) != errors.ErrCodeMalformedResponse {
		t.Errorf("got %v, want MALFORMED_RESPONSE", err)
	}
}

func TestPipeline_TopicToPackage(t *testing.T) {
	client := mock.New()
	explainer, _ := NewTopicExplainer(client, testOptions())
	writer, _ := NewScriptWriter(client, testOptions())

	sink := &pipeline.Collector[*content.Package]{}
	eng, err := pipeline.New[*content.HotTopic, *content.Package](
		pipeline.FromSlice([]*content.HotTopic{sampleTopic()}), sink,
		[]pipeline.Stage{explainer, NewPackager(writer)},
		pipeline.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	pkgs := sink.Items()
	if len(pkgs) != 1 {
		t.Fatalf("packages = %d, want 1", len(pkgs))
	}
	if pkgs[0].TopicID() != "t-1001" || len(pkgs[0].Script.Segments) != 3 {
		t.Errorf("package = %+v", pkgs[0])
	}
	if client.Calls() != 2 {
		t.Errorf("model calls = %d, want 2", client.Calls())
	}
}
