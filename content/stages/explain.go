package stages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/errors"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/modelstage"
	"github.com/kbukum/contentgen/util"
)

// ExplainVariantID identifies the topic explainer prompt.
const ExplainVariantID = "topic-explain-v1"

// FallbackDraftTitle is used when the topic has no title.
const FallbackDraftTitle = "热点解读"

const explainSystemPrompt = `你是资深内容编辑，擅长公众号/知乎风格的热点解读。
输出必须是 Markdown，结构清晰，语言克制、专业、可读。
`

const explainUserPrompt = `请基于以下热点信息撰写解读文章，输出 Markdown：
- 热点标题：%s
- 热点描述：%s
- 分类：%s
- 来源平台：%s
- 来源链接：%s
- 语言：%s
- 地区：%s
- 热度分数：%s
- 讨论量：%s
- 情感倾向：%s
- 关键词：%s

写作要求：
1) 标题使用一级标题（#）。
2) 正文分段清晰，包含背景、核心信息、影响分析、观点小结。
3) 适当使用项目符号或小标题，但不要过度营销。
4) 如信息不足，允许合理补充常识性背景，但需保持谨慎措辞。
`

// TopicExplainer is the Topic-to-Draft stage.
type TopicExplainer = modelstage.Stage[*content.HotTopic, *content.ArticleDraft]

// NewTopicExplainer builds the stage writing a markdown explainer per topic.
func NewTopicExplainer(client llm.Client, opts Options) (*TopicExplainer, error) {
	return modelstage.New(modelstage.Config[*content.HotTopic, *content.ArticleDraft]{
		Name:   "topic-explainer",
		Client: client,
		Variants: func(t *content.HotTopic) ([]modelstage.PromptVariant, error) {
			if t == nil {
				return nil, errors.InvalidInput("topic", "is nil")
			}
			return []modelstage.PromptVariant{ExplainPrompt(t)}, nil
		},
		Request: modelstage.WithAttributes(modelstage.DefaultRequest[*content.HotTopic](opts.Params),
			func(t *content.HotTopic) map[string]any {
				return map[string]any{"hotTopicId": t.ID}
			}),
		Parse: func(t *content.HotTopic, resp llm.Response) (*content.ArticleDraft, error) {
			return DraftFromResponse(t, resp.Content, opts.now()), nil
		},
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
}

// ExplainPrompt builds the explainer prompt for t.
func ExplainPrompt(t *content.HotTopic) modelstage.PromptVariant {
	score := ""
	if t.PopularityScore != nil {
		score = strconv.FormatFloat(*t.PopularityScore, 'f', -1, 64)
	}
	mentions := ""
	if t.MentionCount != nil {
		mentions = strconv.Itoa(*t.MentionCount)
	}
	return modelstage.PromptVariant{
		ID:           ExplainVariantID,
		SystemPrompt: explainSystemPrompt,
		UserPrompt: fmt.Sprintf(explainUserPrompt,
			t.Title, t.Description, t.Category, t.SourcePlatform, t.SourceURL,
			t.Language, t.Region, score, mentions, t.Sentiment,
			strings.Join(t.Keywords, ", "),
		),
	}
}

// DraftTitle returns "<title>解读", or FallbackDraftTitle for a blank title.
func DraftTitle(t *content.HotTopic) string {
	if util.IsBlank(t.Title) {
		return FallbackDraftTitle
	}
	return t.Title + "解读"
}
