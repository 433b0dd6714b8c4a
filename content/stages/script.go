package stages

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/errors"
	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/modelstage"
	"github.com/kbukum/contentgen/util"
)

// ScriptVariantID identifies the script writer prompt.
const ScriptVariantID = "article-to-video-v1"

const scriptSystemPrompt = `你是视频脚本策划，擅长把文章改写成分段视频脚本。
输出必须是 JSON，严格可解析，不要出现多余文本。
`

const scriptUserPrompt = `请把以下文章改写为视频脚本，并输出 JSON：
- 文章标题：%s
- 文章摘要：%s
- 文章正文（Markdown）：%s

JSON 格式要求（字段名必须一致）：
{
  "title": "视频标题",
  "style": "视频风格",
  "target_duration_seconds": 120,
  "language": "zh-CN",
  "narration": "全片旁白文本",
  "segments": [
    {
      "order_index": 1,
      "type": "intro|main|outro",
      "text": "本段口播文本",
      "visual_notes": "画面/镜头提示",
      "duration_seconds": 8,
      "asset_urls": ["https://..."],
      "start_offset_seconds": 0
    }
  ]
}

写作要求：
1) 结构清晰，包含开场、主体、结尾。
2) 文案简洁，适合口播。
3) 时长分配合理，总时长接近目标时长。
`

// ScriptWriter is the Draft-to-Script stage.
type ScriptWriter = modelstage.Stage[*content.ArticleDraft, *content.VideoScript]

// NewScriptWriter builds the stage rewriting a draft as a segmented script.
func NewScriptWriter(client llm.Client, opts Options) (*ScriptWriter, error) {
	return modelstage.New(modelstage.Config[*content.ArticleDraft, *content.VideoScript]{
		Name:   "script-writer",
		Client: client,
		Variants: func(d *content.ArticleDraft) ([]modelstage.PromptVariant, error) {
			if d == nil {
				return nil, errors.InvalidInput("draft", "is nil")
			}
			return []modelstage.PromptVariant{ScriptPrompt(d)}, nil
		},
		Params: opts.Params,
		Parse: func(d *content.ArticleDraft, resp llm.Response) (*content.VideoScript, error) {
			return ParseScript(d, resp.Content, opts.now())
		},
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
	})
}

// ScriptPrompt builds the script writer prompt for d.
func ScriptPrompt(d *content.ArticleDraft) modelstage.PromptVariant {
	return modelstage.PromptVariant{
		ID:           ScriptVariantID,
		SystemPrompt: scriptSystemPrompt,
		UserPrompt:   fmt.Sprintf(scriptUserPrompt, d.Title, d.Summary, d.Body),
	}
}

// ParseScript decodes the model's JSON script for draft d.
//
// Field defaults:
//   - title and language fall back to the draft's when blank or missing.
//   - style and narration are empty when missing.
//   - numeric fields are nil when missing or null. Numbers and numeric
//     strings are accepted; anything else is an error.
//   - segments is empty when missing, null or empty. Null entries are skipped.
//   - asset_urls is empty when missing; a single value becomes a one-element list.
func ParseScript(d *content.ArticleDraft, raw string, now time.Time) (*content.VideoScript, error) {
	doc := llm.ExtractJSON(raw)
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("script is not valid JSON")
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return nil, fmt.Errorf("script must be a JSON object, got %s", root.Type)
	}

	target, err := util.IntField(root, "target_duration_seconds")
	if err != nil {
		return nil, err
	}
	segments, err := parseSegments(root.Get("segments"))
	if err != nil {
		return nil, err
	}

	return &content.VideoScript{
		HotTopicID:            d.HotTopicID,
		Title:                 util.DefaultIfBlank(root.Get("title").String(), d.Title),
		Style:                 root.Get("style").String(),
		TargetDurationSeconds: target,
		Language:              util.DefaultIfBlank(root.Get("language").String(), d.Language),
		Narration:             root.Get("narration").String(),
		Segments:              segments,
		Status:                content.StatusDraft,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

func parseSegments(arr gjson.Result) ([]content.Segment, error) {
	if !arr.Exists() || arr.Type == gjson.Null {
		return []content.Segment{}, nil
	}
	if !arr.IsArray() {
		return nil, fmt.Errorf("segments must be an array, got %s", arr.Type)
	}
	items := arr.Array()
	out := make([]content.Segment, 0, len(items))
	for i, item := range items {
		if item.Type == gjson.Null {
			continue
		}
		if !item.IsObject() {
			return nil, fmt.Errorf("segments[%d] must be an object, got %s", i, item.Type)
		}
		seg, err := parseSegment(item)
		if err != nil {
			return nil, fmt.Errorf("segments[%d]: %w", i, err)
		}
		out = append(out, seg)
	}
	return out, nil
}

func parseSegment(item gjson.Result) (content.Segment, error) {
	var (
		seg content.Segment
		err error
	)
	if seg.OrderIndex, err = util.IntField(item, "order_index"); err != nil {
		return seg, err
	}
	if seg.DurationSeconds, err = util.IntField(item, "duration_seconds"); err != nil {
		return seg, err
	}
	if seg.StartOffsetSeconds, err = util.IntField(item, "start_offset_seconds"); err != nil {
		return seg, err
	}
	seg.Type = item.Get("type").String()
	seg.Text = item.Get("text").String()
	seg.VisualNotes = item.Get("visual_notes").String()
	seg.AssetURLs = util.StringList(item.Get("asset_urls"))
	if seg.AssetURLs == nil {
		seg.AssetURLs = []string{}
	}
	return seg, nil
}
