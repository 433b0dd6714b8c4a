// Package mock provides a deterministic, offline model backend.
//
// It answers script prompts (those containing the "JSON 格式要求" marker)
// with a fixed segmented video script in JSON, and everything else with a
// structured markdown explainer. It is used by the demo command, the mock
// server and tests.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kbukum/contentgen/llm"
)

// ScriptMarker selects the JSON script reply when present in the user prompt.
const ScriptMarker = "JSON 格式要求"

// ModelName is reported in every response.
const ModelName = "mock-1"

// Generator is a deterministic llm.Provider. It is safe for concurrent use.
type Generator struct {
	calls atomic.Int64
}

// New returns a Generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Name() string                     { return "mock-llm" }
func (g *Generator) IsAvailable(context.Context) bool { return true }

// Calls returns how many requests have been answered.
func (g *Generator) Calls() int { return int(g.calls.Load()) }

// Execute answers req, echoing its request id.
func (g *Generator) Execute(ctx context.Context, req llm.Request) (llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return llm.Response{}, err
	}
	g.calls.Add(1)
	return llm.Response{
		RequestID: req.RequestID,
		Content:   Reply(req.UserPrompt),
		Model:     ModelName,
	}, nil
}

// Generate implements llm.Client.
func (g *Generator) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	return g.Execute(ctx, req)
}

// Reply returns the canned content for a user prompt.
func Reply(userPrompt string) string {
	if strings.Contains(userPrompt, ScriptMarker) {
		return scriptJSON
	}
	title := promptField(userPrompt, "热点标题：")
	if title == "" {
		title = "AI 助手在办公场景持续升温"
	}
	return fmt.Sprintf(markdownTemplate, title)
}

// promptField returns the rest of the first line that starts with "- "+label.
func promptField(prompt, label string) string {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "- "+label); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

const markdownTemplate = `# %s解读

## 背景
AI 助手正在从实验走向落地，越来越多企业开始在办公场景中尝试。

## 核心信息
- 主要场景集中在写作、总结与知识检索
- 试点部门更关注效率提升与成本控制

## 影响分析
短期内会带来流程优化与岗位能力升级，中期需要关注数据合规与组织协同。

## 观点小结
AI 助手的价值正在被验证，但需要以业务闭环和治理体系为前提。
`

const scriptJSON = `{
  "title": "AI 助手办公趋势解读",
  "style": "知识解读",
  "target_duration_seconds": 120,
  "language": "zh-CN",
  "narration": "AI 助手正逐步进入办公主流程，效率提升与治理规范并行。",
  "segments": [
    {
      "order_index": 1,
      "type": "intro",
      "text": "为什么 AI 助手正在改变办公方式？",
      "visual_notes": "快速剪影展示办公场景",
      "duration_seconds": 8,
      "asset_urls": [],
      "start_offset_seconds": 0
    },
    {
      "order_index": 2,
      "type": "main",
      "text": "从写作到总结，再到知识检索，AI 助手覆盖核心流程。",
      "visual_notes": "信息卡片+流程示意",
      "duration_seconds": 20,
      "asset_urls": [],
      "start_offset_seconds": 8
    },
    {
      "order_index": 3,
      "type": "outro",
      "text": "关键是把 AI 融入业务闭环，并建立合规治理。",
      "visual_notes": "结尾强调治理与价值",
      "duration_seconds": 10,
      "asset_urls": [],
      "start_offset_seconds": 28
    }
  ]
}`
