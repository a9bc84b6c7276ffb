// Package agents holds the role-specialized legal agents and the team leader
// that coordinates them. The roster is a static table consumed by one
// factory; it is rebuilt from scratch on every successful document ingestion
// so every agent always references the current knowledge base.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/tools"
)

// Generator is the model call surface agents need. *llm.Client implements it.
type Generator interface {
	Generate(ctx context.Context, messages []llms.MessageContent) (string, error)
}

// Searcher is the knowledge-base retrieval surface. *knowledge.Base
// implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]schema.Document, error)
}

// Spec is one row of the roster table.
type Spec struct {
	Name         string
	Role         string
	Instructions []string
	WebSearch    bool
}

var specialistSpecs = []Spec{
	{
		Name: "法律研究员",
		Role: "法律研究专家",
		Instructions: []string{
			"查找并引用相关的法律案例和判例",
			"提供带有来源的详细研究摘要",
			"引用上传文档中的具体章节",
			"始终在知识库中搜索相关信息",
		},
		WebSearch: true,
	},
	{
		Name: "合同分析师",
		Role: "合同分析专家",
		Instructions: []string{
			"彻底审查合同",
			"识别关键条款和潜在问题",
			"引用文档中的具体条款",
		},
	},
	{
		Name: "法律策略师",
		Role: "法律策略专家",
		Instructions: []string{
			"制定全面的法律策略",
			"提供可执行的建议",
			"同时考虑风险和机遇",
		},
	},
}

var coordinatorSpec = Spec{
	Name: "法律团队负责人",
	Role: "法律团队协调人",
	Instructions: []string{
		"协调团队成员之间的分析工作",
		"提供全面的回复",
		"确保所有建议都有适当的来源",
		"引用上传文档的具体部分",
		"在分配任务前始终先搜索知识库",
	},
}

// SpecialistNames returns the roster member names in table order.
func SpecialistNames() []string {
	names := make([]string, len(specialistSpecs))
	for i, s := range specialistSpecs {
		names[i] = s.Name
	}
	return names
}

// Agent is one role-bound specialist sharing the team knowledge base.
type Agent struct {
	spec Spec
	gen  Generator
	kb   Searcher
	tool tools.Tool
}

func NewAgent(spec Spec, gen Generator, kb Searcher, tool tools.Tool) *Agent {
	return &Agent{spec: spec, gen: gen, kb: kb, tool: tool}
}

// BuildRoster constructs all specialists from the table. The web search tool
// is attached only to rows that declare it.
func BuildRoster(gen Generator, kb Searcher, webSearch tools.Tool) []*Agent {
	roster := make([]*Agent, 0, len(specialistSpecs))
	for _, spec := range specialistSpecs {
		var tool tools.Tool
		if spec.WebSearch {
			tool = webSearch
		}
		roster = append(roster, NewAgent(spec, gen, kb, tool))
	}
	return roster
}

func (a *Agent) Name() string { return a.spec.Name }

func (a *Agent) Role() string { return a.spec.Role }

func (a *Agent) HasTool() bool { return a.tool != nil }

// Run answers the task with knowledge-base retrieval first, then the web
// search tool when the agent has one.
func (a *Agent) Run(ctx context.Context, task string) (string, error) {
	docs, err := a.kb.Search(ctx, task)
	if err != nil {
		return "", fmt.Errorf("agent %s: %w", a.spec.Name, err)
	}

	var user strings.Builder
	user.WriteString("任务：\n")
	user.WriteString(task)
	user.WriteString("\n\n知识库检索结果：\n")
	user.WriteString(formatDocuments(docs))

	if a.tool != nil {
		found, err := a.tool.Call(ctx, task)
		if err != nil {
			return "", fmt.Errorf("agent %s tool %s: %w", a.spec.Name, a.tool.Name(), err)
		}
		user.WriteString("\n\n网络搜索结果：\n")
		user.WriteString(found)
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, a.systemPrompt()),
		llms.TextParts(schema.ChatMessageTypeHuman, user.String()),
	}
	out, err := a.gen.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("agent %s: %w", a.spec.Name, err)
	}
	return out, nil
}

func (a *Agent) systemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "你是%s，角色是%s。\n\n工作要求：\n", a.spec.Name, a.spec.Role)
	for _, inst := range a.spec.Instructions {
		b.WriteString("- ")
		b.WriteString(inst)
		b.WriteString("\n")
	}
	b.WriteString("\n请优先使用知识库检索结果，并引用文档中的具体内容。")
	return b.String()
}

func formatDocuments(docs []schema.Document) string {
	if len(docs) == 0 {
		return "（知识库中没有检索到相关内容）"
	}
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "[片段 %d]\n%s\n\n", i+1, doc.PageContent)
	}
	return strings.TrimSpace(b.String())
}
