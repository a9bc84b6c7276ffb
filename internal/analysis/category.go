// Package analysis defines the fixed analysis categories, the prompt
// templates for the three-stage pipeline, and the report assembled from its
// results.
package analysis

import (
	"fmt"
	"strings"
	"time"

	"legalteam/internal/agents"
)

// Category names one of the supported analysis types. The values are the
// labels shown in the UI.
type Category string

const (
	ContractReview  Category = "合同审查"
	LegalResearch   Category = "法律研究"
	RiskAssessment  Category = "风险评估"
	ComplianceCheck Category = "合规性检查"
	CustomQuery     Category = "自定义查询"
)

// CategoryConfig holds the canned query and the suggested focus agents for
// one category. The agent list is interpolated into prompts as a focus hint;
// it does not restrict which team members actually run.
type CategoryConfig struct {
	Query       string
	Description string
	Agents      []string
}

var categoryOrder = []Category{
	ContractReview,
	LegalResearch,
	RiskAssessment,
	ComplianceCheck,
	CustomQuery,
}

var categories = map[Category]CategoryConfig{
	ContractReview: {
		Query:       "审查此合同并识别关键条款、义务和潜在问题。",
		Description: "审查合同条款、义务和潜在问题",
		Agents:      []string{"合同分析师"},
	},
	LegalResearch: {
		Query:       "研究与此文档相关的案例和判例。",
		Description: "研究相关的法律案例和判例",
		Agents:      []string{"法律研究员"},
	},
	RiskAssessment: {
		Query:       "分析此文档中的潜在法律风险和责任。",
		Description: "评估潜在的法律风险和责任",
		Agents:      []string{"合同分析师", "法律策略师"},
	},
	ComplianceCheck: {
		Query:       "检查此文档的监管合规性问题。",
		Description: "检查监管合规性问题",
		Agents:      []string{"法律研究员", "合同分析师", "法律策略师"},
	},
	CustomQuery: {
		Description: "提出您自己的法律问题",
		Agents:      []string{"法律研究员", "合同分析师", "法律策略师"},
	},
}

// Info is the category listing entry exposed by the API.
type Info struct {
	Name        Category `json:"name"`
	Description string   `json:"description"`
	Agents      []string `json:"agents"`
}

// Infos returns all categories with descriptions and advisory agent lists,
// in presentation order.
func Infos() []Info {
	out := make([]Info, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		cfg := categories[cat]
		out = append(out, Info{Name: cat, Description: cfg.Description, Agents: cfg.Agents})
	}
	return out
}

// Categories returns all category names in presentation order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Lookup returns the configuration for a category name.
func Lookup(name string) (Category, CategoryConfig, bool) {
	cat := Category(name)
	cfg, ok := categories[cat]
	if !ok {
		return "", CategoryConfig{}, false
	}
	return cat, cfg, ok
}

// Task is the resolved query plus the focus agents for one analysis request.
type Task struct {
	Category Category
	Query    string
	Agents   []string
}

// BuildTask resolves a category name and an optional custom question into the
// query that will drive the pipeline. The question is required for the
// custom category and ignored for all others.
func BuildTask(name, question string) (Task, error) {
	cat, cfg, ok := Lookup(name)
	if !ok {
		return Task{}, fmt.Errorf("unknown analysis category %q", name)
	}

	query := cfg.Query
	if cat == CustomQuery {
		query = strings.TrimSpace(question)
		if query == "" {
			return Task{}, fmt.Errorf("custom analysis requires a question")
		}
	}
	return Task{Category: cat, Query: query, Agents: cfg.Agents}, nil
}

// MainPrompt is the stage-one prompt combining the query with the focus
// agents and the knowledge-base instruction.
func (t Task) MainPrompt() string {
	return fmt.Sprintf(
		"使用上传的文档作为参考：\n\n主要分析任务：%s\n关注领域：%s\n\n请搜索知识库并提供文档中的具体引用。",
		t.Query, strings.Join(t.Agents, "、"))
}

// KeyPointsPrompt is the stage-two prompt built from the stage-one content.
func (t Task) KeyPointsPrompt(content string) string {
	return fmt.Sprintf(
		"基于之前的分析：\n%s\n\n请用要点形式总结关键点。\n重点关注来自以下方面的见解：%s",
		content, strings.Join(t.Agents, "、"))
}

// RecommendationsPrompt is the stage-three prompt built from the stage-one
// content.
func (t Task) RecommendationsPrompt(content string) string {
	return fmt.Sprintf(
		"基于之前的分析：\n%s\n\n基于分析，您的关键建议是什么，最佳行动方案是什么？\n提供来自以下方面的具体建议：%s",
		content, strings.Join(t.Agents, "、"))
}

// Report is the completed result of one analysis, rendered as three tabs.
type Report struct {
	Category        Category         `json:"category"`
	Query           string           `json:"query"`
	Agents          []string         `json:"agents"`
	Analysis        string           `json:"analysis"`
	KeyPoints       string           `json:"key_points"`
	Recommendations string           `json:"recommendations"`
	Messages        []agents.Message `json:"messages"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
