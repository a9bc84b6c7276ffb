package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Message is one entry of a team run transcript.
type Message struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// RunResult is the outcome of one coordinated team run.
type RunResult struct {
	Content  string    `json:"content"`
	Messages []Message `json:"messages"`
}

// Runner is the team surface the analysis service depends on.
type Runner interface {
	Run(ctx context.Context, task string) (*RunResult, error)
}

// Team is the coordinator plus its specialist roster. The coordinator
// searches the knowledge base before delegating, picks the members it wants
// to involve, and synthesizes their findings into the final answer.
type Team struct {
	spec    Spec
	gen     Generator
	kb      Searcher
	members []*Agent
}

func NewTeam(gen Generator, kb Searcher, members []*Agent) *Team {
	return &Team{spec: coordinatorSpec, gen: gen, kb: kb, members: members}
}

func (t *Team) Name() string { return t.spec.Name }

// Run executes one full coordination round. Any model, retrieval or tool
// failure aborts the whole run; there are no retries and no partial results.
func (t *Team) Run(ctx context.Context, task string) (*RunResult, error) {
	docs, err := t.kb.Search(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("coordinator %s: %w", t.spec.Name, err)
	}

	selected := t.selectMembers(ctx, task)

	messages := []Message{{Role: "user", Content: task}}
	var findings strings.Builder
	for _, m := range selected {
		out, err := m.Run(ctx, task)
		if err != nil {
			return nil, err
		}
		messages = append(messages, Message{Role: "assistant", Name: m.Name(), Content: out})
		fmt.Fprintf(&findings, "%s（%s）的结论：\n%s\n\n", m.Name(), m.Role(), out)
	}

	final, err := t.synthesize(ctx, task, docs, findings.String())
	if err != nil {
		return nil, fmt.Errorf("coordinator %s: %w", t.spec.Name, err)
	}
	messages = append(messages, Message{Role: "assistant", Name: t.spec.Name, Content: final})

	return &RunResult{Content: final, Messages: messages}, nil
}

// selectMembers asks the coordinator model which roster members should work
// on the task and matches their names against its reply. The task text only
// suggests a focus; when the reply names nobody recognizable, or the model
// call fails, the whole roster runs.
func (t *Team) selectMembers(ctx context.Context, task string) []*Agent {
	var listing strings.Builder
	for _, m := range t.members {
		fmt.Fprintf(&listing, "- %s：%s\n", m.Name(), m.Role())
	}

	prompt := fmt.Sprintf(
		"团队成员：\n%s\n任务：\n%s\n\n请仅回复应当参与此任务的成员名称，用逗号分隔。",
		listing.String(), task)

	reply, err := t.gen.Generate(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, t.systemPrompt()),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return t.members
	}

	var selected []*Agent
	for _, m := range t.members {
		if strings.Contains(reply, m.Name()) {
			selected = append(selected, m)
		}
	}
	if len(selected) == 0 {
		return t.members
	}
	return selected
}

func (t *Team) synthesize(ctx context.Context, task string, docs []schema.Document, findings string) (string, error) {
	var user strings.Builder
	user.WriteString("任务：\n")
	user.WriteString(task)
	user.WriteString("\n\n知识库检索结果：\n")
	user.WriteString(formatDocuments(docs))
	user.WriteString("\n\n团队成员的分析结果：\n")
	user.WriteString(findings)
	user.WriteString("\n请综合以上内容给出完整的最终回复，并注明来源。")

	return t.gen.Generate(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, t.systemPrompt()),
		llms.TextParts(schema.ChatMessageTypeHuman, user.String()),
	})
}

func (t *Team) systemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "你是%s，角色是%s。\n\n工作要求：\n", t.spec.Name, t.spec.Role)
	for _, inst := range t.spec.Instructions {
		b.WriteString("- ")
		b.WriteString(inst)
		b.WriteString("\n")
	}
	return b.String()
}
