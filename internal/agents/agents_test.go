package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// scriptedGen replays canned replies in order and records the prompts it saw.
type scriptedGen struct {
	replies []string
	errAt   int // 1-based call index that fails, 0 for never
	calls   int
	prompts []string
}

func (g *scriptedGen) Generate(_ context.Context, messages []llms.MessageContent) (string, error) {
	g.calls++
	last := messages[len(messages)-1]
	if text, ok := last.Parts[0].(llms.TextContent); ok {
		g.prompts = append(g.prompts, text.Text)
	}
	if g.errAt != 0 && g.calls == g.errAt {
		return "", errors.New("model unavailable")
	}
	if g.calls-1 < len(g.replies) {
		return g.replies[g.calls-1], nil
	}
	return "好的。", nil
}

type fakeSearcher struct {
	docs []schema.Document
	err  error
}

func (f *fakeSearcher) Search(context.Context, string) ([]schema.Document, error) {
	return f.docs, f.err
}

type fakeTool struct {
	output string
	err    error
	calls  int
}

func (f *fakeTool) Name() string        { return "web_search" }
func (f *fakeTool) Description() string { return "fake" }
func (f *fakeTool) Call(context.Context, string) (string, error) {
	f.calls++
	return f.output, f.err
}

func TestBuildRosterAttachesToolToResearcherOnly(t *testing.T) {
	roster := BuildRoster(&scriptedGen{}, &fakeSearcher{}, &fakeTool{})
	require.Len(t, roster, 3)
	assert.Equal(t, []string{"法律研究员", "合同分析师", "法律策略师"}, SpecialistNames())
	assert.True(t, roster[0].HasTool())
	assert.False(t, roster[1].HasTool())
	assert.False(t, roster[2].HasTool())
}

func TestAgentRunIncludesKnowledgeAndWebResults(t *testing.T) {
	gen := &scriptedGen{replies: []string{"分析完成"}}
	kb := &fakeSearcher{docs: []schema.Document{{PageContent: "第三条 违约金为合同总额的百分之十。"}}}
	tool := &fakeTool{output: "1. 违约金判例\nhttps://example.com\n摘要"}

	agent := NewAgent(specialistSpecs[0], gen, kb, tool)
	out, err := agent.Run(context.Background(), "审查违约条款")
	require.NoError(t, err)
	assert.Equal(t, "分析完成", out)
	assert.Equal(t, 1, tool.calls)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "第三条 违约金")
	assert.Contains(t, gen.prompts[0], "网络搜索结果")
	assert.Contains(t, gen.prompts[0], "违约金判例")
}

func TestAgentRunSearchFailure(t *testing.T) {
	agent := NewAgent(specialistSpecs[1], &scriptedGen{}, &fakeSearcher{err: errors.New("collection gone")}, nil)
	_, err := agent.Run(context.Background(), "审查合同")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "合同分析师")
}

func TestTeamRunSelectsNamedMembers(t *testing.T) {
	gen := &scriptedGen{replies: []string{
		"合同分析师",   // member selection
		"条款存在风险。", // analyst
		"综合结论。",   // synthesis
	}}
	kb := &fakeSearcher{docs: []schema.Document{{PageContent: "第一条"}}}

	team := NewTeam(gen, kb, BuildRoster(gen, kb, &fakeTool{}))
	result, err := team.Run(context.Background(), "审查此合同并识别关键条款、义务和潜在问题。")
	require.NoError(t, err)

	assert.Equal(t, "综合结论。", result.Content)
	require.Len(t, result.Messages, 3)
	assert.Equal(t, "user", result.Messages[0].Role)
	assert.Equal(t, "合同分析师", result.Messages[1].Name)
	assert.Equal(t, "条款存在风险。", result.Messages[1].Content)
	assert.Equal(t, "法律团队负责人", result.Messages[2].Name)
}

func TestTeamRunFallsBackToAllMembers(t *testing.T) {
	gen := &scriptedGen{replies: []string{"由我自己处理即可"}}
	kb := &fakeSearcher{}

	team := NewTeam(gen, kb, BuildRoster(gen, kb, &fakeTool{}))
	result, err := team.Run(context.Background(), "检查此文档的监管合规性问题。")
	require.NoError(t, err)

	// user + three members + coordinator
	require.Len(t, result.Messages, 5)
	assert.Equal(t, "法律研究员", result.Messages[1].Name)
	assert.Equal(t, "合同分析师", result.Messages[2].Name)
	assert.Equal(t, "法律策略师", result.Messages[3].Name)
}

func TestTeamRunMemberFailureAborts(t *testing.T) {
	// call 1 selects the strategist, call 2 is the member run and fails
	gen := &scriptedGen{replies: []string{"法律策略师"}, errAt: 2}
	kb := &fakeSearcher{}

	team := NewTeam(gen, kb, BuildRoster(gen, kb, &fakeTool{}))
	result, err := team.Run(context.Background(), "分析此文档中的潜在法律风险和责任。")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "法律策略师")
}

func TestTeamRunKnowledgeFailureAborts(t *testing.T) {
	team := NewTeam(&scriptedGen{}, &fakeSearcher{err: errors.New("unreachable")}, nil)
	_, err := team.Run(context.Background(), "研究判例")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "法律团队负责人")
}
