package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryTable(t *testing.T) {
	cases := []struct {
		category Category
		query    string
		agents   []string
	}{
		{ContractReview, "审查此合同并识别关键条款、义务和潜在问题。", []string{"合同分析师"}},
		{LegalResearch, "研究与此文档相关的案例和判例。", []string{"法律研究员"}},
		{RiskAssessment, "分析此文档中的潜在法律风险和责任。", []string{"合同分析师", "法律策略师"}},
		{ComplianceCheck, "检查此文档的监管合规性问题。", []string{"法律研究员", "合同分析师", "法律策略师"}},
		{CustomQuery, "", []string{"法律研究员", "合同分析师", "法律策略师"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			_, cfg, ok := Lookup(string(tc.category))
			require.True(t, ok)
			assert.Equal(t, tc.query, cfg.Query)
			assert.Equal(t, tc.agents, cfg.Agents)
		})
	}
}

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{
		ContractReview, LegalResearch, RiskAssessment, ComplianceCheck, CustomQuery,
	}, Categories())
}

func TestInfosCarryDescriptionsAndAgents(t *testing.T) {
	infos := Infos()
	require.Len(t, infos, 5)
	for _, info := range infos {
		assert.NotEmpty(t, info.Description, string(info.Name))
		assert.NotEmpty(t, info.Agents, string(info.Name))
	}
	assert.Equal(t, ContractReview, infos[0].Name)
	assert.Equal(t, CustomQuery, infos[4].Name)
}

func TestBuildTaskCannedCategoryIgnoresQuestion(t *testing.T) {
	task, err := BuildTask("合同审查", "这个问题会被忽略")
	require.NoError(t, err)
	assert.Equal(t, ContractReview, task.Category)
	assert.Equal(t, "审查此合同并识别关键条款、义务和潜在问题。", task.Query)
}

func TestBuildTaskCustomRequiresQuestion(t *testing.T) {
	_, err := BuildTask("自定义查询", "   ")
	assert.Error(t, err)

	task, err := BuildTask("自定义查询", " 合同的保密条款是否可执行？ ")
	require.NoError(t, err)
	assert.Equal(t, "合同的保密条款是否可执行？", task.Query)
}

func TestBuildTaskUnknownCategory(t *testing.T) {
	_, err := BuildTask("知识产权审查", "")
	assert.Error(t, err)
}

func TestPromptTemplates(t *testing.T) {
	task, err := BuildTask("风险评估", "")
	require.NoError(t, err)

	main := task.MainPrompt()
	assert.Contains(t, main, "使用上传的文档作为参考：")
	assert.Contains(t, main, "主要分析任务：分析此文档中的潜在法律风险和责任。")
	assert.Contains(t, main, "关注领域：合同分析师、法律策略师")
	assert.Contains(t, main, "请搜索知识库并提供文档中的具体引用。")

	key := task.KeyPointsPrompt("一阶段结论")
	assert.Contains(t, key, "基于之前的分析：\n一阶段结论")
	assert.Contains(t, key, "请用要点形式总结关键点。")
	assert.Contains(t, key, "重点关注来自以下方面的见解：合同分析师、法律策略师")

	rec := task.RecommendationsPrompt("一阶段结论")
	assert.Contains(t, rec, "基于之前的分析：\n一阶段结论")
	assert.Contains(t, rec, "最佳行动方案是什么？")
	assert.Contains(t, rec, "提供来自以下方面的具体建议：合同分析师、法律策略师")
}
