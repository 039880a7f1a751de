package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/domain"
)

func TestAnalyzeUsage(t *testing.T) {
	ctx := context.Background()
	repos := newRepositories(t)
	service := NewPromptService(repos.Prompts)

	usage, err := service.AnalyzeUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Total)
	assert.Equal(t, domain.LabelChatGPT, usage.MostUsed)
	assert.Len(t, usage.CountByLabel, len(domain.PromptLabels))

	for _, p := range []domain.Prompt{
		{Content: "1234567890", Label: domain.LabelGemini},
		{Content: "12345", Label: domain.LabelGemini},
		{Content: "123", Label: domain.LabelClaude},
	} {
		_, err := repos.Prompts.Create(ctx, p)
		require.NoError(t, err)
	}

	usage, err = service.AnalyzeUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, usage.Total)
	assert.Equal(t, domain.LabelGemini, usage.MostUsed)
	assert.Equal(t, 2, usage.CountByLabel[domain.LabelGemini])
	assert.Equal(t, 6, usage.AverageLength)
}

func TestSuggestedTemplates(t *testing.T) {
	service := NewPromptService(nil)

	for _, label := range domain.PromptLabels {
		assert.Len(t, service.SuggestedTemplates(label), 3, label)
	}
	assert.Equal(t, service.SuggestedTemplates(domain.LabelOther), service.SuggestedTemplates("unknown"))

	templates := service.SuggestedTemplates(domain.LabelClaude)
	templates[0] = "changed"
	assert.NotEqual(t, "changed", service.SuggestedTemplates(domain.LabelClaude)[0])
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantScore int
	}{
		{"well formed", "Explain Python decorators:\n- with an example\n- with pitfalls", 100},
		{"short", "Explain this?", 70},
		{"vague single line request", "Explain something about Python closures to me", 75},
		{"no request", "Python closures and the nonlocal keyword\nin nested functions", 95},
		{"too long", "Explain " + strings.Repeat("a", 1000) + "\nplease", 90},
		{"everything wrong", "stuff", 50},
	}

	service := NewPromptService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.QualityScore(tt.content)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, (100-tt.wantScore) > 0, len(got.Suggestions) > 0)
		})
	}
}
