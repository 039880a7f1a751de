package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

const (
	maxPromptLength = 1000
	minPromptLength = 20
)

var (
	vagueWords = regexp.MustCompile(`(?i)\b(anything|something|somehow|stuff|things|whatever)\b`)

	// imperative openers that make a request explicit without a question mark
	requestWords = regexp.MustCompile(`(?i)\b(explain|write|create|list|describe|summarize|show|give|tell|help|compare|review|fix|implement|analyze|refactor|translate|please)\b`)

	structureLine = regexp.MustCompile(`(?m)^\s*([-*•]|\d+[.)])\s+`)
)

var promptTemplates = map[domain.PromptLabel][]string{
	domain.LabelChatGPT: {
		"Write Python code that implements [task].",
		"Explain [concept] so that a beginner can follow it.",
		"Fix the error in the following code:\n```python\n[code]\n```",
	},
	domain.LabelClaude: {
		"Explain [topic] in detail.",
		"Create a Python program with these requirements:\n- [requirement 1]\n- [requirement 2]",
		"Compare the advantages and disadvantages of [subject].",
	},
	domain.LabelGemini: {
		"Show me the basic usage of [technology].",
		"Implement [algorithm] in [language].",
		"What causes [error message] and how do I fix it?",
	},
	domain.LabelDeepSeek: {
		"Solve [math problem] step by step.",
		"Analyze the time complexity of [algorithm].",
		"Give an example implementation of [technical concept].",
	},
	domain.LabelProgramming: {
		"How do I implement [feature] in [language]?",
		"Optimize the following code:\n```\n[code]\n```",
		"Show an example implementation of the [design pattern] pattern.",
	},
	domain.LabelOther: {
		"[question]",
		"Help me with [task].",
		"Tell me about [topic].",
	},
}

// PromptService analyzes saved prompts
type PromptService struct {
	prompts ports.PromptReader
}

// NewPromptService creates a new PromptService
func NewPromptService(prompts ports.PromptReader) *PromptService {
	return &PromptService{prompts: prompts}
}

// AnalyzeUsage summarizes saved prompts by label and length
func (s *PromptService) AnalyzeUsage(ctx context.Context) (domain.PromptUsage, error) {
	prompts, err := s.prompts.FindAll(ctx)
	if err != nil {
		return domain.PromptUsage{}, fmt.Errorf("failed to load prompts: %w", err)
	}

	usage := domain.PromptUsage{
		CountByLabel: make(map[domain.PromptLabel]int, len(domain.PromptLabels)),
		Total:        len(prompts),
	}
	for _, label := range domain.PromptLabels {
		usage.CountByLabel[label] = 0
	}

	totalLength := 0
	for _, p := range prompts {
		usage.CountByLabel[p.Label]++
		totalLength += utf8.RuneCountInString(p.Content)
	}

	// Ties go to the label listed first
	usage.MostUsed = domain.PromptLabels[0]
	for _, label := range domain.PromptLabels {
		if usage.CountByLabel[label] > usage.CountByLabel[usage.MostUsed] {
			usage.MostUsed = label
		}
	}

	if usage.Total > 0 {
		usage.AverageLength = int(math.Round(float64(totalLength) / float64(usage.Total)))
	}
	return usage, nil
}

// SuggestedTemplates returns starter prompts for label. Unknown labels get
// the generic templates.
func (s *PromptService) SuggestedTemplates(label domain.PromptLabel) []string {
	templates, ok := promptTemplates[label]
	if !ok {
		templates = promptTemplates[domain.LabelOther]
	}
	return append([]string(nil), templates...)
}

// QualityScore rates a prompt from 0 to 100 and lists improvements
func (s *PromptService) QualityScore(content string) domain.PromptQuality {
	quality := domain.PromptQuality{Score: 100, Suggestions: []string{}}
	penalize := func(points int, suggestion string) {
		quality.Score -= points
		quality.Suggestions = append(quality.Suggestions, suggestion)
	}

	switch length := utf8.RuneCountInString(content); {
	case length < minPromptLength:
		penalize(20, "Add more detail about what you need")
	case length > maxPromptLength:
		penalize(10, "The prompt is long; trim it to the essentials")
	}

	if vagueWords.MatchString(content) {
		penalize(15, "Replace vague words with specific ones")
	}

	if !strings.Contains(content, "\n") && !structureLine.MatchString(content) {
		penalize(10, "Break the prompt into lines or a list")
	}

	if !strings.Contains(content, "?") && !requestWords.MatchString(content) {
		penalize(5, "State the question or request explicitly")
	}

	quality.Score = max(quality.Score, 0)
	return quality
}
