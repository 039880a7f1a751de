package domain

import (
	"fmt"
	"strings"
	"time"
)

// PromptLabel is the source or category of a saved prompt
type PromptLabel string

const (
	LabelChatGPT     PromptLabel = "chatgpt"
	LabelClaude      PromptLabel = "claude"
	LabelDeepSeek    PromptLabel = "deepseek"
	LabelGemini      PromptLabel = "gemini"
	LabelOther       PromptLabel = "other"
	LabelProgramming PromptLabel = "programming"
)

// PromptLabels lists every label in display order
var PromptLabels = []PromptLabel{LabelChatGPT, LabelClaude, LabelGemini, LabelDeepSeek, LabelProgramming, LabelOther}

// Prompt is a saved reusable AI prompt
type Prompt struct {
	ID        string      `json:"id"`
	Content   string      `json:"content" validate:"required"`
	Label     PromptLabel `json:"label" validate:"required,oneof=chatgpt claude gemini deepseek programming other"`
	Memo      string      `json:"memo,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// EntityID returns the prompt id
func (p Prompt) EntityID() string {
	return p.ID
}

// Validate checks field constraints
func (p Prompt) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("%w: content is blank", ErrValidation)
	}
	return nil
}

// Matches reports whether query appears in content or memo, ignoring case
func (p Prompt) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Content), q) ||
		strings.Contains(strings.ToLower(p.Memo), q)
}

// PromptUpdate is a partial prompt change. Nil fields are left untouched.
type PromptUpdate struct {
	Content *string
	Label   *PromptLabel
	Memo    *string
}

// Apply merges the update into p
func (u PromptUpdate) Apply(p *Prompt) {
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Label != nil {
		p.Label = *u.Label
	}
	if u.Memo != nil {
		p.Memo = *u.Memo
	}
}

// PromptUsage summarizes how saved prompts are distributed
type PromptUsage struct {
	AverageLength int
	CountByLabel  map[PromptLabel]int
	MostUsed      PromptLabel
	Total         int
}

// PromptQuality is the heuristic quality score of a prompt
type PromptQuality struct {
	Score       int
	Suggestions []string
}
