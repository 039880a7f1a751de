package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

// PromptRepository implements ports.PromptRepository on an EntityStore
type PromptRepository struct {
	store *EntityStore
}

var _ ports.PromptRepository = (*PromptRepository)(nil)

// NewPromptRepository creates a new PromptRepository
func NewPromptRepository(store *EntityStore) *PromptRepository {
	return &PromptRepository{store: store}
}

func (r *PromptRepository) collection() Collection[domain.Prompt] {
	return NewCollection[domain.Prompt](r.store, KeyPrompts, domain.ErrPromptNotFound)
}

// Create validates and stores a new prompt
func (r *PromptRepository) Create(ctx context.Context, prompt domain.Prompt) (*domain.Prompt, error) {
	if err := prompt.Validate(); err != nil {
		return nil, err
	}

	now := r.store.Now()
	p := prompt
	p.ID = r.store.NewID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := r.collection().Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	logging.Logger.Debug("Prompt created", "id", p.ID, "label", p.Label)
	return &p, nil
}

// Update merges a partial change into the prompt with id
func (r *PromptRepository) Update(ctx context.Context, id string, update domain.PromptUpdate) (*domain.Prompt, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: prompt id is empty", domain.ErrValidation)
	}

	p, err := r.collection().Modify(ctx, id, func(p *domain.Prompt) error {
		next := *p
		update.Apply(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		next.UpdatedAt = r.store.touch(p.UpdatedAt)
		*p = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the prompt with id
func (r *PromptRepository) Delete(ctx context.Context, id string) error {
	return r.collection().Delete(ctx, id)
}

// FindAll returns every prompt, newest first
func (r *PromptRepository) FindAll(ctx context.Context) ([]domain.Prompt, error) {
	prompts := r.collection().ReadAll(ctx)
	slices.SortStableFunc(prompts, func(a, b domain.Prompt) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return prompts, nil
}

// FindByID returns the prompt with id
func (r *PromptRepository) FindByID(ctx context.Context, id string) (*domain.Prompt, error) {
	p, err := r.collection().Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByLabel returns prompts with label, newest first
func (r *PromptRepository) FindByLabel(ctx context.Context, label domain.PromptLabel) ([]domain.Prompt, error) {
	return r.filter(ctx, func(p domain.Prompt) bool { return p.Label == label })
}

// Search returns prompts whose content or memo contains query, ignoring case
func (r *PromptRepository) Search(ctx context.Context, query string) ([]domain.Prompt, error) {
	return r.filter(ctx, func(p domain.Prompt) bool { return p.Matches(query) })
}

func (r *PromptRepository) filter(ctx context.Context, keep func(domain.Prompt) bool) ([]domain.Prompt, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.Prompt{}
	for _, p := range all {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result, nil
}
