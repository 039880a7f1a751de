package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/theme"
)

// PromptsCmd manages saved prompts
type PromptsCmd struct {
	Add       PromptsAddCmd       `cmd:"add" help:"Save a prompt"`
	Analyze   PromptsAnalyzeCmd   `cmd:"analyze" help:"Summarize saved prompts by label"`
	Del       PromptsDelCmd       `cmd:"del" help:"Delete a prompt"`
	Edit      PromptsEditCmd      `cmd:"edit" help:"Change a prompt"`
	List      PromptsListCmd      `cmd:"list" help:"List saved prompts" default:"1"`
	Score     PromptsScoreCmd     `cmd:"score" help:"Rate a prompt and suggest improvements"`
	Search    PromptsSearchCmd    `cmd:"search" help:"Find prompts by content or memo"`
	Templates PromptsTemplatesCmd `cmd:"templates" help:"Show starter prompts for a label"`
	View      PromptsViewCmd      `cmd:"view" help:"View a prompt"`
}

// PromptsAddCmd saves a prompt
type PromptsAddCmd struct {
	Content string `arg:"" help:"Prompt text"`
	Label   string `help:"Label: chatgpt, claude, gemini, deepseek, programming or other" default:"other" short:"l"`
	Memo    string `help:"Note about when to use it" short:"m"`
}

// Run executes the add command
func (p *PromptsAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	created, err := cli.Container.Coordinator.CreatePrompt(ctx, domain.Prompt{
		Content: p.Content,
		Label:   domain.PromptLabel(p.Label),
		Memo:    p.Memo,
	})
	if err != nil {
		return fmt.Errorf("failed to save prompt: %w", err)
	}

	logging.Logger.Info("Prompt created via CLI", "id", created.ID)
	fmt.Printf("Prompt saved (id: %s)\n", created.ID)

	quality := cli.Container.PromptService.QualityScore(created.Content)
	if quality.Score < 80 {
		fmt.Printf("Quality score %d, run 'prompts score' for suggestions\n", quality.Score)
	}
	return nil
}

// PromptsListCmd lists saved prompts
type PromptsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Label  string `help:"Only prompts with this label"`
}

// Run executes the list command
func (p *PromptsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	repo := cli.Container.Repositories.Prompts

	var prompts []domain.Prompt
	var err error
	if p.Label != "" {
		prompts, err = repo.FindByLabel(ctx, domain.PromptLabel(p.Label))
	} else {
		prompts, err = repo.FindAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list prompts: %w", err)
	}
	return printPrompts(prompts, p.Format)
}

// PromptsSearchCmd finds prompts
type PromptsSearchCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Query  string `arg:"" help:"Text to look for, case insensitive"`
}

// Run executes the search command
func (p *PromptsSearchCmd) Run(cli *CLI) error {
	prompts, err := cli.Container.Repositories.Prompts.Search(context.Background(), p.Query)
	if err != nil {
		return fmt.Errorf("failed to search prompts: %w", err)
	}
	return printPrompts(prompts, p.Format)
}

// PromptsViewCmd shows one prompt
type PromptsViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Prompt id"`
}

// Run executes the view command
func (p *PromptsViewCmd) Run(cli *CLI) error {
	prompt, err := cli.Container.Repositories.Prompts.FindByID(context.Background(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to get prompt: %w", err)
	}
	if p.Format == "json" {
		return printJSON(prompt)
	}

	fmt.Printf("ID: %s\n", prompt.ID)
	fmt.Printf("Label: %s\n", prompt.Label)
	if prompt.Memo != "" {
		fmt.Printf("Memo: %s\n", prompt.Memo)
	}
	fmt.Printf("Created: %s\n", prompt.CreatedAt.Local().Format(dateTimeLayout))
	fmt.Printf("Updated: %s\n", prompt.UpdatedAt.Local().Format(dateTimeLayout))
	fmt.Println()
	fmt.Println(prompt.Content)
	return nil
}

// PromptsEditCmd changes a prompt. Only given flags are applied.
type PromptsEditCmd struct {
	Content *string `help:"Prompt text"`
	ID      string  `arg:"" help:"Prompt id"`
	Label   *string `help:"Label: chatgpt, claude, gemini, deepseek, programming or other"`
	Memo    *string `help:"Note about when to use it"`
}

// Run executes the edit command
func (p *PromptsEditCmd) Run(cli *CLI) error {
	update := domain.PromptUpdate{Content: p.Content, Memo: p.Memo}
	if p.Label != nil {
		label := domain.PromptLabel(*p.Label)
		update.Label = &label
	}
	if update.Content == nil && update.Label == nil && update.Memo == nil {
		return fmt.Errorf("nothing to change, pass at least one flag")
	}

	if _, err := cli.Container.Coordinator.UpdatePrompt(context.Background(), p.ID, update); err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	fmt.Println("Prompt updated")
	return nil
}

// PromptsDelCmd deletes a prompt
type PromptsDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	ID    string `arg:"" help:"Prompt id"`
}

// Run executes the del command
func (p *PromptsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	prompt, err := cli.Container.Repositories.Prompts.FindByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to get prompt: %w", err)
	}

	if !p.Force {
		ok, err := confirm("Delete this prompt?", truncate(prompt.Content, 60))
		if err != nil || !ok {
			return err
		}
	}

	if err := cli.Container.Coordinator.DeletePrompt(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	fmt.Println("Prompt deleted")
	return nil
}

// PromptsAnalyzeCmd summarizes prompt usage
type PromptsAnalyzeCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the analyze command
func (p *PromptsAnalyzeCmd) Run(cli *CLI) error {
	usage, err := cli.Container.PromptService.AnalyzeUsage(context.Background())
	if err != nil {
		return err
	}
	if p.Format == "json" {
		return printJSON(usage)
	}

	fmt.Printf("Saved prompts: %d\n", usage.Total)
	if usage.Total == 0 {
		return nil
	}
	fmt.Printf("Most used label: %s\n", theme.HeaderStyle.Render(string(usage.MostUsed)))
	fmt.Printf("Average length: %d characters\n\n", usage.AverageLength)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tCOUNT")
	for _, label := range domain.PromptLabels {
		fmt.Fprintf(w, "%s\t%d\n", label, usage.CountByLabel[label])
	}
	w.Flush()
	return nil
}

// PromptsTemplatesCmd shows starter prompts
type PromptsTemplatesCmd struct {
	Label string `arg:"" optional:"" help:"Label: chatgpt, claude, gemini, deepseek, programming or other" default:"other"`
}

// Run executes the templates command
func (p *PromptsTemplatesCmd) Run(cli *CLI) error {
	for i, t := range cli.Container.PromptService.SuggestedTemplates(domain.PromptLabel(p.Label)) {
		fmt.Printf("%d. %s\n", i+1, t)
	}
	return nil
}

// PromptsScoreCmd rates a prompt
type PromptsScoreCmd struct {
	Content string `arg:"" optional:"" help:"Prompt text to rate"`
	ID      string `help:"Rate a saved prompt instead"`
}

// Run executes the score command
func (p *PromptsScoreCmd) Run(cli *CLI) error {
	content := p.Content
	if p.ID != "" {
		prompt, err := cli.Container.Repositories.Prompts.FindByID(context.Background(), p.ID)
		if err != nil {
			return fmt.Errorf("failed to get prompt: %w", err)
		}
		content = prompt.Content
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("pass the prompt text or --id")
	}

	quality := cli.Container.PromptService.QualityScore(content)
	fmt.Printf("Score: %s/100\n", theme.HeaderStyle.Render(fmt.Sprintf("%d", quality.Score)))
	for _, s := range quality.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
	return nil
}

func printPrompts(prompts []domain.Prompt, format string) error {
	if format == "json" {
		return printJSON(prompts)
	}
	if len(prompts) == 0 {
		fmt.Println("No prompts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tPROMPT\tMEMO\tID")
	for _, p := range prompts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Label, truncate(p.Content, 50), truncate(p.Memo, 30), p.ID)
	}
	w.Flush()
	return nil
}
