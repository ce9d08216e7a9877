// Package analyzer turns a free-form task description into a
// structured specification document through a fixed sequence of
// completion prompts: breakdown, refinement, template formatting,
// and an optional bounded validation loop.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/specforge-ai/specforge/pkg/config"
	"github.com/specforge-ai/specforge/pkg/llm"
	"github.com/specforge-ai/specforge/pkg/search"
	"github.com/specforge-ai/specforge/pkg/template"
)

// Searcher supplies web results for the optional context step before
// the initial breakdown.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]search.Result, error)
}

// Analyzer drives the task analysis pipeline.
type Analyzer struct {
	llm    llm.Completer
	cfg    config.AnalysisConfig
	search Searcher
}

// New creates an Analyzer.
func New(c llm.Completer, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{llm: c, cfg: cfg}
}

// WithSearch enables the web search context step.
func (a *Analyzer) WithSearch(s Searcher) *Analyzer {
	a.search = s
	return a
}

// Analyze generates a specification document for task. An empty tpl
// selects the default template.
func (a *Analyzer) Analyze(ctx context.Context, task, tpl string) (string, error) {
	if tpl == "" {
		tpl = template.Default
	}
	if err := template.Validate(tpl); err != nil {
		return "", err
	}

	var extra string
	if a.search != nil {
		extra = a.searchContext(ctx, task)
	}

	initial, err := a.complete(ctx, breakdownPrompt(task, extra), a.cfg.Temperature)
	if err != nil {
		return "", fmt.Errorf("initial analysis: %w", err)
	}

	refined, err := a.complete(ctx, refinementPrompt(initial), a.cfg.Temperature)
	if err != nil {
		return "", fmt.Errorf("refinement: %w", err)
	}

	doc, err := a.complete(ctx, formatPrompt(refined, tpl), a.cfg.Temperature)
	if err != nil {
		return "", fmt.Errorf("template formatting: %w", err)
	}

	if a.cfg.ValidationEnabled {
		doc, err = a.validate(ctx, doc)
		if err != nil {
			return "", fmt.Errorf("validation: %w", err)
		}
	}
	return doc, nil
}

// searchContext fetches web results for the task and formats them as
// extra prompt context. Search failures are logged and the analysis
// continues without the context.
func (a *Analyzer) searchContext(ctx context.Context, task string) string {
	results, err := a.search.Search(ctx, task, 3)
	if err != nil {
		log.Printf("web search: %v", err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("ADDITIONAL CONTEXT FROM WEB SEARCH:\n\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Description)
	}
	return b.String()
}

// validate runs up to MaxValidationRounds review/improve cycles,
// stopping early once the reviewer signs off.
func (a *Analyzer) validate(ctx context.Context, doc string) (string, error) {
	for i := 0; i < a.cfg.MaxValidationRounds; i++ {
		verdict, err := a.complete(ctx, validationPrompt(doc), 0.2)
		if err != nil {
			return "", err
		}
		if approved(verdict) {
			break
		}
		doc, err = a.complete(ctx, improvementPrompt(verdict, doc), 0.2)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func approved(verdict string) bool {
	lower := strings.ToLower(verdict)
	for _, term := range []string{"is valid", "meets all criteria", "no issues"} {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func (a *Analyzer) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	return a.llm.Complete(ctx, llm.Request{
		Prompt:       prompt,
		SystemPrompt: analysisSystemPrompt,
		Temperature:  temperature,
		MaxTokens:    a.cfg.MaxTokens,
	})
}
