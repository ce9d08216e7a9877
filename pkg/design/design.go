// Package design breaks a software design document into
// implementation phases and, optionally, per-phase subtasks.
package design

import (
	"context"
	"fmt"
	"strings"

	"github.com/specforge-ai/specforge/pkg/analyzer"
	"github.com/specforge-ai/specforge/pkg/config"
	"github.com/specforge-ai/specforge/pkg/llm"
	"github.com/specforge-ai/specforge/pkg/models"
)

const designSystemPrompt = `You are an expert software architect, project planner, and technical lead. ` +
	`Analyze a software design document and break it down into logical implementation phases, ` +
	`where each phase can be further broken down into specific, actionable tasks.`

// Designer drives the design breakdown pipeline.
type Designer struct {
	llm llm.Completer
	cfg config.AnalysisConfig
}

// New creates a Designer.
func New(c llm.Completer, cfg config.AnalysisConfig) *Designer {
	return &Designer{llm: c, cfg: cfg}
}

// Breakdown extracts implementation phases from a design document.
// When withSubtasks is set, each phase is additionally broken into
// subtasks with a follow-up completion per phase.
func (d *Designer) Breakdown(ctx context.Context, doc string, withSubtasks bool) ([]models.Phase, error) {
	text, err := d.complete(ctx, phaseExtractionPrompt(doc))
	if err != nil {
		return nil, fmt.Errorf("phase extraction: %w", err)
	}

	phases := ExtractPhases(text)
	if !withSubtasks {
		return phases, nil
	}

	for i := range phases {
		text, err := d.complete(ctx, subtaskPrompt(phases[i]))
		if err != nil {
			return nil, fmt.Errorf("subtasks for phase %q: %w", phases[i].Name, err)
		}
		phases[i].Subtasks = ExtractSubtasks(text)
	}
	return phases, nil
}

// AnalyzeSubtasks runs every extracted subtask through the task
// analysis pipeline and fills in its Specification. Validation is
// skipped for the per-subtask documents.
func (d *Designer) AnalyzeSubtasks(ctx context.Context, phases []models.Phase) error {
	cfg := d.cfg
	cfg.ValidationEnabled = false
	a := analyzer.New(d.llm, cfg)

	for i := range phases {
		for j := range phases[i].Subtasks {
			st := &phases[i].Subtasks[j]
			doc, err := a.Analyze(ctx, subtaskInput(*st), "")
			if err != nil {
				return fmt.Errorf("analyze subtask %q: %w", st.Title, err)
			}
			st.Specification = doc
		}
	}
	return nil
}

// subtaskInput formats a subtask as the task text for analysis.
func subtaskInput(st models.Subtask) string {
	var b strings.Builder
	b.WriteString(st.Title + "\n\n")
	if st.Description != "" {
		b.WriteString(st.Description + "\n\n")
	}
	if st.TechnicalDetails != "" {
		b.WriteString("Technical details:\n" + st.TechnicalDetails + "\n\n")
	}
	if st.Dependencies != "" {
		b.WriteString("Dependencies:\n" + st.Dependencies)
	}
	return strings.TrimSpace(b.String())
}

func (d *Designer) complete(ctx context.Context, prompt string) (string, error) {
	return d.llm.Complete(ctx, llm.Request{
		Prompt:       prompt,
		SystemPrompt: designSystemPrompt,
		Temperature:  d.cfg.Temperature,
		MaxTokens:    d.cfg.MaxTokens,
	})
}

func phaseExtractionPrompt(doc string) string {
	return fmt.Sprintf(`Analyze the following design document and break it down into logical implementation phases (3-6 recommended):

DESIGN DOCUMENT:
%s

For each phase provide a name, a brief description of its purpose, key components to implement, dependencies on other phases, and technical considerations. Focus on a progression that builds the system incrementally.`, doc)
}

func subtaskPrompt(p models.Phase) string {
	return fmt.Sprintf(`You've identified the following implementation phase:

PHASE: %s
DESCRIPTION: %s
KEY COMPONENTS: %s
DEPENDENCIES: %s
CONSIDERATIONS: %s

Break this phase into 3-7 specific, actionable subtasks. For each, provide a clear title, a detailed description, technical considerations, and any dependencies on other subtasks.`,
		p.Name, p.Description, p.Components, p.Dependencies, p.Considerations)
}
