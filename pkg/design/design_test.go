package design

import (
	"context"
	"strings"
	"testing"

	"github.com/specforge-ai/specforge/pkg/config"
	"github.com/specforge-ai/specforge/pkg/llm"
	"github.com/specforge-ai/specforge/pkg/models"
)

type scriptedCompleter struct {
	responses []string
	prompts   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	s.prompts = append(s.prompts, req.Prompt)
	if len(s.responses) == 0 {
		return "", nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

const phasesResponse = `Phase 1: Core data layer
Description: Build the storage schema and access layer.
Key components: migrations, repositories
Dependencies: none
Considerations: keep the schema additive

Phase 2: API surface
Description: Expose the data layer over an API.
Dependencies: Phase 1
`

const subtasksResponse = `1. Define the schema
Description: Write the initial migration.
Technical details: use a single migrations file
2. Implement the repository
Description: CRUD over the schema.
Dependencies: subtask 1
`

func TestBreakdown(t *testing.T) {
	c := &scriptedCompleter{responses: []string{phasesResponse}}
	d := New(c, config.AnalysisConfig{Temperature: 0.3, MaxTokens: 4000})

	phases, err := d.Breakdown(context.Background(), "the design doc", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if phases[0].Name != "Core data layer" {
		t.Errorf("phase 1 name = %q", phases[0].Name)
	}
	if !strings.Contains(c.prompts[0], "the design doc") {
		t.Error("extraction prompt should contain the design document")
	}
	if len(phases[0].Subtasks) != 0 {
		t.Error("subtasks should not be generated unless requested")
	}
}

func TestBreakdownWithSubtasks(t *testing.T) {
	c := &scriptedCompleter{responses: []string{phasesResponse, subtasksResponse, subtasksResponse}}
	d := New(c, config.AnalysisConfig{Temperature: 0.3, MaxTokens: 4000})

	phases, err := d.Breakdown(context.Background(), "doc", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.prompts) != 3 {
		t.Fatalf("expected 1 extraction + 2 subtask completions, got %d", len(c.prompts))
	}
	if len(phases[0].Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(phases[0].Subtasks))
	}
	if phases[0].Subtasks[0].Title != "Define the schema" {
		t.Errorf("subtask title = %q", phases[0].Subtasks[0].Title)
	}
}

func TestExtractPhasesSections(t *testing.T) {
	phases := ExtractPhases(phasesResponse)
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	p := phases[0]
	if p.Description != "Build the storage schema and access layer." {
		t.Errorf("description = %q", p.Description)
	}
	if p.Components != "migrations, repositories" {
		t.Errorf("components = %q", p.Components)
	}
	if p.Considerations != "keep the schema additive" {
		t.Errorf("considerations = %q", p.Considerations)
	}
	if phases[1].Dependencies != "Phase 1" {
		t.Errorf("dependencies = %q", phases[1].Dependencies)
	}
}

func TestExtractPhasesFallback(t *testing.T) {
	phases := ExtractPhases("just prose, no structure")
	if len(phases) != 1 {
		t.Fatalf("expected 1 fallback phase, got %d", len(phases))
	}
	if phases[0].Name != "Implementation Phase" {
		t.Errorf("fallback name = %q", phases[0].Name)
	}
	if phases[0].Description != "just prose, no structure" {
		t.Errorf("fallback description = %q", phases[0].Description)
	}
}

func TestExtractSubtasksFallback(t *testing.T) {
	subtasks := ExtractSubtasks("unstructured reply")
	if len(subtasks) != 1 || subtasks[0].Title != "Implementation Task" {
		t.Errorf("fallback subtasks = %+v", subtasks)
	}
}

func TestExtractSubtasksSections(t *testing.T) {
	subtasks := ExtractSubtasks(subtasksResponse)
	if len(subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(subtasks))
	}
	if subtasks[0].Description != "Write the initial migration." {
		t.Errorf("description = %q", subtasks[0].Description)
	}
	if subtasks[0].TechnicalDetails != "use a single migrations file" {
		t.Errorf("technical details = %q", subtasks[0].TechnicalDetails)
	}
	if subtasks[1].Dependencies != "subtask 1" {
		t.Errorf("dependencies = %q", subtasks[1].Dependencies)
	}
}

func TestAnalyzeSubtasks(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"initial", "refined", "# Subtask Spec"}}
	d := New(c, config.AnalysisConfig{
		Temperature:         0.3,
		MaxTokens:           4000,
		ValidationEnabled:   true,
		MaxValidationRounds: 3,
	})

	phases := []models.Phase{{
		Name: "Core data layer",
		Subtasks: []models.Subtask{{
			Title:            "Define the schema",
			Description:      "Write the initial migration.",
			TechnicalDetails: "use a single migrations file",
			Dependencies:     "none",
		}},
	}}

	if err := d.AnalyzeSubtasks(context.Background(), phases); err != nil {
		t.Fatal(err)
	}
	if got := phases[0].Subtasks[0].Specification; got != "# Subtask Spec" {
		t.Errorf("specification = %q", got)
	}
	// Three completions per subtask: validation stays off even when
	// the designer's config enables it.
	if len(c.prompts) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(c.prompts))
	}
	for _, want := range []string{"Define the schema", "Write the initial migration.", "Technical details:\nuse a single migrations file", "Dependencies:\nnone"} {
		if !strings.Contains(c.prompts[0], want) {
			t.Errorf("breakdown prompt should contain %q", want)
		}
	}
}

func TestAnalyzeSubtasksEmptyPhases(t *testing.T) {
	c := &scriptedCompleter{}
	d := New(c, config.AnalysisConfig{Temperature: 0.3})

	if err := d.AnalyzeSubtasks(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(c.prompts) != 0 {
		t.Errorf("expected no completions, got %d", len(c.prompts))
	}
}
