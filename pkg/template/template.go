// Package template handles the specification document template:
// the built-in default, custom template files, and rendering.
package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/specforge-ai/specforge/pkg/models"
)

// Default is the built-in specification template. Custom templates
// must carry the same placeholders.
const Default = `# Specification Template
> Ingest the information from this file, implement the Low-Level Tasks, and generate the code that will satisfy the High and Mid-Level Objectives.

## High-Level Objective

- {high_level_objective}

## Mid-Level Objective

{mid_level_objectives}

## Implementation Notes

{implementation_notes}

## Context

### Beginning context

{beginning_context}

### Ending context

{ending_context}

## Low-Level Tasks

> Ordered from start to finish

{low_level_tasks}
`

// placeholders every template must contain.
var placeholders = []string{
	"{high_level_objective}",
	"{mid_level_objectives}",
	"{implementation_notes}",
	"{beginning_context}",
	"{ending_context}",
	"{low_level_tasks}",
}

// Load reads a custom template file and validates it.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	tpl := string(data)
	if err := Validate(tpl); err != nil {
		return "", err
	}
	return tpl, nil
}

// Validate checks that a template contains every required
// placeholder.
func Validate(tpl string) error {
	var missing []string
	for _, p := range placeholders {
		if !strings.Contains(tpl, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("template missing placeholders: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Render substitutes the extracted spec components into tpl.
func Render(tpl string, c models.SpecComponents) string {
	tasks := make([]string, 0, len(c.LowLevelTasks))
	for i, t := range c.LowLevelTasks {
		tasks = append(tasks, fmt.Sprintf("%d. %s", i+1, t))
	}

	r := strings.NewReplacer(
		"{high_level_objective}", c.HighLevelObjective,
		"{mid_level_objectives}", c.MidLevelObjectives,
		"{implementation_notes}", c.ImplementationNotes,
		"{beginning_context}", c.BeginningContext,
		"{ending_context}", c.EndingContext,
		"{low_level_tasks}", strings.Join(tasks, "\n"),
	)
	return r.Replace(tpl)
}
