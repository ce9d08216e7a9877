package analyzer

import (
	"regexp"
	"strings"

	"github.com/specforge-ai/specforge/pkg/models"
)

var (
	highLevelRe = regexp.MustCompile(`(?s)## High-Level Objective\s+(.*?)(?:\n##|\z)`)
	midLevelRe  = regexp.MustCompile(`(?s)## Mid-Level Objective\s+(.*?)(?:\n##|\z)`)
	implNotesRe = regexp.MustCompile(`(?s)## Implementation Notes\s+(.*?)(?:\n##|\z)`)
	beginCtxRe  = regexp.MustCompile(`(?s)### Beginning context\s+(.*?)(?:\n###|\z)`)
	endCtxRe    = regexp.MustCompile(`(?s)### Ending context\s+(.*?)(?:\n##|\z)`)
	lowLevelRe  = regexp.MustCompile(`(?s)## Low-Level Tasks.*?\n(.*?)(?:\n##|\z)`)
	taskItemRe  = regexp.MustCompile(`(?m)^\d+\.\s+`)
)

// ExtractComponents pulls the individual sections out of a generated
// specification document. Missing sections come back empty rather
// than as errors: the document is LLM output and may be ragged.
func ExtractComponents(doc string) models.SpecComponents {
	c := models.SpecComponents{
		HighLevelObjective:  section(highLevelRe, doc),
		MidLevelObjectives:  section(midLevelRe, doc),
		ImplementationNotes: section(implNotesRe, doc),
		BeginningContext:    section(beginCtxRe, doc),
		EndingContext:       section(endCtxRe, doc),
	}
	c.LowLevelTasks = splitTasks(section(lowLevelRe, doc))
	return c
}

func section(re *regexp.Regexp, doc string) string {
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// splitTasks breaks a "1. ... 2. ..." list into individual task
// descriptions, each possibly spanning multiple lines.
func splitTasks(s string) []string {
	locs := taskItemRe.FindAllStringIndex(s, -1)
	if locs == nil {
		return nil
	}
	var tasks []string
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if item := strings.TrimSpace(s[loc[1]:end]); item != "" {
			tasks = append(tasks, item)
		}
	}
	return tasks
}
