package design

import (
	"regexp"
	"strings"

	"github.com/specforge-ai/specforge/pkg/models"
)

var (
	phaseHeaderRe  = regexp.MustCompile(`(?i)^(Phase\s+\d+[:.]?\s+|\d+\.\s+|#+\s+Phase\s+\d+\s*[:.]?\s*)`)
	subtaskStartRe = regexp.MustCompile(`(?i)^(\d+\.\s+|Subtask\s+\d+:\s+)`)
)

var phaseLabels = []struct{ label, section string }{
	{"description:", "description"},
	{"purpose:", "description"},
	{"key components:", "components"},
	{"components:", "components"},
	{"features:", "components"},
	{"dependencies:", "dependencies"},
	{"depends on:", "dependencies"},
	{"technical considerations:", "considerations"},
	{"considerations:", "considerations"},
}

var subtaskLabels = []struct{ label, section string }{
	{"description:", "description"},
	{"technical details:", "technical"},
	{"implementation details:", "technical"},
	{"technical considerations:", "technical"},
	{"considerations:", "technical"},
	{"technical:", "technical"},
	{"dependencies:", "dependencies"},
	{"depends on:", "dependencies"},
	{"prerequisite:", "dependencies"},
}

// ExtractPhases parses the LLM's phase breakdown into structured
// phases. The text is free-form model output, so parsing is
// line-oriented and lenient; if nothing parses, the whole text
// becomes a single catch-all phase.
func ExtractPhases(text string) []models.Phase {
	var phases []models.Phase
	var cur *models.Phase
	section := ""

	flush := func() {
		if cur != nil {
			phases = append(phases, trimPhase(*cur))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if phaseHeaderRe.MatchString(line) {
			flush()
			cur = &models.Phase{Name: phaseHeaderRe.ReplaceAllString(line, "")}
			section = "description"
			continue
		}
		if cur == nil {
			continue
		}

		if sec, rest, ok := matchLabel(line, phaseLabels); ok {
			section = sec
			appendPhaseSection(cur, section, rest)
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		appendPhaseSection(cur, section, line)
	}
	flush()

	if len(phases) == 0 && strings.TrimSpace(text) != "" {
		phases = []models.Phase{{
			Name:        "Implementation Phase",
			Description: strings.TrimSpace(text),
		}}
	}
	return phases
}

// ExtractSubtasks parses the LLM's subtask list for one phase,
// falling back to a single catch-all subtask when nothing parses.
func ExtractSubtasks(text string) []models.Subtask {
	var subtasks []models.Subtask
	var cur *models.Subtask
	section := ""

	flush := func() {
		if cur != nil {
			subtasks = append(subtasks, trimSubtask(*cur))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if subtaskStartRe.MatchString(line) {
			flush()
			cur = &models.Subtask{Title: subtaskStartRe.ReplaceAllString(line, "")}
			section = "description"
			continue
		}
		if cur == nil {
			continue
		}

		if sec, rest, ok := matchLabel(line, subtaskLabels); ok {
			section = sec
			appendSubtaskSection(cur, section, rest)
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		appendSubtaskSection(cur, section, line)
	}
	flush()

	if len(subtasks) == 0 && strings.TrimSpace(text) != "" {
		subtasks = []models.Subtask{{
			Title:       "Implementation Task",
			Description: strings.TrimSpace(text),
		}}
	}
	return subtasks
}

// matchLabel checks whether line starts with one of the known
// section labels (after optional list markers) and returns the
// section name plus any content on the same line.
func matchLabel(line string, labels []struct{ label, section string }) (string, string, bool) {
	trimmed := strings.TrimLeft(line, "-* \t")
	lower := strings.ToLower(trimmed)
	for _, l := range labels {
		if strings.HasPrefix(lower, l.label) {
			return l.section, strings.TrimSpace(trimmed[len(l.label):]), true
		}
	}
	return "", "", false
}

func appendPhaseSection(p *models.Phase, section, content string) {
	if content == "" {
		return
	}
	switch section {
	case "description":
		p.Description += content + " "
	case "components":
		p.Components += content + " "
	case "dependencies":
		p.Dependencies += content + " "
	case "considerations":
		p.Considerations += content + " "
	}
}

func appendSubtaskSection(s *models.Subtask, section, content string) {
	if content == "" {
		return
	}
	switch section {
	case "description":
		s.Description += content + " "
	case "technical":
		s.TechnicalDetails += content + " "
	case "dependencies":
		s.Dependencies += content + " "
	}
}

func trimPhase(p models.Phase) models.Phase {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Components = strings.TrimSpace(p.Components)
	p.Dependencies = strings.TrimSpace(p.Dependencies)
	p.Considerations = strings.TrimSpace(p.Considerations)
	return p
}

func trimSubtask(s models.Subtask) models.Subtask {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.TechnicalDetails = strings.TrimSpace(s.TechnicalDetails)
	s.Dependencies = strings.TrimSpace(s.Dependencies)
	return s
}
