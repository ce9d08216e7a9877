package models

// SpecComponents holds the sections extracted from a generated
// specification document.
type SpecComponents struct {
	HighLevelObjective  string   `json:"high_level_objective"`
	MidLevelObjectives  string   `json:"mid_level_objectives"`
	ImplementationNotes string   `json:"implementation_notes"`
	BeginningContext    string   `json:"beginning_context"`
	EndingContext       string   `json:"ending_context"`
	LowLevelTasks       []string `json:"low_level_tasks"`
}

// Phase is one implementation phase extracted from a design document
// breakdown.
type Phase struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Components     string    `json:"components,omitempty"`
	Dependencies   string    `json:"dependencies,omitempty"`
	Considerations string    `json:"considerations,omitempty"`
	Subtasks       []Subtask `json:"subtasks,omitempty"`
}

// Subtask is a single unit of work within a phase.
type Subtask struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TechnicalDetails string `json:"technical_details,omitempty"`
	Dependencies     string `json:"dependencies,omitempty"`
	// Specification is filled in when the subtask itself is run
	// through the analysis pipeline.
	Specification string `json:"specification,omitempty"`
}
