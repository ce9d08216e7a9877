package analyzer

import "fmt"

const analysisSystemPrompt = `You are an expert software architect and project planner. ` +
	`Analyze a project requirement and break it down into detailed, actionable components ` +
	`following a specific specification template: a high-level objective, mid-level objectives, ` +
	`implementation notes, beginning and ending context, and ordered low-level tasks. ` +
	`Be thorough, specific, and practical.`

func breakdownPrompt(task, additionalContext string) string {
	if additionalContext != "" {
		additionalContext = "\n" + additionalContext
	}
	return fmt.Sprintf(`Analyze the following task and break it down into components:

TASK:
%s
%s
Provide a comprehensive breakdown with:
1. A clear high-level objective
2. Mid-level objectives (measurable steps)
3. Implementation notes (technical details, dependencies, standards)
4. Beginning and ending context (files at start and end)
5. Low-level tasks ordered from start to finish, each naming the file and function to create or update and how to test the change`, task, additionalContext)
}

func refinementPrompt(initialAnalysis string) string {
	return fmt.Sprintf(`Review and refine your initial task breakdown so every task is clear, specific, and actionable, the implementation notes cover all technical details, the contexts are complete, and the low-level tasks build on each other in a logical sequence.

Here is the initial analysis:

%s

Provide a refined version that addresses any gaps.`, initialAnalysis)
}

func formatPrompt(refinedAnalysis, tpl string) string {
	return fmt.Sprintf(`Format this refined analysis precisely into the specification template below, filling in every section.

ANALYSIS:
%s

TEMPLATE:
`+"```markdown\n%s\n```", refinedAnalysis, tpl)
}

func validationPrompt(specDocument string) string {
	return fmt.Sprintf(`Review this specification document for completeness: clear high-level objective, mid-level objectives covering all steps, sufficient implementation notes, specified contexts, and logically ordered, actionable low-level tasks.

%s

If you find issues, identify them and suggest specific improvements. If the specification meets all criteria, confirm it is valid.`, specDocument)
}

func improvementPrompt(issues, specDocument string) string {
	return fmt.Sprintf(`Based on the validation issues identified:

%s

Improve the specification document to address them:

%s

Provide the complete improved specification document.`, issues, specDocument)
}
