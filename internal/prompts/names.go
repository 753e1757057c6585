package prompts

type PromptName string

const (
	// Full structured plan from facility settings + interview record.
	PromptPlanGeneration PromptName = "plan_generation"
	// Nine categorized options plus the two summary fields.
	PromptOptionsGeneration PromptName = "options_generation"
	// Secondary review call scoring a finished plan.
	PromptQualityCheck PromptName = "quality_check"
)
