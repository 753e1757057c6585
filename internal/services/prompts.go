package services

import (
	"github.com/kotashimizu/care-plan/internal/prompts"
)

func buildOptionsPrompts(req OptionsRequest) (string, string, error) {
	in := prompts.OptionsInput(req.ServiceType, req.PlanDetailLevel, req.InterviewRecord)
	return prompts.Build(prompts.PromptOptionsGeneration, in)
}

func buildPlanPrompts(req PlanRequest) (string, string, error) {
	in := prompts.PlanInput(req.FacilitySettings, req.InterviewRecord)
	return prompts.Build(prompts.PromptPlanGeneration, in)
}
