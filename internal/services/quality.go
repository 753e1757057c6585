package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/domain"
	"github.com/kotashimizu/care-plan/internal/llm"
	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/prompts"
)

type QualityService interface {
	Check(ctx context.Context, plan *domain.IndividualSupportPlan) (*domain.QualityCheckResult, error)
}

type qualityService struct {
	log *logger.Logger
	llm llm.Client
	cfg config.OpenAIConfig
}

func NewQualityService(log *logger.Logger, llmClient llm.Client, cfg config.OpenAIConfig) QualityService {
	return &qualityService{
		log: log.With("service", "QualityService"),
		llm: llmClient,
		cfg: cfg,
	}
}

// Check scores an already-generated plan. Every invocation is a fresh
// model call: the plan may have been edited since the last check, so
// nothing is cached.
func (s *qualityService) Check(ctx context.Context, plan *domain.IndividualSupportPlan) (*domain.QualityCheckResult, error) {
	if plan == nil {
		return nil, newInputError("個別支援計画書が必要です")
	}

	_, user, err := prompts.Build(prompts.PromptQualityCheck, prompts.QualityInput(FlattenPlan(plan)))
	if err != nil {
		return nil, newInputError(err.Error())
	}

	s.log.Info("Running quality check")

	raw, err := s.llm.CompleteJSON(ctx, llm.ChatRequest{
		Model:       s.cfg.QualityModel,
		User:        user,
		Temperature: 0.3,
		MaxTokens:   1000,
		JSONMode:    true,
		Timeout:     time.Duration(s.cfg.QualityTimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	var result domain.QualityCheckResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &llm.Error{Kind: llm.KindMalformed, Message: "AIの応答形式が正しくありません", Err: err}
	}
	if result.Improvements == nil {
		result.Improvements = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return &result, nil
}

// FlattenPlan renders a plan into the goal-by-goal text block the
// evaluation prompt embeds.
func FlattenPlan(plan *domain.IndividualSupportPlan) string {
	goalBlock := func(label string, g domain.SupportGoal) string {
		return fmt.Sprintf(`%s:
- 項目: %s
- 目標: %s
- ご本人の役割: %s
- 支援内容: %s
- 達成時期: %s
- 担当: %s`, label, g.ItemName, g.Objective, g.UserRole, g.SupportContent, g.AchievementPeriod, g.Provider)
	}

	parts := []string{
		fmt.Sprintf("ご本人・ご家族の意向: %s", plan.UserAndFamilyIntentions),
		fmt.Sprintf("総合的な支援の方針: %s", plan.ComprehensiveSupport),
		fmt.Sprintf("長期目標: %s", plan.LongTermGoal),
		fmt.Sprintf("短期目標: %s", plan.ShortTermGoal),
		"",
		goalBlock("就労支援目標", plan.SupportGoals.Employment),
		"",
		goalBlock("日常生活支援目標", plan.SupportGoals.DailyLife),
		"",
		goalBlock("社会生活支援目標", plan.SupportGoals.SocialLife),
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
