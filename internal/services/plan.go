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
)

type OptionsRequest struct {
	InterviewRecord string                 `json:"interviewRecord"`
	ServiceType     domain.ServiceType     `json:"serviceType"`
	PlanDetailLevel domain.PlanDetailLevel `json:"planDetailLevel"`
}

// OptionsResult mirrors the generate-options response contract: summary
// fields are nil (not empty strings) when the model omitted them, so the
// JSON encodes them as null.
type OptionsResult struct {
	Options                 []domain.SupportPlanOption `json:"options"`
	UserAndFamilyIntentions *string                    `json:"userAndFamilyIntentions"`
	ComprehensiveSupport    *string                    `json:"comprehensiveSupport"`
}

type PlanRequest struct {
	InterviewRecord  string                   `json:"interviewRecord"`
	FacilitySettings *domain.FacilitySettings `json:"facilitySettings"`
}

type PlanService interface {
	GenerateOptions(ctx context.Context, req OptionsRequest) (*OptionsResult, error)
	GeneratePlan(ctx context.Context, req PlanRequest) (*domain.IndividualSupportPlan, error)
}

type planService struct {
	log *logger.Logger
	llm llm.Client
	cfg config.OpenAIConfig
}

func NewPlanService(log *logger.Logger, llmClient llm.Client, cfg config.OpenAIConfig) PlanService {
	return &planService{
		log: log.With("service", "PlanService"),
		llm: llmClient,
		cfg: cfg,
	}
}

// optionsEnvelope is the raw shape the model is instructed to return in
// options mode. Everything is optional; normalization happens below.
type optionsEnvelope struct {
	UserAndFamilyIntentions string                     `json:"userAndFamilyIntentions"`
	ComprehensiveSupport    string                     `json:"comprehensiveSupport"`
	SupportPlanOptions      []domain.SupportPlanOption `json:"supportPlanOptions"`
}

func (s *planService) GenerateOptions(ctx context.Context, req OptionsRequest) (*OptionsResult, error) {
	if strings.TrimSpace(req.InterviewRecord) == "" || req.ServiceType == "" || req.PlanDetailLevel == "" {
		return nil, newInputError("必要な項目が不足しています")
	}
	if !req.ServiceType.Valid() {
		return nil, newInputError(fmt.Sprintf("不明な事業区分です: %s", req.ServiceType))
	}
	if !req.PlanDetailLevel.Valid() {
		return nil, newInputError(fmt.Sprintf("不明なプラン詳細度です: %s", req.PlanDetailLevel))
	}

	system, user, err := buildOptionsPrompts(req)
	if err != nil {
		return nil, newInputError(err.Error())
	}

	s.log.Info("Generating support plan options",
		"service_type", req.ServiceType,
		"detail_level", req.PlanDetailLevel,
		"record_len", len(req.InterviewRecord),
	)

	raw, err := s.llm.CompleteJSON(ctx, llm.ChatRequest{
		Model:       s.cfg.OptionsModel,
		System:      system,
		User:        user,
		Temperature: 0.8,
		MaxTokens:   3000,
		JSONMode:    true,
		Timeout:     time.Duration(s.cfg.OptionsTimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	var env optionsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &llm.Error{Kind: llm.KindMalformed, Message: "AIの応答形式が正しくありません", Err: err}
	}

	return normalizeOptions(env), nil
}

// normalizeOptions fills defaults so downstream consumers never need
// null-checks: a missing array becomes an empty slice, blank IDs get
// category-indexed ones, and blank summary fields stay nil.
func normalizeOptions(env optionsEnvelope) *OptionsResult {
	out := &OptionsResult{Options: []domain.SupportPlanOption{}}

	perCategory := map[domain.OptionCategory]int{}
	for _, opt := range env.SupportPlanOptions {
		if !opt.Category.Valid() {
			continue
		}
		perCategory[opt.Category]++
		if strings.TrimSpace(opt.ID) == "" {
			opt.ID = fmt.Sprintf("%s%d", opt.Category, perCategory[opt.Category])
		}
		out.Options = append(out.Options, opt)
	}

	if v := strings.TrimSpace(env.UserAndFamilyIntentions); v != "" {
		out.UserAndFamilyIntentions = &v
	}
	if v := strings.TrimSpace(env.ComprehensiveSupport); v != "" {
		out.ComprehensiveSupport = &v
	}
	return out
}

func (s *planService) GeneratePlan(ctx context.Context, req PlanRequest) (*domain.IndividualSupportPlan, error) {
	if strings.TrimSpace(req.InterviewRecord) == "" {
		return nil, newInputError("面談記録が必要です")
	}

	system, user, err := buildPlanPrompts(req)
	if err != nil {
		return nil, newInputError(err.Error())
	}

	s.log.Info("Generating full support plan", "record_len", len(req.InterviewRecord))

	raw, err := s.llm.CompleteJSON(ctx, llm.ChatRequest{
		Model:       s.cfg.PlanModel,
		System:      system,
		User:        user,
		Temperature: 0.7,
		MaxTokens:   2200,
		JSONMode:    true,
		Timeout:     time.Duration(s.cfg.PlanTimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	var plan domain.IndividualSupportPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &llm.Error{Kind: llm.KindMalformed, Message: "AIの応答形式が正しくありません", Err: err}
	}
	return &plan, nil
}
