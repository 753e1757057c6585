package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/domain"
	"github.com/kotashimizu/care-plan/internal/llm"
	"github.com/kotashimizu/care-plan/internal/logger"
)

type fakeLLM struct {
	reply   string
	err     error
	calls   int
	lastReq llm.ChatRequest
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, req llm.ChatRequest) (json.RawMessage, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return llm.ExtractJSON(f.reply)
}

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func testCfg() config.OpenAIConfig {
	return config.OpenAIConfig{
		PlanModel:         "gpt-4o-mini",
		OptionsModel:      "gpt-4o-mini",
		QualityModel:      "gpt-4o",
		OptionsTimeoutSec: 45,
		PlanTimeoutSec:    35,
		QualityTimeoutSec: 20,
	}
}

func nineOptionsReply() string {
	var opts []map[string]string
	for _, cat := range []string{"A", "B", "C"} {
		for i := 1; i <= 3; i++ {
			opts = append(opts, map[string]string{
				"id":       cat + string(rune('0'+i)),
				"category": cat,
				"title":    "支援項目" + cat,
				"content":  "具体的な支援内容。週2回実施する。",
			})
		}
	}
	b, _ := json.Marshal(map[string]any{
		"userAndFamilyIntentions": "本人は通所の継続を希望している。",
		"comprehensiveSupport":    "本人のペースを尊重した段階的な支援を行う。",
		"supportPlanOptions":      opts,
	})
	return string(b)
}

func validOptionsRequest() OptionsRequest {
	return OptionsRequest{
		InterviewRecord: "本人は就労継続を希望しており、生活リズムの改善が課題。",
		ServiceType:     domain.ServiceEmploymentB,
		PlanDetailLevel: domain.DetailBasic,
	}
}

func TestGenerateOptions_NinePerCategory(t *testing.T) {
	fake := &fakeLLM{reply: nineOptionsReply()}
	svc := NewPlanService(testLog(t), fake, testCfg())

	res, err := svc.GenerateOptions(context.Background(), validOptionsRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Options) != 9 {
		t.Fatalf("expected 9 options, got %d", len(res.Options))
	}
	counts := map[domain.OptionCategory]int{}
	for _, o := range res.Options {
		counts[o.Category]++
	}
	for _, cat := range []domain.OptionCategory{domain.CategoryWork, domain.CategoryDailyLife, domain.CategorySocialLife} {
		if counts[cat] != 3 {
			t.Fatalf("expected 3 options in category %s, got %d", cat, counts[cat])
		}
	}
	if res.UserAndFamilyIntentions == nil || res.ComprehensiveSupport == nil {
		t.Fatalf("expected both summary fields populated")
	}
}

func TestGenerateOptions_MissingFieldsRejectedBeforeNetwork(t *testing.T) {
	fake := &fakeLLM{reply: nineOptionsReply()}
	svc := NewPlanService(testLog(t), fake, testCfg())

	cases := []OptionsRequest{
		{},
		{InterviewRecord: "記録", ServiceType: domain.ServiceEmploymentB},
		{InterviewRecord: "記録", PlanDetailLevel: domain.DetailBasic},
		{ServiceType: domain.ServiceEmploymentB, PlanDetailLevel: domain.DetailBasic},
	}
	for i, req := range cases {
		if _, err := svc.GenerateOptions(context.Background(), req); !IsInputError(err) {
			t.Fatalf("case %d: expected input error, got %v", i, err)
		}
	}
	if fake.calls != 0 {
		t.Fatalf("expected zero network calls, got %d", fake.calls)
	}
}

func TestGenerateOptions_MissingArrayDegradesToEmpty(t *testing.T) {
	fake := &fakeLLM{reply: `{"userAndFamilyIntentions":"","comprehensiveSupport":""}`}
	svc := NewPlanService(testLog(t), fake, testCfg())

	res, err := svc.GenerateOptions(context.Background(), validOptionsRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Options == nil || len(res.Options) != 0 {
		t.Fatalf("expected empty, non-nil options slice, got %#v", res.Options)
	}
	if res.UserAndFamilyIntentions != nil || res.ComprehensiveSupport != nil {
		t.Fatalf("blank summary fields must normalize to nil")
	}
}

func TestGenerateOptions_AssignsMissingIDs(t *testing.T) {
	fake := &fakeLLM{reply: `{"supportPlanOptions":[
		{"category":"A","title":"t","content":"c"},
		{"category":"A","title":"t2","content":"c2"},
		{"category":"Z","title":"bad","content":"ignored"}
	]}`}
	svc := NewPlanService(testLog(t), fake, testCfg())

	res, err := svc.GenerateOptions(context.Background(), validOptionsRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Options) != 2 {
		t.Fatalf("unknown categories must be dropped, got %d options", len(res.Options))
	}
	if res.Options[0].ID != "A1" || res.Options[1].ID != "A2" {
		t.Fatalf("expected generated IDs A1/A2, got %q/%q", res.Options[0].ID, res.Options[1].ID)
	}
}

func TestGenerateOptions_UsesConfiguredCallParameters(t *testing.T) {
	fake := &fakeLLM{reply: nineOptionsReply()}
	svc := NewPlanService(testLog(t), fake, testCfg())

	if _, err := svc.GenerateOptions(context.Background(), validOptionsRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.lastReq.Model != "gpt-4o-mini" || !fake.lastReq.JSONMode {
		t.Fatalf("unexpected call parameters: %+v", fake.lastReq)
	}
	if fake.lastReq.Timeout.Seconds() != 45 {
		t.Fatalf("expected 45s timeout, got %s", fake.lastReq.Timeout)
	}
	if !strings.Contains(fake.lastReq.System, "就労継続支援B型") {
		t.Fatalf("expected service type label in system prompt")
	}
}

func TestGeneratePlan_Success(t *testing.T) {
	reply := `{"userAndFamilyIntentions":"意向","comprehensiveSupport":"方針",
		"longTermGoal":"長期","shortTermGoal":"短期",
		"supportGoals":{"employment":{"itemName":"就労"},"dailyLife":{"itemName":"生活"},"socialLife":{"itemName":"社会"}},
		"qualityScore":{"expertise":85,"specificity":80,"feasibility":90,"consistency":85,"overall":85}}`
	fake := &fakeLLM{reply: reply}
	svc := NewPlanService(testLog(t), fake, testCfg())

	plan, err := svc.GeneratePlan(context.Background(), PlanRequest{
		InterviewRecord: "本人は就労を希望している。",
		FacilitySettings: &domain.FacilitySettings{
			FacilityType: domain.FacilityEmploymentB,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SupportGoals.Employment.ItemName != "就労" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if fake.lastReq.Timeout.Seconds() != 35 {
		t.Fatalf("expected 35s timeout, got %s", fake.lastReq.Timeout)
	}
}

func TestGeneratePlan_MissingRecordRejected(t *testing.T) {
	fake := &fakeLLM{reply: "{}"}
	svc := NewPlanService(testLog(t), fake, testCfg())

	if _, err := svc.GeneratePlan(context.Background(), PlanRequest{}); !IsInputError(err) {
		t.Fatalf("expected input error, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatalf("expected zero network calls, got %d", fake.calls)
	}
}

func TestGeneratePlan_UpstreamErrorPassesThrough(t *testing.T) {
	fake := &fakeLLM{err: &llm.Error{Kind: llm.KindTimeout, Message: "リクエストがタイムアウトしました"}}
	svc := NewPlanService(testLog(t), fake, testCfg())

	_, err := svc.GeneratePlan(context.Background(), PlanRequest{InterviewRecord: "記録"})
	if llm.KindOf(err) != llm.KindTimeout {
		t.Fatalf("expected timeout kind to pass through, got %v", err)
	}
}
