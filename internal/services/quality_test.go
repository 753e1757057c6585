package services

import (
	"context"
	"strings"
	"testing"

	"github.com/kotashimizu/care-plan/internal/domain"
)

func samplePlan() *domain.IndividualSupportPlan {
	return &domain.IndividualSupportPlan{
		UserAndFamilyIntentions: "働き続けたい",
		ComprehensiveSupport:    "段階的な支援を行う",
		LongTermGoal:            "安定した就労を目指す",
		ShortTermGoal:           "週3日の通所に取り組む",
		SupportGoals: domain.SupportGoals{
			Employment: domain.SupportGoal{
				ItemName:          "作業習熟",
				Objective:         "軽作業を一人で完了できる",
				UserRole:          "手順書を確認しながら作業する",
				SupportContent:    "職員が隣で手順を確認する",
				AchievementPeriod: "6ヶ月",
				Provider:          "職業指導員",
			},
			DailyLife:  domain.SupportGoal{ItemName: "生活リズム"},
			SocialLife: domain.SupportGoal{ItemName: "対人関係"},
		},
	}
}

func TestQualityCheck_Success(t *testing.T) {
	fake := &fakeLLM{reply: `{"score":{"expertise":85,"specificity":78,"feasibility":90,"consistency":82,"overall":84},
		"improvements":["達成時期を明確にしてください"],
		"suggestions":["短期目標に数値基準を加える"]}`}
	svc := NewQualityService(testLog(t), fake, testCfg())

	res, err := svc.Check(context.Background(), samplePlan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score.Overall != 84 {
		t.Fatalf("expected overall 84, got %d", res.Score.Overall)
	}
	if len(res.Improvements) != 1 || len(res.Suggestions) != 1 {
		t.Fatalf("unexpected lists: %+v", res)
	}
	if fake.lastReq.System != "" {
		t.Fatalf("quality check must not send a system prompt, got %q", fake.lastReq.System)
	}
	if fake.lastReq.Model != "gpt-4o" || fake.lastReq.Timeout.Seconds() != 20 {
		t.Fatalf("unexpected call parameters: %+v", fake.lastReq)
	}
}

func TestQualityCheck_NilPlanRejected(t *testing.T) {
	fake := &fakeLLM{reply: "{}"}
	svc := NewQualityService(testLog(t), fake, testCfg())

	if _, err := svc.Check(context.Background(), nil); !IsInputError(err) {
		t.Fatalf("expected input error, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatalf("expected zero network calls, got %d", fake.calls)
	}
}

func TestQualityCheck_MissingListsNormalized(t *testing.T) {
	fake := &fakeLLM{reply: `{"score":{"expertise":70,"specificity":70,"feasibility":70,"consistency":70,"overall":70}}`}
	svc := NewQualityService(testLog(t), fake, testCfg())

	res, err := svc.Check(context.Background(), samplePlan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Improvements == nil || res.Suggestions == nil {
		t.Fatalf("expected empty slices, got nils: %+v", res)
	}
}

func TestFlattenPlan_ContainsAllSections(t *testing.T) {
	text := FlattenPlan(samplePlan())

	for _, want := range []string{
		"ご本人・ご家族の意向: 働き続けたい",
		"長期目標: 安定した就労を目指す",
		"短期目標: 週3日の通所に取り組む",
		"就労支援目標",
		"日常生活支援目標",
		"社会生活支援目標",
		"項目: 作業習熟",
		"担当: 職業指導員",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("flattened plan missing %q:\n%s", want, text)
		}
	}
}

func TestQualityCheck_PlanTextEmbeddedInPrompt(t *testing.T) {
	fake := &fakeLLM{reply: `{"score":{"expertise":70,"specificity":70,"feasibility":70,"consistency":70,"overall":70}}`}
	svc := NewQualityService(testLog(t), fake, testCfg())

	if _, err := svc.Check(context.Background(), samplePlan()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(fake.lastReq.User, "作業習熟") {
		t.Fatalf("expected plan text embedded in prompt")
	}
}
