// Package assembly turns a user's selected support options into the
// fixed-shape 個別支援計画書 record used for preview and PDF export.
package assembly

import (
	"strings"

	"github.com/kotashimizu/care-plan/internal/domain"
)

// Metadata is operator-entered document metadata: the user's name, the
// creation date split into parts the way the printed form shows them, and
// the responsible staff member.
type Metadata struct {
	UserName           string `json:"userName"`
	CreatedYear        string `json:"createdYear"`
	CreatedMonth       string `json:"createdMonth"`
	CreatedDay         string `json:"createdDay"`
	ServiceManagerName string `json:"serviceManagerName"`
}

// Request carries everything assembly needs. Intentions and support are
// the AI-produced summary strings when present; nil means synthesize a
// default.
type Request struct {
	SelectedOptions         []domain.SupportPlanOption `json:"selectedOptions"`
	ServiceType             domain.ServiceType         `json:"serviceType"`
	InterviewRecord         string                     `json:"interviewRecord"`
	UserAndFamilyIntentions *string                    `json:"userAndFamilyIntentions"`
	ComprehensiveSupport    *string                    `json:"comprehensiveSupport"`
	Metadata                Metadata                   `json:"userInfo"`
}

// PlanDocument is the assembled, export-ready record.
type PlanDocument struct {
	Title           string                       `json:"title"`
	ServiceTypeName string                       `json:"serviceTypeName"`
	Metadata        Metadata                     `json:"userInfo"`
	Plan            domain.IndividualSupportPlan `json:"plan"`
}

const documentTitle = "個別支援計画書"

// BuildPlanDocument synthesizes the complete document record. All three
// goal slots (employment, dailyLife, socialLife) are always populated:
// categories with no selected option fall back to fixed default texts.
func BuildPlanDocument(req Request) *PlanDocument {
	byCategory := map[domain.OptionCategory][]domain.SupportPlanOption{}
	for _, opt := range req.SelectedOptions {
		byCategory[opt.Category] = append(byCategory[opt.Category], opt)
	}
	employment := byCategory[domain.CategoryWork]
	dailyLife := byCategory[domain.CategoryDailyLife]
	socialLife := byCategory[domain.CategorySocialLife]

	longGoal, shortGoal := buildGoals(len(employment) > 0, len(dailyLife) > 0, len(socialLife) > 0)

	plan := domain.IndividualSupportPlan{
		UserAndFamilyIntentions: buildIntentions(req),
		ComprehensiveSupport:    buildComprehensiveSupport(req, employment, dailyLife, socialLife),
		LongTermGoal:            longGoal,
		ShortTermGoal:           shortGoal,
		SupportGoals: domain.SupportGoals{
			Employment: buildGoalSlot(employment, slotDefaults{
				itemName:       "就労・作業支援",
				objective:      "作業能力の向上と就労意欲の維持",
				supportContent: "段階的な作業訓練と個別指導の実施",
				period:         "6ヶ月",
				provider:       "サービス管理責任者・職業指導員",
				userRole:       "指導内容の実践と振り返りへの参加",
				priority:       "高",
			}),
			DailyLife: buildGoalSlot(dailyLife, slotDefaults{
				itemName:       "生活支援",
				objective:      "基本的生活習慣の確立",
				supportContent: "個別の生活課題に応じた支援の実施",
				period:         "3ヶ月",
				provider:       "生活支援員",
				userRole:       "支援計画に基づく実践と報告",
				priority:       "中",
			}),
			SocialLife: buildGoalSlot(socialLife, slotDefaults{
				itemName:       "社会生活支援",
				objective:      "コミュニケーション能力の向上",
				supportContent: "集団活動への参加機会の提供と個別支援",
				period:         "6ヶ月",
				provider:       "職員全体",
				userRole:       "活動への参加と他者との関わり",
				priority:       "中",
			}),
		},
	}

	return &PlanDocument{
		Title:           documentTitle,
		ServiceTypeName: req.ServiceType.Label(),
		Metadata:        req.Metadata,
		Plan:            plan,
	}
}

func buildIntentions(req Request) string {
	if req.UserAndFamilyIntentions != nil && strings.TrimSpace(*req.UserAndFamilyIntentions) != "" {
		return *req.UserAndFamilyIntentions
	}
	if strings.TrimSpace(req.InterviewRecord) == "" {
		return "（面談時に聴取した内容を記載）"
	}
	return "就労に向けた準備を進めながら、生活リズムの安定と社会性の向上を図りたいと考えている。" +
		"家族も本人の成長を見守りながら、段階的な自立を応援したいと話されている"
}

func buildComprehensiveSupport(req Request, employment, dailyLife, socialLife []domain.SupportPlanOption) string {
	if req.ComprehensiveSupport != nil && strings.TrimSpace(*req.ComprehensiveSupport) != "" {
		return *req.ComprehensiveSupport
	}

	var pillars []string
	if len(employment) > 0 {
		pillars = append(pillars, "作業能力の段階的向上")
	}
	if len(dailyLife) > 0 {
		pillars = append(pillars, "生活リズムの確立")
	}
	if len(socialLife) > 0 {
		pillars = append(pillars, "コミュニケーション能力の向上")
	}

	approach := "スモールステップの原則に基づき"
	if len(employment)+len(dailyLife)+len(socialLife) >= 6 {
		approach = "多角的なアプローチにより"
	}

	return req.ServiceType.Label() + "の特性を活かし、" + strings.Join(pillars, "、") +
		"を重点目標として設定。" + approach +
		"、利用者の強みを活かしながら課題の改善を図る。" +
		"定期的なモニタリング（3ヶ月ごと）と中間評価（6ヶ月）を実施し、必要に応じて支援内容を見直す"
}

func buildGoals(hasEmployment, hasDailyLife, hasSocial bool) (longGoal, shortGoal string) {
	if hasEmployment {
		longGoal += "就労スキルの向上と安定した作業遂行、"
		shortGoal += "基本的な作業手順の習得、"
	}
	if hasDailyLife {
		longGoal += "日常生活の自立度向上、"
		shortGoal += "生活リズムの安定、"
	}
	if hasSocial {
		longGoal += "社会参加の機会拡大と対人関係の向上"
		shortGoal += "集団活動への積極的参加"
	}
	longGoal = strings.TrimSuffix(longGoal, "、") + "を目指す"
	shortGoal = strings.TrimSuffix(shortGoal, "、") + "に取り組む"
	return longGoal, shortGoal
}

type slotDefaults struct {
	itemName       string
	objective      string
	supportContent string
	period         string
	provider       string
	userRole       string
	priority       string
}

// buildGoalSlot fills one goal row: the first selected option contributes
// the title and (its first sentence) the objective, the remainder are
// joined into the support content.
func buildGoalSlot(opts []domain.SupportPlanOption, def slotDefaults) domain.SupportGoal {
	goal := domain.SupportGoal{
		ItemName:          def.itemName,
		Objective:         def.objective,
		SupportContent:    def.supportContent,
		AchievementPeriod: def.period,
		Provider:          def.provider,
		UserRole:          def.userRole,
		Priority:          def.priority,
	}
	if len(opts) == 0 {
		return goal
	}

	if strings.TrimSpace(opts[0].Title) != "" {
		goal.ItemName = opts[0].Title
	}
	goal.Objective = firstSentence(opts[0].Content)

	if len(opts) > 1 {
		var parts []string
		for _, opt := range opts[1:] {
			parts = append(parts, firstSentence(opt.Content))
		}
		goal.SupportContent = strings.Join(parts, "。")
	}
	return goal
}

func firstSentence(s string) string {
	if i := strings.Index(s, "。"); i >= 0 {
		return s[:i]
	}
	return s
}
