package prompts

import "github.com/kotashimizu/care-plan/internal/domain"

// facilityGuidance holds the per-facility-type emphasis block injected
// into the full-plan system prompt. One table, one template; facility
// types without an entry simply contribute nothing.
var facilityGuidance = map[domain.FacilityType]string{
	domain.FacilityEmploymentB: `
## B型事業所特化指針
- 生活リズム安定化を適度に含める（昼夜逆転等の生活習慣改善）
- 作業継続性・通所継続を重視した段階的目標設定
- 本人ペースを尊重した継続可能な支援計画を作成
- 作業スキル向上と生活スキルのバランスを考慮`,

	domain.FacilityEmploymentA: `
## A型事業所特化指針
- 雇用契約に基づく就労継続支援を重視
- 生産性向上と作業効率を考慮した目標設定
- 一般就労移行への準備も視野に入れた支援計画
- 作業スキルと職業適応スキルの統合的向上`,

	domain.FacilityTransition: `
## 就労移行支援事業所特化指針
- 2年間の有期限支援を前提とした集中的な計画
- 一般就労に向けた実践的スキル習得を重視
- 企業実習・職場体験を見据えた具体的目標設定
- ビジネスマナー・職業準備性の段階的向上`,

	domain.FacilityDailyCare: `
## 生活介護事業所特化指針
- 金銭管理・買い物等の実生活スキルを重視
- ADL（日常生活動作）の詳細な支援計画を含める
- 多職種連携による包括的支援を前提とした目標設定
- 地域生活継続のための社会参加・余暇活動も考慮`,

	domain.FacilityTrainingLife: `
## 自立訓練（生活訓練）事業所特化指針
- 地域生活移行・継続のための生活能力向上を重視
- 金銭管理・家事・外出等の具体的生活スキル習得
- 2年間の有期限支援での段階的自立支援計画
- 相談支援事業所等との連携を含めた移行支援`,

	domain.FacilityTrainingFunction: `
## 自立訓練（機能訓練）事業所特化指針
- 身体機能・生活機能の維持・向上を重視
- ADL・IADL（手段的日常生活動作）の具体的改善目標
- 医療・リハビリ専門職との連携による機能訓練
- 福祉用具・環境整備を含めた包括的支援計画`,
}

var detailLevelDescriptions = map[domain.PlanDetailLevel]string{
	domain.DetailDetailed: "具体的で詳細な支援内容（記録、評価、具体的手順を含む）",
	domain.DetailBasic:    "基本的で実行しやすい支援内容（緩やかなアプローチ）",
}

var detailRequirements = map[domain.PlanDetailLevel]string{
	domain.DetailDetailed: `## 詳細プランの要件：
- 週間/月間スケジュールを想定した頻度設定
- 評価指標の明確化（数値目標含む）
- 段階的なステップアップの設定`,
	domain.DetailBasic: `## 基本プランの要件：
- スモールステップでの目標設定
- 利用者の負担に配慮した段階的アプローチ
- 成功体験を重視した支援内容`,
}
