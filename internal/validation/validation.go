package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type Warning struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type Result struct {
	IsValid  bool      `json:"isValid"`
	Warnings []Warning `json:"warnings"`
}

// minRecordLength is in runes; interview notes shorter than this tend to
// produce thin plans.
const minRecordLength = 100

type keywordCheck struct {
	field    string
	keywords []string
	message  string
	severity Severity
}

// Keyword sets use plain substring containment, not tokenization; the
// notes are free text and staff phrasing varies too much for anything
// stricter to help.
var keywordChecks = []keywordCheck{
	{
		field:    "intentions",
		keywords: []string{"意向", "希望", "要望", "願い"},
		message:  "本人・家族の意向に関する情報が不足している可能性があります（「意向」「希望」等のキーワードが含まれていません）",
		severity: SeverityMedium,
	},
	{
		field:    "goals",
		keywords: []string{"目標", "ゴール", "達成", "改善"},
		message:  "目標に関する情報が不足している可能性があります（「目標」「達成」等のキーワードが含まれていません）",
		severity: SeverityMedium,
	},
	{
		field:    "timeline",
		keywords: []string{"期間", "時期", "月", "年", "まで", "までに"},
		message:  "達成時期に関する情報が不足している可能性があります（「期間」「時期」「月」等のキーワードが含まれていません）",
		severity: SeverityMedium,
	},
	{
		field:    "priorities",
		keywords: []string{"優先", "重要", "第一", "最初"},
		message:  "優先順位に関する情報が不足している可能性があります（「優先」「重要」等のキーワードが含まれていません）",
		severity: SeverityLow,
	},
}

// ValidateInterviewRecord scores free-text interview notes for missing
// information categories. Advisory only: medium/low warnings never block
// generation, and validity means "no high-severity warnings".
func ValidateInterviewRecord(interviewRecord string) Result {
	if strings.TrimSpace(interviewRecord) == "" {
		return Result{
			IsValid: false,
			Warnings: []Warning{{
				Field:    "interviewRecord",
				Message:  "面談記録が入力されていません",
				Severity: SeverityHigh,
			}},
		}
	}

	var warnings []Warning
	for _, check := range keywordChecks {
		found := false
		for _, kw := range check.keywords {
			if strings.Contains(interviewRecord, kw) {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, Warning{
				Field:    check.field,
				Message:  check.message,
				Severity: check.severity,
			})
		}
	}

	if utf8.RuneCountInString(interviewRecord) < minRecordLength {
		warnings = append(warnings, Warning{
			Field:    "length",
			Message:  "面談記録が短すぎる可能性があります。詳細な情報があると、より質の高い支援計画書が生成されます",
			Severity: SeverityLow,
		})
	}

	valid := true
	for _, w := range warnings {
		if w.Severity == SeverityHigh {
			valid = false
			break
		}
	}
	return Result{IsValid: valid, Warnings: warnings}
}

// Summary renders a short operator-facing digest of a validation result.
func Summary(result Result) string {
	if len(result.Warnings) == 0 {
		return "入力データに問題は見つかりませんでした。"
	}

	var high, medium, low int
	for _, w := range result.Warnings {
		switch w.Severity {
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		case SeverityLow:
			low++
		}
	}

	var b strings.Builder
	if high > 0 {
		b.WriteString(fmt.Sprintf("【重要】%d件の重要な問題があります。\n", high))
	}
	if medium > 0 {
		b.WriteString(fmt.Sprintf("【注意】%d件の注意事項があります。\n", medium))
	}
	if low > 0 {
		b.WriteString(fmt.Sprintf("【推奨】%d件の改善提案があります。\n", low))
	}
	b.WriteString("\n不足している情報があると、支援計画書の質が低下する可能性があります。")
	return b.String()
}
