package prompts

import (
	"fmt"
	"strings"

	"github.com/kotashimizu/care-plan/internal/domain"
)

// Input is a superset of all fields any prompt might need. Fields are
// pre-rendered text blocks so the templates stay flat; the per-key text
// lives in the lookup tables in guidance.go.
type Input struct {
	InterviewRecord string
	// Plan generation
	FacilityInfo    string
	ServiceGuidance string
	// Options generation
	ServiceTypeName        string
	DetailLevelDescription string
	DetailRequirements     string
	// Quality check
	PlanText string
}

// PlanInput assembles the input for the full-plan prompt. The settings
// pointer may be nil: the original flow allows generating from the
// interview record alone.
func PlanInput(settings *domain.FacilitySettings, interviewRecord string) Input {
	in := Input{InterviewRecord: interviewRecord}
	if settings == nil {
		return in
	}

	workTypes := "未設定"
	if len(settings.WorkTypes) > 0 {
		workTypes = strings.Join(settings.WorkTypes, "、")
	}
	features := "未設定"
	if len(settings.FacilityFeatures) > 0 {
		features = strings.Join(settings.FacilityFeatures, "、")
	}
	in.FacilityInfo = fmt.Sprintf(`
## 事業所情報
- 事業所種別: %s
- 主な作業種別: %s
- 事業所の特徴: %s`, settings.FacilityType.Label(), workTypes, features)
	in.ServiceGuidance = facilityGuidance[settings.FacilityType]
	return in
}

func OptionsInput(serviceType domain.ServiceType, level domain.PlanDetailLevel, interviewRecord string) Input {
	return Input{
		InterviewRecord:        interviewRecord,
		ServiceTypeName:        serviceType.Label(),
		DetailLevelDescription: detailLevelDescriptions[level],
		DetailRequirements:     detailRequirements[level],
	}
}

func QualityInput(planText string) Input {
	return Input{PlanText: planText}
}
