package domain

var facilityTypeLabels = map[FacilityType]string{
	FacilityEmploymentA:      "就労継続支援A型",
	FacilityEmploymentB:      "就労継続支援B型",
	FacilityTransition:       "就労移行支援",
	FacilityDailyCare:        "生活介護",
	FacilityTrainingLife:     "自立訓練（生活訓練）",
	FacilityTrainingFunction: "自立訓練（機能訓練）",
}

var serviceTypeLabels = map[ServiceType]string{
	ServiceEmploymentA: "就労継続支援A型",
	ServiceEmploymentB: "就労継続支援B型",
	ServiceDailyCare:   "生活介護",
}

// Label returns the Japanese display name, or 未設定 when the value is not
// one of the known facility types.
func (t FacilityType) Label() string {
	if l, ok := facilityTypeLabels[t]; ok {
		return l
	}
	return "未設定"
}

func (t FacilityType) Valid() bool {
	_, ok := facilityTypeLabels[t]
	return ok
}

func (t ServiceType) Label() string {
	if l, ok := serviceTypeLabels[t]; ok {
		return l
	}
	return ""
}

func (t ServiceType) Valid() bool {
	_, ok := serviceTypeLabels[t]
	return ok
}

func (l PlanDetailLevel) Valid() bool {
	return l == DetailBasic || l == DetailDetailed
}

func (c OptionCategory) Valid() bool {
	return c == CategoryWork || c == CategoryDailyLife || c == CategorySocialLife
}
