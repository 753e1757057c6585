package domain

// FacilityType is the broad service category a facility operates under
// (障害者総合支援法の事業種別).
type FacilityType string

const (
	FacilityEmploymentA      FacilityType = "employment-a"
	FacilityEmploymentB      FacilityType = "employment-b"
	FacilityTransition       FacilityType = "transition"
	FacilityDailyCare        FacilityType = "daily-care"
	FacilityTrainingLife     FacilityType = "training-life"
	FacilityTrainingFunction FacilityType = "training-function"
)

// ServiceType is the subset of facility types the option-generation flow
// specializes for.
type ServiceType string

const (
	ServiceEmploymentA ServiceType = "employment-a"
	ServiceEmploymentB ServiceType = "employment-b"
	ServiceDailyCare   ServiceType = "daily-care"
)

type PlanDetailLevel string

const (
	DetailBasic    PlanDetailLevel = "basic"
	DetailDetailed PlanDetailLevel = "detailed"
)

// OptionCategory tags a support plan option to one of the three support
// pillars: A = work, B = daily life, C = social life.
type OptionCategory string

const (
	CategoryWork       OptionCategory = "A"
	CategoryDailyLife  OptionCategory = "B"
	CategorySocialLife OptionCategory = "C"
)

type UserCharacteristics struct {
	AgeGroup           string   `json:"ageGroup"`
	DisabilityTypes    []string `json:"disabilityTypes"`
	AverageUsagePeriod string   `json:"averageUsagePeriod"`
	UserCount          string   `json:"userCount"`
}

// FacilitySettings is the operator-configured facility profile used to
// specialize the full-plan prompt. Held in session memory only.
type FacilitySettings struct {
	FacilityType        FacilityType        `json:"facilityType"`
	WorkTypes           []string            `json:"workTypes"`
	FacilityFeatures    []string            `json:"facilityFeatures"`
	UserCharacteristics UserCharacteristics `json:"userCharacteristics"`
}

// SupportPlanOption is one of the nine AI-proposed support actions the
// operator picks from. Content is editable in place before assembly.
type SupportPlanOption struct {
	ID       string         `json:"id"`
	Category OptionCategory `json:"category"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
}

type SupportGoal struct {
	ItemName          string `json:"itemName"`
	Objective         string `json:"objective"`
	SupportContent    string `json:"supportContent"`
	AchievementPeriod string `json:"achievementPeriod"`
	Provider          string `json:"provider"`
	UserRole          string `json:"userRole"`
	Priority          string `json:"priority"`
}

// SupportGoals always carries all three categories; assembly synthesizes
// defaults for categories the operator did not select.
type SupportGoals struct {
	Employment SupportGoal `json:"employment"`
	DailyLife  SupportGoal `json:"dailyLife"`
	SocialLife SupportGoal `json:"socialLife"`
}

// IndividualSupportPlan is the canonical five-section plan record.
type IndividualSupportPlan struct {
	UserAndFamilyIntentions string       `json:"userAndFamilyIntentions"`
	ComprehensiveSupport    string       `json:"comprehensiveSupport"`
	LongTermGoal            string       `json:"longTermGoal"`
	ShortTermGoal           string       `json:"shortTermGoal"`
	SupportGoals            SupportGoals `json:"supportGoals"`
	QualityScore            QualityScore `json:"qualityScore"`
}

type QualityScore struct {
	Expertise   int `json:"expertise"`
	Specificity int `json:"specificity"`
	Feasibility int `json:"feasibility"`
	Consistency int `json:"consistency"`
	Overall     int `json:"overall"`
}

// QualityCheckResult is the outcome of a plan review call. It is never
// mutated once received; a re-analysis replaces it wholesale.
type QualityCheckResult struct {
	Score        QualityScore `json:"score"`
	Improvements []string     `json:"improvements"`
	Suggestions  []string     `json:"suggestions"`
}
