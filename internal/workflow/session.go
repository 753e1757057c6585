package workflow

import (
	"fmt"
	"strings"

	"github.com/kotashimizu/care-plan/internal/domain"
)

// Step identifies which screen of the wizard is active. It is the single
// source of truth for rendering decisions.
type Step string

const (
	StepServiceSelection Step = "service-selection"
	StepDataInput        Step = "data-input"
	StepDetailLevel      Step = "detail-level"
	StepPlanSelection    Step = "plan-selection"
	StepPlanGeneration   Step = "plan-generation"
)

// StepError reports an operation attempted from a step that does not
// permit it.
type StepError struct {
	Step Step
	Op   string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cannot %s while in step %s", e.Op, e.Step)
}

func stepErr(step Step, op string) error {
	return &StepError{Step: step, Op: op}
}

// Session is the in-memory wizard state for one drafting flow. It is not
// safe for concurrent use; callers serialize access the same way a single
// event loop would.
type Session struct {
	step Step

	serviceType     domain.ServiceType
	interviewRecord string
	detailLevel     domain.PlanDetailLevel

	generating bool

	options                 []domain.SupportPlanOption
	selected                map[string]bool
	userAndFamilyIntentions *string
	comprehensiveSupport    *string
}

func NewSession() *Session {
	return &Session{
		step:     StepServiceSelection,
		selected: map[string]bool{},
	}
}

func (s *Session) Step() Step                          { return s.step }
func (s *Session) ServiceType() domain.ServiceType     { return s.serviceType }
func (s *Session) InterviewRecord() string             { return s.interviewRecord }
func (s *Session) DetailLevel() domain.PlanDetailLevel { return s.detailLevel }
func (s *Session) Generating() bool                    { return s.generating }
func (s *Session) UserAndFamilyIntentions() *string    { return s.userAndFamilyIntentions }
func (s *Session) ComprehensiveSupport() *string       { return s.comprehensiveSupport }

// Options returns the generated options in their original order, with any
// inline edits applied.
func (s *Session) Options() []domain.SupportPlanOption {
	out := make([]domain.SupportPlanOption, len(s.options))
	copy(out, s.options)
	return out
}

// SelectedOptions returns the chosen subset in generation order.
func (s *Session) SelectedOptions() []domain.SupportPlanOption {
	var out []domain.SupportPlanOption
	for _, opt := range s.options {
		if s.selected[opt.ID] {
			out = append(out, opt)
		}
	}
	return out
}

func (s *Session) SelectService(t domain.ServiceType) error {
	if s.step != StepServiceSelection {
		return stepErr(s.step, "select service")
	}
	if !t.Valid() {
		return fmt.Errorf("unknown service type %q", t)
	}
	s.serviceType = t
	s.step = StepDataInput
	return nil
}

func (s *Session) SetInterviewRecord(text string) error {
	if s.step != StepDataInput {
		return stepErr(s.step, "set interview record")
	}
	s.interviewRecord = text
	return nil
}

func (s *Session) AdvanceToDetailLevel() error {
	if s.step != StepDataInput {
		return stepErr(s.step, "advance to detail level")
	}
	if strings.TrimSpace(s.interviewRecord) == "" {
		return fmt.Errorf("interview record is required before advancing")
	}
	s.step = StepDetailLevel
	return nil
}

func (s *Session) ChooseDetailLevel(l domain.PlanDetailLevel) error {
	if s.step != StepDetailLevel {
		return stepErr(s.step, "choose detail level")
	}
	if !l.Valid() {
		return fmt.Errorf("unknown detail level %q", l)
	}
	s.detailLevel = l
	return nil
}

// BeginGeneration marks the option-generation call as in flight. A second
// begin before Complete or Fail is rejected so the trigger cannot be
// double-submitted.
func (s *Session) BeginGeneration() error {
	if s.step != StepDetailLevel {
		return stepErr(s.step, "begin generation")
	}
	if s.detailLevel == "" {
		return fmt.Errorf("detail level must be chosen before generation")
	}
	if s.generating {
		return fmt.Errorf("generation already in flight")
	}
	s.generating = true
	return nil
}

// CompleteGeneration installs the generated options and advances to
// plan-selection. Previous selections and edits are discarded with the
// options they referred to.
func (s *Session) CompleteGeneration(options []domain.SupportPlanOption, intentions, support *string) error {
	if !s.generating {
		return fmt.Errorf("no generation in flight")
	}
	s.generating = false
	s.options = make([]domain.SupportPlanOption, len(options))
	copy(s.options, options)
	s.selected = map[string]bool{}
	s.userAndFamilyIntentions = intentions
	s.comprehensiveSupport = support
	s.step = StepPlanSelection
	return nil
}

// FailGeneration clears the in-flight flag. The session stays in
// detail-level with all entered data intact so the user can retry.
func (s *Session) FailGeneration() {
	s.generating = false
}

func (s *Session) ToggleOption(id string) error {
	if s.step != StepPlanSelection {
		return stepErr(s.step, "toggle option")
	}
	for _, opt := range s.options {
		if opt.ID == id {
			s.selected[id] = !s.selected[id]
			return nil
		}
	}
	return fmt.Errorf("unknown option %q", id)
}

// EditOption replaces an option's title and content verbatim. Edits
// survive navigation and flow into the assembled document unchanged.
func (s *Session) EditOption(id, title, content string) error {
	if s.step != StepPlanSelection {
		return stepErr(s.step, "edit option")
	}
	for i := range s.options {
		if s.options[i].ID == id {
			s.options[i].Title = title
			s.options[i].Content = content
			return nil
		}
	}
	return fmt.Errorf("unknown option %q", id)
}

func (s *Session) ConfirmSelection() error {
	if s.step != StepPlanSelection {
		return stepErr(s.step, "confirm selection")
	}
	s.step = StepPlanGeneration
	return nil
}

// Back re-enters the previous step. Data entered in steps other than the
// one being exited is never dropped; in particular the chosen service
// type survives a return to data-input.
func (s *Session) Back() error {
	if s.generating {
		return fmt.Errorf("cannot navigate while generation is in flight")
	}
	switch s.step {
	case StepDataInput:
		s.step = StepServiceSelection
	case StepDetailLevel:
		s.step = StepDataInput
	case StepPlanSelection:
		s.step = StepDetailLevel
	case StepPlanGeneration:
		s.step = StepPlanSelection
	default:
		return stepErr(s.step, "go back")
	}
	return nil
}
