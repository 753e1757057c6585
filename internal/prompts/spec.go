package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// Spec pairs the system/user templates for one prompt with the input
// validators that must pass before anything is sent to the model.
type Spec struct {
	Name       PromptName
	System     string
	User       string
	Validators []Validator

	systemTmpl *template.Template
	userTmpl   *template.Template
}

func (s *Spec) compile() error {
	var err error
	if s.System != "" {
		s.systemTmpl, err = template.New(string(s.Name) + "_system").Option("missingkey=zero").Parse(s.System)
		if err != nil {
			return fmt.Errorf("compile system template for %s: %w", s.Name, err)
		}
	}
	s.userTmpl, err = template.New(string(s.Name) + "_user").Option("missingkey=zero").Parse(s.User)
	if err != nil {
		return fmt.Errorf("compile user template for %s: %w", s.Name, err)
	}
	return nil
}

// Build renders the system and user prompts for in. Pure: identical
// inputs produce byte-identical strings. The system prompt is empty for
// specs without a system template (the quality check sends a single user
// message).
func Build(name PromptName, in Input) (system string, user string, err error) {
	spec, ok := get(name)
	if !ok {
		return "", "", fmt.Errorf("unknown prompt %q", name)
	}
	for _, v := range spec.Validators {
		if err := v(in); err != nil {
			return "", "", err
		}
	}

	if spec.systemTmpl != nil {
		var b strings.Builder
		if err := spec.systemTmpl.Execute(&b, in); err != nil {
			return "", "", fmt.Errorf("render system prompt %s: %w", name, err)
		}
		system = b.String()
	}
	var b strings.Builder
	if err := spec.userTmpl.Execute(&b, in); err != nil {
		return "", "", fmt.Errorf("render user prompt %s: %w", name, err)
	}
	return system, b.String(), nil
}
