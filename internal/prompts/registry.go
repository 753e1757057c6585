package prompts

import "fmt"

var registry = map[PromptName]*Spec{}

// RegisterSpec compiles and stores a spec. Panics on template errors or
// duplicate names; registration happens once at init.
func RegisterSpec(s Spec) {
	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("prompt %q registered twice", s.Name))
	}
	if err := s.compile(); err != nil {
		panic(err)
	}
	registry[s.Name] = &s
}

func get(name PromptName) (*Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

func init() {
	registerAll()
}
