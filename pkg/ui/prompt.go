package ui

import (
	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/pterm/pterm"
)

// Prompter asks the user for decisions the core cannot make
type Prompter interface {
	// Confirm asks a yes/no question
	Confirm(question string, defaultValue bool) (bool, error)

	// AskPath asks for a path, offering defaultValue. An empty answer means
	// the user backed out.
	AskPath(prompt, defaultValue string) (string, error)
}

// InteractivePrompter prompts on the terminal with pterm
type InteractivePrompter struct{}

func (InteractivePrompter) Confirm(question string, defaultValue bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultValue).Show(question)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInvalidInput, "failed to read confirmation")
	}
	return ok, nil
}

func (InteractivePrompter) AskPath(prompt, defaultValue string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.WithDefaultValue(defaultValue).Show(prompt)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read path")
	}
	return answer, nil
}

// StaticPrompter answers without asking, for --yes and non-interactive runs
type StaticPrompter struct {
	Answer bool
}

func (p StaticPrompter) Confirm(string, bool) (bool, error) {
	return p.Answer, nil
}

// AskPath accepts the offered default
func (p StaticPrompter) AskPath(_, defaultValue string) (string, error) {
	return defaultValue, nil
}
