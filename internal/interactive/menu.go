// Package interactive implements the survey-driven menu for inspecting
// configuration and launching evaluation scenarios from a terminal.
package interactive

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Action runs when its menu entry is selected.
type Action func() error

// MenuOption is one selectable menu entry.
type MenuOption struct {
	Name        string
	Description string
	Action      Action
}

// ErrExit is returned when the user leaves the menu, either through the
// Exit entry or by canceling the prompt.
var ErrExit = errors.New("exit")

// ScenarioOptions builds one "Run <name>" entry per scenario plus a
// run-everything entry, using run to construct each entry's action.
func ScenarioOptions(names []string, run func(name string) Action) []MenuOption {
	options := make([]MenuOption, 0, len(names)+1)

	for _, name := range names {
		options = append(options, MenuOption{
			Name:        "Run " + name,
			Description: "Execute the " + name + " scenario",
			Action:      run(name),
		})
	}

	options = append(options, MenuOption{
		Name:        "Run all",
		Description: "Execute every scenario in order",
		Action:      run("all"),
	})

	return options
}

// ShowMainMenu renders the menu, waits for a selection and invokes the
// chosen entry's action. An Exit selection returns ErrExit.
func ShowMainMenu(options []MenuOption) error {
	labels := make([]string, 0, len(options)+1)
	byLabel := make(map[string]MenuOption, len(options))

	for _, opt := range options {
		label := fmt.Sprintf("%s - %s", opt.Name, opt.Description)
		labels = append(labels, label)
		byLabel[label] = opt
	}

	labels = append(labels, "Exit")

	var selected string
	prompt := &survey.Select{
		Message:  "What would you like to do?",
		Options:  labels,
		PageSize: len(labels),
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return ErrExit
	}

	opt, ok := byLabel[selected]
	if !ok {
		return ErrExit
	}

	return opt.Action()
}

// PauseForEnter blocks until the user presses Enter, keeping scenario
// output on screen before the menu redraws.
func PauseForEnter() {
	fmt.Println("\nPress Enter to continue...")
	_, _ = fmt.Scanln()
}
