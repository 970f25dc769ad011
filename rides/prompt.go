// rides/prompt.go

package rides

// ConversionChoice is the button pressed in the conversion prompt.
type ConversionChoice int

const (
	// ChoiceSaveAndConvert writes the ride in native format.
	ChoiceSaveAndConvert ConversionChoice = iota
	// ChoiceDiscard drops the in-memory changes.
	ChoiceDiscard
	// ChoiceCancel leaves the record as it is.
	ChoiceCancel
)

func (c ConversionChoice) String() string {
	switch c {
	case ChoiceSaveAndConvert:
		return "save-and-convert"
	case ChoiceDiscard:
		return "discard"
	case ChoiceCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ExitAction is the button pressed in the exit prompt.
type ExitAction int

const (
	// ExitSave saves the checked rows, then exits.
	ExitSave ExitAction = iota
	// ExitDiscard exits without saving.
	ExitDiscard
	// ExitCancel keeps the application open.
	ExitCancel
)

func (a ExitAction) String() string {
	switch a {
	case ExitSave:
		return "save-and-exit"
	case ExitDiscard:
		return "discard-and-exit"
	case ExitCancel:
		return "cancel-exit"
	default:
		return "unknown"
	}
}

// ConversionPrompt describes the single-record confirmation.
type ConversionPrompt struct {
	FileName string
	// OnWarnToggled is called each time the "always warn" checkbox changes.
	OnWarnToggled func(warn bool)
}

// ExitPrompt describes the list of unsaved rides shown on exit.
type ExitPrompt struct {
	FileNames []string
	// OnWarnToggled is called each time the "always check" checkbox changes.
	OnWarnToggled func(warn bool)
}

// ExitDecision is the user's answer to an ExitPrompt.
// Selected has one entry per FileNames row; rows start checked.
type ExitDecision struct {
	Action   ExitAction
	Selected []bool
}

// Prompter presents modal choices and blocks until the user answers.
type Prompter interface {
	PromptConversion(prompt ConversionPrompt) ConversionChoice
	PromptExit(prompt ExitPrompt) ExitDecision
}
