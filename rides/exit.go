// rides/exit.go

package rides

import "fmt"

// ExitResult tells the caller whether the application may close.
type ExitResult int

const (
	// ProceedClose lets the application quit.
	ProceedClose ExitResult = iota
	// CancelClose keeps the application running.
	CancelClose
)

func (r ExitResult) String() string {
	if r == ProceedClose {
		return "proceed"
	}
	return "cancel"
}

// ExitState is where the exit workflow ended.
type ExitState int

const (
	StateIdle ExitState = iota
	StateImmediateClose
	StateListing
	StateSaving
	StateClosed
	StateDiscardClosed
	StateCancelled
)

func (s ExitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateImmediateClose:
		return "immediate-close"
	case StateListing:
		return "listing"
	case StateSaving:
		return "saving"
	case StateClosed:
		return "closed"
	case StateDiscardClosed:
		return "discard-closed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ExitWorkflow asks about unsaved rides when the application is closing.
type ExitWorkflow struct {
	saver *Saver
	state ExitState
}

// NewExitWorkflow creates an exit workflow that saves rows through saver.
func NewExitWorkflow(saver *Saver) *ExitWorkflow {
	return &ExitWorkflow{saver: saver}
}

// State returns the state reached by the last ConfirmExit call.
func (w *ExitWorkflow) State() ExitState {
	return w.state
}

func (w *ExitWorkflow) enter(state ExitState) {
	w.saver.logger.Info("Exit workflow: %s -> %s", w.state, state)
	w.state = state
}

// ConfirmExit decides whether the application may close, asking the user
// about dirty rides when the warn-on-exit preference is on.
//
// Save and Exit saves the checked rows in order through SaveSingle. A cancelled
// conversion prompt or a failed save stops the remaining rows and keeps the
// application open. Discard and Exit clears the dirty flag of every listed ride.
func (w *ExitWorkflow) ConfirmExit(collection *Collection) (ExitResult, error) {
	w.state = StateIdle
	prefs := w.saver.prefs

	if MayCloseImmediately(prefs) {
		w.enter(StateImmediateClose)
		return ProceedClose, nil
	}

	dirty := collection.Dirty()
	if len(dirty) == 0 {
		w.enter(StateImmediateClose)
		return ProceedClose, nil
	}

	w.enter(StateListing)
	names := make([]string, len(dirty))
	for i, rec := range dirty {
		names[i] = rec.FileName()
	}
	decision := w.saver.prompter.PromptExit(ExitPrompt{
		FileNames: names,
		OnWarnToggled: func(warn bool) {
			SetWarnOnExit(prefs, warn)
			w.saver.logger.Info("Warn on exit set to %t", warn)
		},
	})
	w.saver.logger.Info("Exit prompt answered: %s", decision.Action)

	switch decision.Action {
	case ExitSave:
		w.enter(StateSaving)
		for i, rec := range dirty {
			if i < len(decision.Selected) && !decision.Selected[i] {
				continue
			}
			outcome, err := w.saver.SaveSingle(rec)
			if err != nil {
				w.enter(StateCancelled)
				return CancelClose, fmt.Errorf("exit aborted: %w", err)
			}
			if outcome == OutcomeCancelled {
				w.enter(StateCancelled)
				return CancelClose, nil
			}
		}
		w.enter(StateClosed)
		return ProceedClose, nil
	case ExitDiscard:
		for _, rec := range dirty {
			rec.SetDirty(false)
		}
		w.enter(StateDiscardClosed)
		return ProceedClose, nil
	default:
		w.enter(StateCancelled)
		return CancelClose, nil
	}
}
