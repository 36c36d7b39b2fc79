package tui

import (
	"github.com/openfiling/ctcalc/internal/domain"
)

// Scene identifies one screen of the TUI.
type Scene int

const (
	SceneHome Scene = iota
	SceneResults
	SceneBoxes
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneResults:
		return "Computation"
	case SceneBoxes:
		return "CT600 Boxes"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle.

// NavigateMsg switches to a different scene.
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}

// InputLoadedMsg signals the input file has been read.
type InputLoadedMsg struct {
	Raw domain.RawInput
}

// ComputeCompleteMsg signals a computation has finished.
type ComputeCompleteMsg struct {
	Run *domain.RunResult
	Err error
}
