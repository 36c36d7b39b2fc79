package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and advances the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		m.refreshViewport()
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.raw = msg.Raw
		m.loadingMessage = "Computing..."
		return m, computeCmd(m.engine, m.raw)

	case ComputeCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.run = msg.Run
		m.refreshViewport()
		return m, nil
	}

	return m, nil
}

// handleKeyPress routes keys: global shortcuts first, then viewport
// scrolling on the scrollable scenes.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "h":
		return m.navigate(SceneHome)
	case "r":
		return m.navigate(SceneResults)
	case "b":
		return m.navigate(SceneBoxes)
	case "?":
		return m.navigate(SceneHelp)

	case "esc":
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		return m.navigate(m.previousScene)

	case "tab":
		next := (m.currentScene + 1) % 4
		return m.navigate(next)
	}

	if m.currentScene == SceneResults || m.currentScene == SceneBoxes {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	return m.Update(NavigateMsg{Scene: scene})
}

// resizeViewport fits the scrollable area to the terminal, leaving room
// for the title and status bars.
func (m *Model) resizeViewport() {
	height := m.height - 5
	if height < 3 {
		height = 3
	}
	if !m.viewportReady {
		m.viewport = newViewport(m.width, height)
		m.viewportReady = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.refreshViewport()
}

// refreshViewport re-renders the current scene's scrollable content.
func (m *Model) refreshViewport() {
	if !m.viewportReady {
		m.resizeViewport()
		return
	}
	switch m.currentScene {
	case SceneResults:
		m.viewport.SetContent(m.resultsContent())
	case SceneBoxes:
		m.viewport.SetContent(m.boxesContent())
	}
	m.viewport.GotoTop()
}
