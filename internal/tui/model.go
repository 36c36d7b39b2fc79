package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfiling/ctcalc/internal/calculation"
	"github.com/openfiling/ctcalc/internal/config"
	"github.com/openfiling/ctcalc/internal/domain"
)

// Model is the application state: one input file, one engine run, and
// the scene currently on screen.
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	inputPath string
	raw       domain.RawInput
	engine    *calculation.Engine
	run       *domain.RunResult

	viewport      viewport.Model
	viewportReady bool
	spinner       spinner.Model

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates the application model for an input file.
func NewModel(inputPath string, engine *calculation.Engine) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SectionStyle

	return Model{
		currentScene:   SceneHome,
		inputPath:      inputPath,
		engine:         engine,
		spinner:        sp,
		loading:        true,
		loadingMessage: "Loading input...",
		width:          80,
		height:         24,
	}
}

// Init kicks off the input load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadInputCmd(m.inputPath), m.spinner.Tick)
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// loadInputCmd returns a command that reads the input file.
func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := config.NewInputParser().LoadRawFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Raw: raw}
	}
}

// computeCmd returns a command that runs the engine.
func computeCmd(engine *calculation.Engine, raw domain.RawInput) tea.Cmd {
	return func() tea.Msg {
		run, err := engine.Run(raw)
		return ComputeCompleteMsg{Run: run, Err: err}
	}
}
