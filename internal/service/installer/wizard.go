package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/threadbot/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step is one screen of the setup wizard. Update returns nil when the step is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// skipper is implemented by steps that only apply to some providers.
type skipper interface {
	Skip(state *InstallState) bool
}

func getSteps() []Step {
	return []Step{
		NewUsernameStep(),
		NewPositiveKeywordsStep(),
		NewNegativeKeywordsStep(),
		NewProviderStep(),
		NewBaseURLStep(),
		NewAPIKeyStep(),
		NewModelStep(),
		NewSaveEnvStep(),
	}
}

type nextMsg struct{}

func next() tea.Msg { return nextMsg{} }

type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func newModel(state *InstallState) model {
	m := model{
		steps: getSteps(),
		state: state,
	}
	m.skip()
	return m
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return tea.Quit
	}
	return m.steps[m.currentStep].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.done() {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if nextStep != nil {
		m.steps[m.currentStep] = nextStep
		return m, cmd
	}

	m.currentStep++
	m.skip()
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.currentStep].Init()
}

// skip advances past steps that do not apply to the current state.
func (m *model) skip() {
	for !m.done() {
		s, ok := m.steps[m.currentStep].(skipper)
		if !ok || !s.Skip(m.state) {
			return
		}
		m.currentStep++
	}
}

func (m model) done() bool {
	return m.currentStep >= len(m.steps)
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done() {
		return "Configuration complete!\n"
	}

	progress := hintStyle.Render(fmt.Sprintf("step %d/%d", m.currentStep+1, len(m.steps)))
	return titleStyle.Render("Setting up "+core.BotName) + " " + progress + "\n\n" +
		m.steps[m.currentStep].View(m.state)
}

// RunWizard asks for the bot settings and writes them to state.EnvPath.
func RunWizard(state *InstallState) (*InstallState, error) {
	p := tea.NewProgram(newModel(state), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if !finalModel.done() {
		if save, ok := finalModel.steps[finalModel.currentStep].(*SaveEnvStep); ok && save.err != nil {
			return nil, save.err
		}
	}
	if finalModel.quitting || !finalModel.done() {
		return nil, fmt.Errorf("setup interrupted")
	}
	return finalModel.state, nil
}
