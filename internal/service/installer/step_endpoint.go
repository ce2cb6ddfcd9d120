package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BaseURLStep asks for the server address of custom and ollama providers.
type BaseURLStep struct {
	input   textinput.Model
	started bool
	err     string
}

func NewBaseURLStep() Step {
	ti := textinput.New()
	ti.Width = 50
	ti.Focus()
	return &BaseURLStep{input: ti}
}

func (s *BaseURLStep) Skip(state *InstallState) bool {
	p := state.Generation.Provider
	return p != "custom" && p != "ollama"
}

func (s *BaseURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *BaseURLStep) load(state *InstallState) {
	if s.started {
		return
	}
	s.started = true
	s.input.SetValue(state.Generation.BaseURL)
	if state.Generation.Provider == "ollama" {
		s.input.Placeholder = "http://localhost:11434"
	} else {
		s.input.Placeholder = "http://localhost:8000"
	}
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.load(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimRight(strings.TrimSpace(s.input.Value()), "/")
		if val == "" && state.Generation.Provider == "custom" {
			s.err = "a custom provider needs a base URL"
			return s, nil
		}
		state.Generation.BaseURL = val
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	s.load(state)
	hint := "(press enter to confirm)"
	if state.Generation.Provider == "ollama" {
		hint = "(press enter to confirm, empty for the local default)"
	}

	view := "Base URL of the completion server:\n\n" + s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + hintStyle.Render(hint) + "\n"
}

// APIKeyStep asks for the provider key. Hosted providers require one.
type APIKeyStep struct {
	input   textinput.Model
	started bool
	err     string
}

func NewAPIKeyStep() Step {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 40
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return &APIKeyStep{input: ti}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) required(state *InstallState) bool {
	p := state.Generation.Provider
	return p == "openai" || p == "openrouter"
}

func (s *APIKeyStep) load(state *InstallState) {
	if s.started {
		return
	}
	s.started = true
	s.input.SetValue(state.Generation.APIKey)
	switch state.Generation.Provider {
	case "openai":
		s.input.Placeholder = "sk-..."
	case "openrouter":
		s.input.Placeholder = "sk-or-v1-..."
	default:
		s.input.Placeholder = "optional"
	}
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.load(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && s.required(state) {
			s.err = state.Generation.Provider + " requires an API key"
			return s, nil
		}
		state.Generation.APIKey = val
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	s.load(state)
	hint := "(press enter to confirm)"
	if !s.required(state) {
		hint = "(optional, press enter to skip)"
	}

	view := "API key for " + state.Generation.Provider + ":\n\n" + s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + hintStyle.Render(hint) + "\n"
}

// ModelStep asks for the model name sent with each completion request.
type ModelStep struct {
	input   textinput.Model
	started bool
}

func NewModelStep() Step {
	ti := textinput.New()
	ti.Width = 50
	ti.Focus()
	return &ModelStep{input: ti}
}

func (s *ModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ModelStep) load(state *InstallState) {
	if s.started {
		return
	}
	s.started = true
	s.input.Placeholder = state.Generation.Model
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.load(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if val := strings.TrimSpace(s.input.Value()); val != "" {
			state.Generation.Model = val
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	s.load(state)
	return "Model name:\n\n" + s.input.View() + "\n\n" +
		hintStyle.Render("(press enter to keep "+state.Generation.Model+")") + "\n"
}
