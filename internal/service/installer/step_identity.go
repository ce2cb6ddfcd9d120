package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// UsernameStep asks for the forum account the bot posts as.
type UsernameStep struct {
	input   textinput.Model
	started bool
	err     string
}

func NewUsernameStep() Step {
	ti := textinput.New()
	ti.Placeholder = "my_gpt2_bot"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()
	return &UsernameStep{input: ti}
}

func (s *UsernameStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *UsernameStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.load(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			s.err = "a username is required"
			return s, nil
		}
		state.App.BotUsername = val
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *UsernameStep) load(state *InstallState) {
	if !s.started {
		s.started = true
		s.input.SetValue(state.App.BotUsername)
	}
}

func (s *UsernameStep) View(state *InstallState) string {
	s.load(state)
	view := "Forum username of the bot:\n\n" + s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + hintStyle.Render("(press enter to confirm)") + "\n"
}

// KeywordsStep asks for a comma-separated keyword list.
type KeywordsStep struct {
	input   textinput.Model
	prompt  string
	target  func(state *InstallState) *[]string
	started bool
}

func newKeywordsStep(prompt, placeholder string, target func(*InstallState) *[]string) Step {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 50
	ti.Focus()
	return &KeywordsStep{input: ti, prompt: prompt, target: target}
}

func NewPositiveKeywordsStep() Step {
	return newKeywordsStep("Keywords that make a reply more likely", "gpt, language model",
		func(s *InstallState) *[]string { return &s.App.PositiveKeywords })
}

func NewNegativeKeywordsStep() Step {
	return newKeywordsStep("Keywords that block a reply", "suicide, politics",
		func(s *InstallState) *[]string { return &s.App.NegativeKeywords })
}

func (s *KeywordsStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *KeywordsStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.load(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		*s.target(state) = splitKeywords(s.input.Value())
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *KeywordsStep) load(state *InstallState) {
	if !s.started {
		s.started = true
		s.input.SetValue(strings.Join(*s.target(state), ", "))
	}
}

func (s *KeywordsStep) View(state *InstallState) string {
	s.load(state)
	return s.prompt + " (comma-separated, optional):\n\n" + s.input.View() + "\n\n" +
		hintStyle.Render("(press enter to confirm, empty for none)") + "\n"
}

func splitKeywords(raw string) []string {
	var out []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
