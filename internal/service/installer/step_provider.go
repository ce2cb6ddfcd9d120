package installer

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/threadbot/internal/config"
)

var providerDescriptions = map[string]string{
	"custom":     "Any OpenAI-compatible /v1/completions server",
	"ollama":     "Local Ollama instance",
	"openai":     "api.openai.com (fine-tuned completion models)",
	"openrouter": "openrouter.ai",
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

// ProviderStep selects where completions come from.
type ProviderStep struct {
	list    list.Model
	started bool
}

func NewProviderStep() Step {
	items := make([]list.Item, 0, len(config.Providers))
	for _, p := range config.Providers {
		items = append(items, item{id: p, title: p, desc: providerDescriptions[p]})
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Select the text generation provider"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return &ProviderStep{list: l}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) load(state *InstallState) {
	if s.started {
		return
	}
	s.started = true
	for i, p := range config.Providers {
		if p == state.Generation.Provider {
			s.list.Select(i)
		}
	}
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.load(state)
	if width > 0 && height > 4 {
		s.list.SetSize(width, height-4)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if i, ok := s.list.SelectedItem().(item); ok {
			if state.Generation.Provider != i.id {
				// a URL for another provider would be wrong here
				state.Generation.BaseURL = ""
			}
			state.Generation.Provider = i.id
			return nil, nil
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ProviderStep) View(state *InstallState) string {
	s.load(state)
	return s.list.View()
}
