package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"concepdag/internal/adapters/tui/styles"
	"concepdag/internal/application/commands"
	"concepdag/internal/domain"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go to node"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const maxVisibleResults = 10

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	corpus  *domain.SearchCorpus
	input   textinput.Model
	results []domain.SearchResult
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel() *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search nodes..."
	input.Focus()

	return &SearchModel{input: input}
}

// SetCorpus replaces the corpus searched by the view
func (m *SearchModel) SetCorpus(corpus *domain.SearchCorpus) {
	m.corpus = corpus
	m.results = m.search(m.input.Value())
	m.cursor = 0
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxVisibleResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				uci := m.results[m.cursor].UCI
				return m, func() tea.Msg {
					return SearchSelectMsg{UCI: uci}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Ranking is in-memory, so results follow every keystroke
	m.results = m.search(m.input.Value())
	if m.cursor >= len(m.results) {
		m.cursor = 0
	}
	return m, cmd
}

func (m *SearchModel) search(query string) []domain.SearchResult {
	if m.corpus == nil {
		return nil
	}
	results, err := commands.NewSearchCommand(m.corpus, query).Execute(context.Background())
	if err != nil {
		return nil
	}
	return results
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().Title("Search")
	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()

	if len(m.results) == 0 {
		if len(m.input.Value()) >= 2 {
			v.Muted("No results found")
		} else {
			v.Muted("Type at least 2 characters to search")
		}
	} else {
		v.Subtitle(fmt.Sprintf("%d results", len(m.results)))
		for i, r := range m.results[:min(len(m.results), maxVisibleResults)] {
			v.Line(m.renderResult(r, i == m.cursor))
		}
		if len(m.results) > maxVisibleResults {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-maxVisibleResults))
		}
	}

	v.Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel)
	return v.String()
}

func (m *SearchModel) renderResult(r domain.SearchResult, selected bool) string {
	text := r.UCI
	if r.Title != "" {
		text = fmt.Sprintf("%s  %s", r.UCI, r.Title)
	}
	if selected {
		return styles.NodeSelected.Render(text)
	}
	return text
}
