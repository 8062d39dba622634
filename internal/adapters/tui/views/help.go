package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"concepdag/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().Title("Help").Subtitle("Browse the concept graph of a site")

	v.Line(styles.InputLabel.Render("Navigation"))
	v.Raw(helpLine("j / k / ↑ / ↓", "Move up/down"))
	v.Raw(helpLine("h / ←", "Collapse / go to parent section"))
	v.Raw(helpLine("l / → / Enter", "Expand / toggle section"))
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Node"))
	v.Raw(helpLine("e", "Edit the node record"))
	v.Raw(helpLine("o", "Open the node page in the browser"))
	v.Raw(helpLine("y", "Copy the node URL"))
	v.Raw(helpLine("/", "Search nodes"))
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Project"))
	v.Raw(helpLine("r", "Rebuild every artifact"))
	v.Raw(helpLine("?", "Toggle help"))
	v.Raw(helpLine("q / Ctrl+C", "Quit"))
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Panel"))
	v.Muted("  depth    : longest chain of dependencies below the node")
	v.Muted("  order    : position in processing order")
	v.Muted("  struck   : referenced node without a record")

	v.Help(HelpKeys.Close)
	return v.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
