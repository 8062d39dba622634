package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"concepdag/internal/adapters/tui/styles"
	"concepdag/internal/application"
	"concepdag/internal/application/commands"
	"concepdag/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Edit    key.Binding
	Open    key.Binding
	Copy    key.Binding
	Rebuild key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Rebuild: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rebuild"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// header and footer lines around the tree
const browserChrome = 7

// BrowserModel is the model for the index tree browser
type BrowserModel struct {
	ViewState
	title     string
	result    *application.BuildResult
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	cursor    int
	offset    int
	copyText  func(string) error
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(title string) *BrowserModel {
	return &BrowserModel{
		title:    title,
		copyText: clipboard.WriteAll,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// SetResult shows a new build, keeping the selection when the node survived
func (m *BrowserModel) SetResult(res *application.BuildResult) {
	selected := ""
	if node := m.selectedNode(); node != nil {
		selected = node.UCI()
	}

	root, _ := commands.NewBuildTreeCommand(res, m.title).Execute(context.Background())
	m.result = res
	m.root = root
	m.root.ExpandAll()
	m.cursor = 0
	m.offset = 0
	m.refreshFlatNodes()
	if selected != "" {
		m.Focus(selected)
	}
}

// Focus moves the cursor to the leaf of uci, expanding its sections
func (m *BrowserModel) Focus(uci string) bool {
	if m.root == nil {
		return false
	}
	node := m.root.Find(uci)
	if node == nil {
		return false
	}
	for p := node.Parent; p != nil; p = p.Parent {
		p.Expand()
	}
	m.refreshFlatNodes()
	for i, n := range m.flatNodes {
		if n == node {
			m.cursor = i
			break
		}
	}
	m.scroll()
	return true
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
				m.scroll()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if !node.IsLeaf() && node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil && node.Parent != m.root {
					for i, n := range m.flatNodes {
						if n == node.Parent {
							m.cursor = i
							break
						}
					}
					m.scroll()
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right), key.Matches(msg, BrowserKeys.Enter):
			if node := m.selectedNode(); node != nil && !node.IsLeaf() {
				if !node.IsExpanded {
					node.Expand()
				} else if key.Matches(msg, BrowserKeys.Enter) {
					node.Collapse()
				}
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			if uci := m.selectedUCI(); uci != "" {
				return m, func() tea.Msg { return OpenEditorMsg{UCI: uci} }
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Open):
			if node := m.selectedNode(); node != nil && node.IsLeaf() {
				url := node.Leaf.URL
				return m, func() tea.Msg { return OpenURLMsg{URL: url} }
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			if node := m.selectedNode(); node != nil && node.IsLeaf() {
				if err := m.copyText(node.Leaf.URL); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage(fmt.Sprintf("Copied %s", node.Leaf.URL), false)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Rebuild):
			m.SetMessage("Rebuilding...", false)
			return m, func() tea.Msg { return RebuildMsg{} }

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg { return SwitchToSearchMsg{} }

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) selectedUCI() string {
	if node := m.selectedNode(); node != nil {
		return node.UCI()
	}
	return ""
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	// Clamp cursor
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

// pageSize is the number of tree lines that fit on screen
func (m *BrowserModel) pageSize() int {
	if m.Height <= browserChrome {
		return len(m.flatNodes)
	}
	return m.Height - browserChrome
}

// scroll keeps the cursor inside the visible window
func (m *BrowserModel) scroll() {
	size := m.pageSize()
	if size <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+size {
		m.offset = m.cursor - size + 1
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return styles.App.Render("Loading...")
	}

	v := NewViewBuilder().Title(m.title)
	stats := m.result.Stats
	v.Subtitle(fmt.Sprintf("%d nodes • %d edges • %d broken • %d cycles",
		stats.Records, stats.Edges, stats.Broken, stats.Cycles))

	var tree strings.Builder
	end := min(m.offset+m.pageSize(), len(m.flatNodes))
	for i := m.offset; i < end; i++ {
		tree.WriteString(m.renderNode(m.flatNodes[i], i == m.cursor))
		tree.WriteString("\n")
	}

	if panel := m.renderPanel(); panel != "" {
		v.Raw(lipgloss.JoinHorizontal(lipgloss.Top, tree.String(), panel))
		v.BlankLine()
	} else {
		v.Raw(tree.String())
	}

	v.Message(m.Message, m.MessageErr)
	v.Help(BrowserKeys.Up, BrowserKeys.Right, BrowserKeys.Edit, BrowserKeys.Open,
		BrowserKeys.Copy, BrowserKeys.Rebuild, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit)
	return v.String()
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	depth := node.Depth() - 1
	indent := strings.Repeat("  ", depth)

	var prefix string
	if node.IsLeaf() {
		prefix = styles.TreeLeaf
	} else if node.IsExpanded {
		prefix = styles.TreeExpanded
	} else {
		prefix = styles.TreeCollapsed
	}

	text := node.Name
	var style lipgloss.Style
	if node.IsLeaf() {
		if title := leafTitle(node.Leaf); title != "" {
			text = fmt.Sprintf("%s  %s", node.Name, title)
		}
		style = styles.NodeLeaf
		if node.Leaf.Status != domain.StatusOK || node.Leaf.DepsStatus != domain.StatusOK {
			style = styles.NodeDegraded
		}
	} else {
		style = styles.NodeSection.Foreground(styles.SectionColor(depth))
	}

	if selected {
		return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), styles.NodeSelected.Render(text))
	}
	return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), style.Render(text))
}

func leafTitle(leaf *domain.IndexLeaf) string {
	if leaf.Metadata == nil {
		return ""
	}
	if title, ok := leaf.Metadata.Get("title"); ok {
		return application.Stringify(title)
	}
	return ""
}

// renderPanel shows metrics, deps and rdeps of the selected leaf
func (m *BrowserModel) renderPanel() string {
	uci := m.selectedUCI()
	if uci == "" {
		return ""
	}
	ctx, err := m.result.Context(uci)
	if err != nil {
		return styles.Panel.Render(RenderMessage(err.Error(), true))
	}

	var b strings.Builder
	b.WriteString(styles.PanelHeading.Render(ctx.UCI))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("status", string(ctx.Status)))
	b.WriteString("  ")
	b.WriteString(RenderLabelValue("deps", string(ctx.DepsStatus)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("depth", formatMetric(ctx.Depth)))
	b.WriteString("  ")
	b.WriteString(RenderLabelValue("order", formatMetric(ctx.TopoOrder)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("deps/rdeps", fmt.Sprintf("%s/%s", formatMetric(ctx.NDeps), formatMetric(ctx.NRdeps))))
	b.WriteString("  ")
	b.WriteString(RenderLabelValue("transitive", fmt.Sprintf("%s/%s", formatMetric(ctx.NTdeps), formatMetric(ctx.NTrdeps))))
	b.WriteString("\n\n")

	b.WriteString(styles.PanelHeading.Render("Depends on"))
	b.WriteString("\n")
	if len(ctx.Deps) == 0 {
		b.WriteString(styles.MutedText.Render("  nothing"))
		b.WriteString("\n")
	}
	for i, group := range ctx.Deps {
		if i > 0 {
			b.WriteString(styles.MutedText.Render("  ·"))
			b.WriteString("\n")
		}
		for _, dep := range group {
			b.WriteString(renderDep(dep))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.PanelHeading.Render("Needed by"))
	b.WriteString("\n")
	if len(ctx.Rdeps) == 0 {
		b.WriteString(styles.MutedText.Render("  nothing"))
		b.WriteString("\n")
	}
	for _, dep := range ctx.Rdeps {
		b.WriteString(renderDep(dep))
	}

	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func renderDep(dep domain.DepContext) string {
	line := "  " + dep.UCI
	if !dep.Exists {
		line = "  " + styles.Missing.Render(dep.UCI)
	}
	if dep.Reason != nil && *dep.Reason != "" {
		line += "  " + styles.Reason.Render(*dep.Reason)
	}
	return line + "\n"
}
