package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"concepdag/internal/adapters/tui/views"
	"concepdag/internal/application"
	"concepdag/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewHelp
)

// Loader produces a build of the project. With rebuild set it also
// rewrites every artifact; otherwise it only analyzes the records.
type Loader func(ctx context.Context, rebuild bool) (*application.BuildResult, error)

// App is the main TUI application model
type App struct {
	load       Loader
	editor     ports.EditorOpener
	urls       ports.URLOpener
	recordPath func(uci string) string

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(title string, load Loader, recordPath func(string) string, ed ports.EditorOpener, urls ports.URLOpener) *App {
	return &App{
		load:       load,
		editor:     ed,
		urls:       urls,
		recordPath: recordPath,
		state:      ViewBrowser,
		browser:    views.NewBrowserModel(title),
		search:     views.NewSearchModel(),
		help:       views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.loadCmd(false)
}

func (a *App) loadCmd(rebuild bool) tea.Cmd {
	return func() tea.Msg {
		res, err := a.load(context.Background(), rebuild)
		if err != nil {
			return views.ErrMsg{Err: err}
		}
		return views.ResultLoadedMsg{Result: res, Rebuilt: rebuild}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.ResultLoadedMsg:
		a.browser.SetResult(msg.Result)
		a.search.SetCorpus(msg.Result.Search)
		if msg.Rebuilt {
			s := msg.Result.Stats
			a.browser.SetMessage(fmt.Sprintf("Rebuilt %d nodes in %s", s.Records, s.Duration), false)
		}
		return a, nil

	case views.ErrMsg:
		a.browser.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.RebuildMsg:
		return a, a.loadCmd(true)

	// View switching messages
	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		if !a.browser.Focus(msg.UCI) {
			a.browser.SetMessage(fmt.Sprintf("%s is not in the index", msg.UCI), true)
		}
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(a.recordPath(msg.UCI))

	case views.OpenURLMsg:
		return a, a.openURL(msg.URL)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (a *App) openURL(url string) tea.Cmd {
	if a.urls == nil {
		return nil
	}
	return func() tea.Msg {
		return editorFinishedMsg{err: a.urls.OpenURL(url)}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
