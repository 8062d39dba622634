package views

import "concepdag/internal/application"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages shared between the views and the app

// ResultLoadedMsg carries a completed build
type ResultLoadedMsg struct {
	Result  *application.BuildResult
	Rebuilt bool
}

// ErrMsg reports a failed background operation
type ErrMsg struct {
	Err error
}

// OpenEditorMsg asks the app to open a node record in the editor
type OpenEditorMsg struct {
	UCI string
}

// OpenURLMsg asks the app to open a node page in the browser
type OpenURLMsg struct {
	URL string
}

// RebuildMsg asks the app to run a full build
type RebuildMsg struct{}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// SearchSelectMsg is sent when a search result is selected
type SearchSelectMsg struct {
	UCI string
}
