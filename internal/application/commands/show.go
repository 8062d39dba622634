package commands

import (
	"context"

	"concepdag/internal/application"
	"concepdag/internal/domain"
)

// ShowNodeCommand returns the render context of one node
type ShowNodeCommand struct {
	result *application.BuildResult
	UCI    string
}

// NewShowNodeCommand creates a new ShowNodeCommand
func NewShowNodeCommand(result *application.BuildResult, uci string) *ShowNodeCommand {
	return &ShowNodeCommand{
		result: result,
		UCI:    uci,
	}
}

// Validate checks the command parameters
func (c *ShowNodeCommand) Validate() error {
	return application.ValidateUCI("uci", c.UCI)
}

// Execute runs the show command
func (c *ShowNodeCommand) Execute(ctx context.Context) (*domain.NodeContext, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.result.Context(c.UCI)
}

// BuildTreeCommand turns the site index into a browsable tree
type BuildTreeCommand struct {
	result *application.BuildResult
	Name   string
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(result *application.BuildResult, name string) *BuildTreeCommand {
	return &BuildTreeCommand{
		result: result,
		Name:   name,
	}
}

// Execute runs the build tree command
func (c *BuildTreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	return domain.NewBrowseTree(c.Name, c.result.Index), nil
}
