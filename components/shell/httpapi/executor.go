package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-shell/components/shell/commands"
)

// Executor abstracts the shell mutations used by router adapters.
type Executor interface {
	ToggleSidebar(ctx context.Context, input commands.ToggleSidebarInput) error
	SetCollapsed(ctx context.Context, input commands.SetSidebarCollapsedInput) error
	ToggleGroup(ctx context.Context, input commands.ToggleGroupInput) error
}

// CommandExecutor adapts go-command commanders to the Executor interface.
type CommandExecutor struct {
	ToggleCommander   gocommand.Commander[commands.ToggleSidebarInput]
	CollapseCommander gocommand.Commander[commands.SetSidebarCollapsedInput]
	GroupCommander    gocommand.Commander[commands.ToggleGroupInput]
}

var errCommanderMissing = errors.New("httpapi: commander not configured")

func (e *CommandExecutor) ToggleSidebar(ctx context.Context, input commands.ToggleSidebarInput) error {
	if e.ToggleCommander == nil {
		return errCommanderMissing
	}
	return e.ToggleCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SetCollapsed(ctx context.Context, input commands.SetSidebarCollapsedInput) error {
	if e.CollapseCommander == nil {
		return errCommanderMissing
	}
	return e.CollapseCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleGroup(ctx context.Context, input commands.ToggleGroupInput) error {
	if e.GroupCommander == nil {
		return errCommanderMissing
	}
	return e.GroupCommander.Execute(ctx, input)
}
