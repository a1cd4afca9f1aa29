package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-shell/components/shell"
)

var (
	// ErrSessionRequired is returned when a command has no session id.
	ErrSessionRequired = errors.New("commands: session id is required")
	// ErrLabelRequired is returned when a group toggle has no label.
	ErrLabelRequired = errors.New("commands: group label is required")
)

type sidebarService interface {
	ToggleSidebar(ctx context.Context, id string) (shell.Mode, error)
	SetCollapsed(ctx context.Context, id string, collapsed bool) (shell.Mode, error)
}

// ToggleSidebarInput flips the sidebar of one mounted shell.
type ToggleSidebarInput struct {
	SessionID string `json:"session_id"`
}

// ToggleSidebarCommand is the header toggle control.
type ToggleSidebarCommand struct {
	service   sidebarService
	telemetry Telemetry
}

// NewToggleSidebarCommand creates the command.
func NewToggleSidebarCommand(service sidebarService, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSidebarInput] = (*ToggleSidebarCommand)(nil)

// Execute toggles between expanded and collapsed.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, msg ToggleSidebarInput) error {
	if c.service == nil {
		return errors.New("toggle sidebar command requires service")
	}
	if msg.SessionID == "" {
		return ErrSessionRequired
	}
	_, err := c.service.ToggleSidebar(ctx, msg.SessionID)
	return recordFailure(ctx, c.telemetry, "toggle_sidebar", msg.SessionID, err)
}

// SetSidebarCollapsedInput forces the sidebar state, e.g. from a viewport breakpoint.
type SetSidebarCollapsedInput struct {
	SessionID string `json:"session_id"`
	Collapsed bool   `json:"collapsed"`
}

// SetSidebarCollapsedCommand is the external entry point for breakpoint-driven collapse.
type SetSidebarCollapsedCommand struct {
	service   sidebarService
	telemetry Telemetry
}

// NewSetSidebarCollapsedCommand creates the command.
func NewSetSidebarCollapsedCommand(service sidebarService, telemetry Telemetry) *SetSidebarCollapsedCommand {
	return &SetSidebarCollapsedCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSidebarCollapsedInput] = (*SetSidebarCollapsedCommand)(nil)

// Execute sets the collapsed flag.
func (c *SetSidebarCollapsedCommand) Execute(ctx context.Context, msg SetSidebarCollapsedInput) error {
	if c.service == nil {
		return errors.New("set collapsed command requires service")
	}
	if msg.SessionID == "" {
		return ErrSessionRequired
	}
	_, err := c.service.SetCollapsed(ctx, msg.SessionID, msg.Collapsed)
	return recordFailure(ctx, c.telemetry, "set_collapsed", msg.SessionID, err)
}
