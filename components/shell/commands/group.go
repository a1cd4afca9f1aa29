package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
)

type groupService interface {
	ToggleGroup(ctx context.Context, id, label string) (bool, error)
}

// ToggleGroupInput flips one group header.
type ToggleGroupInput struct {
	SessionID string `json:"session_id"`
	Label     string `json:"label"`
}

// ToggleGroupCommand handles group-header clicks. Clicks while collapsed succeed without effect.
type ToggleGroupCommand struct {
	service   groupService
	telemetry Telemetry
}

// NewToggleGroupCommand creates the command.
func NewToggleGroupCommand(service groupService, telemetry Telemetry) *ToggleGroupCommand {
	return &ToggleGroupCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleGroupInput] = (*ToggleGroupCommand)(nil)

// Execute toggles the group.
func (c *ToggleGroupCommand) Execute(ctx context.Context, msg ToggleGroupInput) error {
	if c.service == nil {
		return errors.New("toggle group command requires service")
	}
	if msg.SessionID == "" {
		return ErrSessionRequired
	}
	if strings.TrimSpace(msg.Label) == "" {
		return ErrLabelRequired
	}
	_, err := c.service.ToggleGroup(ctx, msg.SessionID, msg.Label)
	return recordFailure(ctx, c.telemetry, "toggle_group", msg.SessionID, err)
}

type unmountService interface {
	Unmount(ctx context.Context, id string) error
}

// UnmountShellInput tears down a mounted shell.
type UnmountShellInput struct {
	SessionID string `json:"session_id"`
}

// UnmountShellCommand drops a session's shell state.
type UnmountShellCommand struct {
	service   unmountService
	telemetry Telemetry
}

// NewUnmountShellCommand creates the command.
func NewUnmountShellCommand(service unmountService, telemetry Telemetry) *UnmountShellCommand {
	return &UnmountShellCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UnmountShellInput] = (*UnmountShellCommand)(nil)

// Execute unmounts the shell.
func (c *UnmountShellCommand) Execute(ctx context.Context, msg UnmountShellInput) error {
	if c.service == nil {
		return errors.New("unmount command requires service")
	}
	if msg.SessionID == "" {
		return ErrSessionRequired
	}
	return recordFailure(ctx, c.telemetry, "unmount", msg.SessionID, c.service.Unmount(ctx, msg.SessionID))
}
