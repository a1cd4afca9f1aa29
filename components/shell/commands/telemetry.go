package commands

import (
	"context"

	"github.com/goliatone/go-admin-shell/components/shell"
)

// EventCommandFailed is recorded whenever a command returns an error.
const EventCommandFailed = "shell.command.failed"

// Telemetry allows commands to emit structured events.
type Telemetry = shell.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

func recordFailure(ctx context.Context, t Telemetry, command, sessionID string, err error) error {
	if err == nil {
		return nil
	}
	t.Record(ctx, EventCommandFailed, map[string]any{
		"command":    command,
		"session_id": sessionID,
		"error":      err.Error(),
	})
	return err
}
