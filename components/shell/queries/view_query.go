package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-shell/components/shell"
)

type viewService interface {
	Ensure(ctx context.Context, id, currentPath string) (string, error)
	View(ctx context.Context, id, currentPath string) (shell.ShellView, error)
}

// ViewInput identifies the session and route to snapshot.
type ViewInput struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

// ShellViewQuery resolves the shell snapshot for a route, mounting a shell when the session is unknown.
type ShellViewQuery struct {
	service viewService
}

// NewShellViewQuery builds the query.
func NewShellViewQuery(service viewService) *ShellViewQuery {
	return &ShellViewQuery{service: service}
}

var _ gocommand.Querier[ViewInput, shell.ShellView] = (*ShellViewQuery)(nil)

// Query snapshots the shell for the input path.
func (q *ShellViewQuery) Query(ctx context.Context, input ViewInput) (shell.ShellView, error) {
	id, err := q.service.Ensure(ctx, input.SessionID, input.Path)
	if err != nil {
		return shell.ShellView{}, err
	}
	return q.service.View(ctx, id, input.Path)
}
