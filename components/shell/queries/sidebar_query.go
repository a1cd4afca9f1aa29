package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-shell/components/shell"
)

// SidebarQuery builds a sidebar view for a stateless request: a freshly mounted
// expanded shell at the given path. Used by the CLI and static exports.
type SidebarQuery struct {
	tree    *shell.NavTree
	matcher shell.Matcher
	widths  shell.Widths
}

// NewSidebarQuery builds the query over a tree.
func NewSidebarQuery(tree *shell.NavTree, matcher shell.Matcher, widths shell.Widths) *SidebarQuery {
	return &SidebarQuery{tree: tree, matcher: matcher, widths: widths}
}

var _ gocommand.Querier[string, shell.SidebarView] = (*SidebarQuery)(nil)

// Query returns the sidebar for path.
func (q *SidebarQuery) Query(ctx context.Context, path string) (shell.SidebarView, error) {
	if err := ctx.Err(); err != nil {
		return shell.SidebarView{}, err
	}
	if q.tree == nil {
		return shell.SidebarView{}, shell.ErrTreeRequired
	}
	sh := shell.Mount(q.tree, path, shell.WithMatcher(q.matcher), shell.WithWidths(q.widths))
	return sh.Sidebar(path), nil
}
