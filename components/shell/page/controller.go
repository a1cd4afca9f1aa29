package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/queries"
	"github.com/goliatone/go-admin-shell/components/widgets"
)

// CRMPath is the route that hosts the CRM widget board.
const CRMPath = "/crm"

const (
	layoutTemplate      = "layout"
	crmTemplate         = "crm"
	placeholderTemplate = "placeholder"
)

// Request identifies one page render.
type Request struct {
	SessionID  string
	Path       string
	SalesMonth string
	DealPeriod string
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	View       gocommand.Querier[queries.ViewInput, shell.ShellView]
	Tree       *shell.NavTree
	Board      *widgets.Board
	Renderer   Renderer
	BasePath   string
	HomePath   string
	AssetsPath string
	SocketPath string
}

// Controller composes the shell chrome and page content into full HTML pages.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the collaborators into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.HomePath == "" {
		opts.HomePath = shell.DefaultHomePath
	}
	if opts.Board == nil {
		opts.Board = widgets.NewBoard(widgets.DefaultFixtures(), nil)
	}
	opts.BasePath = strings.TrimSuffix(opts.BasePath, "/")
	return &Controller{opts: opts}
}

// State returns the shell snapshot for the request, mounting a shell for unknown sessions.
func (c *Controller) State(ctx context.Context, req Request) (shell.ShellView, error) {
	if c.opts.View == nil {
		return shell.ShellView{}, errors.New("page: view query is required")
	}
	return c.opts.View.Query(ctx, queries.ViewInput{SessionID: req.SessionID, Path: c.path(req)})
}

// RenderPage renders the full page for the request and returns the shell snapshot it used.
func (c *Controller) RenderPage(ctx context.Context, req Request, out io.Writer) (shell.ShellView, error) {
	if c.opts.Renderer == nil {
		return shell.ShellView{}, errors.New("page: renderer is required")
	}
	view, err := c.State(ctx, req)
	if err != nil {
		return shell.ShellView{}, err
	}

	title, content, err := c.content(ctx, req, view)
	if err != nil {
		return shell.ShellView{}, err
	}
	sidebar, err := renderNode(Sidebar(view.Sidebar, view.Branding, c.linker(view.SessionID)))
	if err != nil {
		return shell.ShellView{}, err
	}
	header, err := renderNode(Header(view.Header))
	if err != nil {
		return shell.ShellView{}, err
	}

	data := map[string]any{
		"title":        title,
		"brand_name":   view.Branding.Name,
		"mode":         string(view.Mode),
		"session_id":   view.SessionID,
		"base_path":    c.opts.BasePath,
		"assets_path":  strings.TrimSuffix(c.opts.AssetsPath, "/"),
		"ws_path":      c.opts.SocketPath,
		"sidebar":      sidebar,
		"header":       header,
		"content":      content,
		"content_left": view.Content.LeftOffset,
		"content_top":  view.Content.TopOffset,
	}
	if _, err := c.opts.Renderer.Render(layoutTemplate, data, out); err != nil {
		return shell.ShellView{}, fmt.Errorf("page: render layout: %w", err)
	}
	return view, nil
}

func (c *Controller) content(ctx context.Context, req Request, view shell.ShellView) (string, string, error) {
	title := "Dashboard"
	if c.opts.Tree != nil {
		if leaf, ok := c.opts.Tree.FindLeaf(view.CurrentPath); ok {
			title = leaf.Label()
		}
	}
	if view.CurrentPath != CRMPath {
		html, err := c.opts.Renderer.Render(placeholderTemplate, map[string]any{"title": title})
		if err != nil {
			return "", "", fmt.Errorf("page: render placeholder: %w", err)
		}
		return title, html, nil
	}

	crm, err := c.opts.Board.CRM(ctx, widgets.BoardQuery{
		SalesMonth: req.SalesMonth,
		DealPeriod: widgets.ParsePeriod(req.DealPeriod),
	})
	if err != nil {
		return "", "", err
	}
	html, err := c.opts.Renderer.Render(crmTemplate, crmData(crm, view.SessionID))
	if err != nil {
		return "", "", fmt.Errorf("page: render crm: %w", err)
	}
	return title, html, nil
}

func crmData(crm widgets.CRMPage, sessionID string) map[string]any {
	return map[string]any{
		"session_id":    sessionID,
		"stats":         crm.Stats,
		"sales":         crm.Sales,
		"deal_type":     crm.DealType,
		"balance":       crm.Balance,
		"revenue":       widgets.FormatThousands(crm.Totals.Revenue),
		"expenses":      widgets.FormatThousands(crm.Totals.Expenses),
		"profit_ratio":  widgets.FormatPercent(crm.Totals.ProfitRatio),
		"deals":         crm.Deals,
		"tasks":         crm.Tasks.Tasks,
		"tasks_summary": crm.Tasks.Summary(),
	}
}

func (c *Controller) path(req Request) string {
	if req.Path == "" {
		return c.opts.HomePath
	}
	return req.Path
}

func (c *Controller) linker(sessionID string) LinkFunc {
	return func(path string) string {
		href := c.opts.BasePath + path
		if sessionID == "" {
			return href
		}
		return href + "?" + shell.SessionQueryParam + "=" + url.QueryEscape(sessionID)
	}
}
