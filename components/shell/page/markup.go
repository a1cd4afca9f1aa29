package page

import (
	"fmt"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/goliatone/go-admin-shell/components/shell"
)

// LinkFunc builds the href for a leaf path.
type LinkFunc func(path string) string

// Sidebar renders the fixed sidebar panel from its render model.
func Sidebar(view shell.SidebarView, branding shell.Branding, link LinkFunc) g.Node {
	brand := branding.Name
	mode := shell.ModeExpanded
	if view.Collapsed {
		brand = branding.Short
		mode = shell.ModeCollapsed
	}
	return html.Aside(
		html.ID("shell-sidebar"),
		html.Class("shell-sidebar"),
		g.Attr("data-mode", string(mode)),
		html.Style(fmt.Sprintf("width: %dpx", view.Width)),
		html.Div(html.Class("shell-brand"), g.Text(brand)),
		html.Nav(
			html.Class("shell-nav"),
			html.Ul(g.Group(navNodes(view.Nodes, link))),
		),
		g.If(!view.Collapsed, profile(branding)),
	)
}

func navNodes(nodes []shell.SidebarNode, link LinkFunc) []g.Node {
	out := make([]g.Node, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, navNode(node, link))
	}
	return out
}

func navNode(node shell.SidebarNode, link LinkFunc) g.Node {
	switch node.Shape {
	case shell.ShapeTitle:
		return html.Li(
			html.ID(node.Key),
			html.Class(itemClass("menu-title", node)),
			html.Span(g.Text(node.Text)),
		)
	case shell.ShapeGroup:
		return html.Li(
			html.ID(node.Key),
			html.Button(
				html.Type("button"),
				html.Class(itemClass("menu-group", node)),
				g.Attr("data-shell-group", node.Label),
				g.Attr("aria-expanded", strconv.FormatBool(node.Open)),
				g.If(node.Disabled, html.Disabled()),
				icon(node.Icon),
				g.If(node.ShowLabel, html.Span(g.Text(node.Text))),
			),
			g.If(len(node.Children) > 0, html.Ul(
				html.Class("menu-sub"),
				g.Group(navNodes(node.Children, link)),
			)),
		)
	default:
		return html.Li(
			html.ID(node.Key),
			html.A(
				html.Href(link(node.Path)),
				html.Class(itemClass("menu-link", node)),
				g.If(node.Active, g.Attr("aria-current", "page")),
				icon(node.Icon),
				g.If(node.ShowLabel, html.Span(g.Text(node.Text))),
				badge(node.Badge),
			),
		)
	}
}

func itemClass(base string, node shell.SidebarNode) string {
	classes := []string{base}
	if node.Active {
		classes = append(classes, "is-active")
	}
	if node.Open {
		classes = append(classes, "is-open")
	}
	if node.Centered {
		classes = append(classes, "is-centered")
	}
	return strings.Join(classes, " ")
}

func icon(name string) g.Node {
	if name == "" {
		return nil
	}
	return html.Span(html.Class("icon icon-"+name), g.Attr("aria-hidden", "true"))
}

func badge(b *shell.Badge) g.Node {
	if b == nil {
		return nil
	}
	return html.Span(html.Class("shell-badge shell-badge--"+string(b.Kind)), g.Text(b.Text))
}

func profile(branding shell.Branding) g.Node {
	return html.Div(
		html.Class("shell-profile"),
		html.Div(html.Class("shell-profile-name"), g.Text(branding.UserName)),
		html.Div(html.Class("shell-profile-role"), g.Text(branding.UserRole)),
		html.Span(html.Class("shell-profile-status"), g.Text(branding.UserStatus)),
	)
}

// Header renders the fixed header bar; its toggle is the only state-changing control.
func Header(view shell.HeaderView) g.Node {
	return html.Header(
		html.ID("shell-header"),
		html.Class("shell-header"),
		html.Style(fmt.Sprintf("left: %dpx; height: %dpx", view.LeftOffset, view.Height)),
		html.Button(
			html.Type("button"),
			html.Class("shell-toggle"),
			g.Attr("data-shell-toggle", ""),
			g.Attr("aria-label", "Toggle sidebar"),
			g.Attr("aria-pressed", strconv.FormatBool(view.Collapsed)),
			icon("menu"),
		),
		html.Div(
			html.Class("shell-search"),
			html.Input(html.Type("search"), html.Placeholder("Search..."), g.Attr("aria-label", "Search")),
		),
		html.Div(
			html.Class("shell-notifications"),
			icon("bell"),
			g.If(view.Notifications > 0, html.Span(html.Class("count"), g.Text(strconv.Itoa(view.Notifications)))),
		),
		html.Div(html.Class("shell-user"), g.Text(view.UserName)),
	)
}

func renderNode(node g.Node) (string, error) {
	var b strings.Builder
	if err := node.Render(&b); err != nil {
		return "", fmt.Errorf("page: render markup: %w", err)
	}
	return b.String(), nil
}
