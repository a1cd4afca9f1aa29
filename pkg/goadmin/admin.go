package goadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	core "github.com/goliatone/go-admin-shell/components/shell"
	shellpkg "github.com/goliatone/go-admin-shell/pkg/shell"
)

// MenuBuilder ensures shell entries exist within the host admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures one published nav link.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
	Parent   string
}

// Config wires the shell service into a go-admin style host.
type Config struct {
	EnableShell bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Service     *shellpkg.Service
	// RoutePrefix is prepended to every leaf path (e.g. "/admin").
	RoutePrefix string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can publish the shell navigation.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableShell && cfg.Service == nil {
		return nil, errors.New("goadmin: shell service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	cfg.RoutePrefix = strings.TrimSuffix(cfg.RoutePrefix, "/")
	return &Admin{cfg: cfg}, nil
}

// Shell exposes the configured shell service when enabled.
func (a *Admin) Shell() *shellpkg.Service {
	if !a.cfg.EnableShell {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap publishes every nav leaf as a menu item, in traversal order, parented to its group.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableShell || a.cfg.MenuBuilder == nil {
		return nil
	}
	items := MenuItems(a.cfg.Service.Tree(), a.cfg.RoutePrefix)
	for _, item := range items {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure menu item %s: %w", item.Label, err)
		}
	}
	return nil
}

// MenuItems flattens the tree's leaves into menu items.
func MenuItems(tree *core.NavTree, prefix string) []MenuItem {
	if tree == nil {
		return nil
	}
	var items []MenuItem
	tree.Walk(func(entry core.NavEntry, _ int, parent *core.NavEntry) bool {
		if !entry.IsLeaf() {
			return true
		}
		item := MenuItem{
			Label:    entry.Label(),
			Route:    prefix + entry.Path(),
			Icon:     entry.Icon(),
			Position: len(items),
		}
		if parent != nil {
			item.Parent = parent.Label()
			if item.Icon == "" {
				item.Icon = parent.Icon()
			}
		}
		items = append(items, item)
		return true
	})
	return items
}
