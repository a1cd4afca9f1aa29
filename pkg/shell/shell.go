package shell

import (
	core "github.com/goliatone/go-admin-shell/components/shell"
)

// Service exposes the underlying components/shell.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NavTree re-exports the navigation tree type.
type NavTree = core.NavTree

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// DefaultNavTree returns the built-in navigation.
func DefaultNavTree() *NavTree {
	return core.DefaultNavTree()
}
