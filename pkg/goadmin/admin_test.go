package goadmin_test

import (
	"context"
	"errors"
	"testing"

	core "github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/pkg/goadmin"
	shellpkg "github.com/goliatone/go-admin-shell/pkg/shell"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	codes []string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, code string, item goadmin.MenuItem) error {
	s.items = append(s.items, item)
	s.codes = append(s.codes, code)
	return s.err
}

func newService(t *testing.T) *shellpkg.Service {
	t.Helper()
	tree := core.MustNavTree(
		core.Group("Dashboards", []core.NavEntry{
			core.Leaf("Analytics", "/analytics"),
			core.Leaf("CRM", "/crm", core.ExactMatch()),
		}, core.WithIcon("layout-dashboard")),
		core.SectionTitle("PAGES"),
		core.Leaf("Blog", "/blog", core.WithIcon("newspaper")),
	)
	service, err := shellpkg.NewService(shellpkg.Options{Tree: tree})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return service
}

func TestAdminBootstrapPublishesLeaves(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableShell: true,
		Service:     newService(t),
		MenuBuilder: builder,
		RoutePrefix: "/admin/",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(builder.items))
	}
	crm := builder.items[1]
	if crm.Route != "/admin/crm" || crm.Parent != "Dashboards" || crm.Position != 1 || crm.Icon != "layout-dashboard" {
		t.Fatalf("unexpected CRM item: %+v", crm)
	}
	blog := builder.items[2]
	if blog.Parent != "" || blog.Icon != "newspaper" {
		t.Fatalf("unexpected Blog item: %+v", blog)
	}
	if builder.codes[0] != "admin.main" {
		t.Fatalf("expected default menu code, got %q", builder.codes[0])
	}
	if admin.Shell() == nil {
		t.Fatalf("expected shell service")
	}
}

func TestAdminBootstrapStopsOnError(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu store down")}
	admin, err := goadmin.New(goadmin.Config{EnableShell: true, Service: newService(t), MenuBuilder: builder})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(builder.items) != 1 {
		t.Fatalf("expected bootstrap to stop after the first failure")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableShell: false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Shell() != nil {
		t.Fatalf("expected nil shell when disabled")
	}
}

func TestNewRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableShell: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}
