package page

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/queries"
	"github.com/goliatone/go-admin-shell/components/widgets"
)

type stubRenderer struct {
	names []string
	data  map[string]map[string]any
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.names = append(s.names, name)
	if s.data == nil {
		s.data = map[string]map[string]any{}
	}
	if m, ok := data.(map[string]any); ok {
		s.data[name] = m
	}
	result := "<" + name + ">"
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte(result))
	}
	return result, nil
}

func newTestController(t *testing.T, renderer Renderer) (*Controller, *shell.Service) {
	t.Helper()
	service, err := shell.NewService(shell.Options{Tree: shell.DefaultNavTree()})
	require.NoError(t, err)
	controller := NewController(ControllerOptions{
		View:       queries.NewShellViewQuery(service),
		Tree:       service.Tree(),
		Board:      widgets.NewBoard(widgets.DefaultFixtures(), widgets.NewChartRenderer(widgets.WithChartCache(nil))),
		Renderer:   renderer,
		BasePath:   "/admin/",
		AssetsPath: "/admin/_shell/assets/",
		SocketPath: "/admin/_shell/ws",
	})
	return controller, service
}

func TestRenderPageCRM(t *testing.T) {
	renderer := &stubRenderer{}
	controller, _ := newTestController(t, renderer)

	var buf bytes.Buffer
	view, err := controller.RenderPage(context.Background(), Request{Path: "/crm", DealPeriod: "yearly"}, &buf)
	require.NoError(t, err)

	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, "<layout>", buf.String())
	assert.Equal(t, []string{crmTemplate, layoutTemplate}, renderer.names)

	layout := renderer.data[layoutTemplate]
	assert.Equal(t, "CRM", layout["title"])
	assert.Equal(t, "<crm>", layout["content"])
	assert.Equal(t, "/admin", layout["base_path"])
	assert.Equal(t, "/admin/_shell/assets", layout["assets_path"])
	assert.Equal(t, 256, layout["content_left"])
	assert.Contains(t, layout["sidebar"], `href="/admin/crm?sid=`+view.SessionID+`"`)

	crm := renderer.data[crmTemplate]
	assert.Equal(t, "$415k", crm["revenue"])
	assert.Equal(t, "3 of 5 remaining", crm["tasks_summary"])
	assert.Equal(t, string(widgets.PeriodYearly), crm["deal_type"].(widgets.ChartView).Selected)
}

func TestRenderPageReusesSession(t *testing.T) {
	renderer := &stubRenderer{}
	controller, service := newTestController(t, renderer)
	ctx := context.Background()

	id, err := service.Mount(ctx, "/crm")
	require.NoError(t, err)
	_, err = service.ToggleSidebar(ctx, id)
	require.NoError(t, err)

	view, err := controller.RenderPage(ctx, Request{SessionID: id, Path: "/analytics"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, id, view.SessionID)
	assert.True(t, view.Collapsed)
	assert.Equal(t, []string{placeholderTemplate, layoutTemplate}, renderer.names)
	assert.Equal(t, "Analytics", renderer.data[placeholderTemplate]["title"])
	assert.Equal(t, 80, renderer.data[layoutTemplate]["content_left"])
}

func TestStateDefaultsToHomePath(t *testing.T) {
	controller, _ := newTestController(t, &stubRenderer{})
	view, err := controller.State(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, shell.DefaultHomePath, view.CurrentPath)
}

func TestRenderPageRequiresRenderer(t *testing.T) {
	controller, _ := newTestController(t, nil)
	_, err := controller.RenderPage(context.Background(), Request{}, io.Discard)
	assert.Error(t, err)
}

func TestAssetsAreEmbedded(t *testing.T) {
	for _, name := range []string{"shell.css", "shell.js"} {
		data, err := fs.ReadFile(Assets(), name)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestToggleSurvivesReloadOfFirstVisit(t *testing.T) {
	renderer := &stubRenderer{}
	controller, service := newTestController(t, renderer)
	ctx := context.Background()

	first, err := controller.RenderPage(ctx, Request{Path: "/crm"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, renderer.data[layoutTemplate]["session_id"])

	_, err = service.ToggleSidebar(ctx, first.SessionID)
	require.NoError(t, err)

	reloaded, err := controller.RenderPage(ctx, Request{SessionID: first.SessionID, Path: "/crm"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, reloaded.SessionID)
	assert.True(t, reloaded.Collapsed)
	assert.Equal(t, string(shell.ModeCollapsed), renderer.data[layoutTemplate]["mode"])
}

func TestShellScriptReloadsWithSession(t *testing.T) {
	data, err := fs.ReadFile(Assets(), "shell.js")
	require.NoError(t, err)
	script := string(data)
	assert.Contains(t, script, `url.searchParams.set("sid", session)`)
	assert.Contains(t, script, "window.history.replaceState(null, \"\", sessionURL())")
	assert.Contains(t, script, "window.location.assign(sessionURL())")
	assert.NotContains(t, script, "window.location.reload()")
}
