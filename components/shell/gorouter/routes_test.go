package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	router "github.com/goliatone/go-router"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/commands"
	"github.com/goliatone/go-admin-shell/components/shell/httpapi"
	"github.com/goliatone/go-admin-shell/components/shell/page"
	"github.com/goliatone/go-admin-shell/components/shell/queries"
	"github.com/goliatone/go-admin-shell/components/widgets"
)

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestDefaultRoutes(t *testing.T) {
	routes := DefaultRoutes(RouteConfig{Toggle: "/toggle"})
	if routes.Toggle != "/toggle" {
		t.Fatalf("expected override to be kept, got %q", routes.Toggle)
	}
	if routes.State != "/_shell/state" || routes.WebSocket != "/_shell/ws" || routes.Assets != "/_shell/assets" {
		t.Fatalf("unexpected defaults: %+v", routes)
	}
}

func TestBasePath(t *testing.T) {
	cases := map[string]string{
		"":         "/admin",
		"/":        "/admin",
		"console/": "/console",
		"/ops":     "/ops",
	}
	for in, want := range cases {
		if got := BasePath(in); got != want {
			t.Fatalf("BasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLeafPathsDeduplicates(t *testing.T) {
	tree := shell.MustNavTree(
		shell.Leaf("CRM", "/crm"),
		shell.Group("Mirror", []shell.NavEntry{
			shell.Leaf("CRM again", "/crm"),
			shell.Leaf("Chat", "/apps/chat"),
		}),
	)
	paths := LeafPaths(tree)
	if len(paths) != 2 || paths[0] != "/crm" || paths[1] != "/apps/chat" {
		t.Fatalf("unexpected leaf paths: %v", paths)
	}
}

func TestLeafPathsIncludeCRM(t *testing.T) {
	found := false
	for _, path := range LeafPaths(shell.DefaultNavTree()) {
		if path == page.CRMPath {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the CRM route to be registered")
	}
}

func TestRegisterMountsShellRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range append([]string{"/"}, LeafPaths(env.service.Tree())...) {
		if _, ok := env.mock.routes["GET:/admin"+path]; !ok {
			t.Fatalf("expected page route for %s", path)
		}
	}
	for _, key := range []string{
		"GET:/admin/_shell/state",
		"POST:/admin/_shell/toggle",
		"POST:/admin/_shell/collapsed",
		"POST:/admin/_shell/groups/toggle",
	} {
		if _, ok := env.mock.routes[key]; !ok {
			t.Fatalf("expected route %s", key)
		}
	}
	if _, ok := env.mock.ws["/admin/_shell/ws"]; !ok {
		t.Fatalf("expected websocket route")
	}
	if len(env.mock.static) != 1 || env.mock.static[0] != "/admin/_shell/assets" {
		t.Fatalf("unexpected static mounts: %v", env.mock.static)
	}
}

func TestPageRouteRendersCRM(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := newMockContext()
	if err := env.mock.routes["GET:/admin/crm"](ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.status)
	}
	if ctx.headers["Content-Type"] != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ctx.headers["Content-Type"])
	}
	if ctx.headers[shell.SessionHeader] == "" {
		t.Fatalf("expected session header")
	}
	if got := string(ctx.body); got != "layout:expanded:CRM" {
		t.Fatalf("unexpected body %q", got)
	}
	if env.renderer.names[0] != "crm" {
		t.Fatalf("expected crm content template, got %v", env.renderer.names)
	}
}

func TestFirstVisitToggleSurvivesReload(t *testing.T) {
	env := newTestEnv(t, nil)

	first := newMockContext()
	if err := env.mock.routes["GET:/admin/crm"](first); err != nil {
		t.Fatalf("first render: %v", err)
	}
	sid := first.headers[shell.SessionHeader]

	toggle := newMockContext()
	toggle.reqHeaders[shell.SessionHeader] = sid
	if err := env.mock.routes["POST:/admin/_shell/toggle"](toggle); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggle.status != http.StatusOK {
		t.Fatalf("expected 200 from toggle, got %d: %s", toggle.status, toggle.body)
	}

	reload := newMockContext()
	reload.query[shell.SessionQueryParam] = sid
	if err := env.mock.routes["GET:/admin/crm"](reload); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reload.headers[shell.SessionHeader] != sid {
		t.Fatalf("reload mounted a new session: %q != %q", reload.headers[shell.SessionHeader], sid)
	}
	if got := string(reload.body); got != "layout:collapsed:CRM" {
		t.Fatalf("expected collapsed layout after reload, got %q", got)
	}
}

func TestStateRouteReturnsView(t *testing.T) {
	env := newTestEnv(t, nil)
	sid, err := env.service.Mount(context.Background(), "/crm")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if _, err := env.service.ToggleGroup(context.Background(), sid, "Apps"); err != nil {
		t.Fatalf("toggle group: %v", err)
	}

	ctx := newMockContext()
	ctx.query[shell.SessionQueryParam] = sid
	ctx.query["path"] = "/apps/chat"
	if err := env.mock.routes["GET:/admin/_shell/state"](ctx); err != nil {
		t.Fatalf("state handler: %v", err)
	}
	var view shell.ShellView
	if err := json.Unmarshal(ctx.body, &view); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if view.SessionID != sid || view.CurrentPath != "/apps/chat" || !view.Expansion["Apps"] {
		t.Fatalf("unexpected state: %+v", view)
	}
	if ctx.headers[shell.SessionHeader] != sid {
		t.Fatalf("expected session header %q", sid)
	}
}

func TestAPIRouteStatuses(t *testing.T) {
	env := newTestEnv(t, nil)
	sid, err := env.service.Mount(context.Background(), "/crm")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	cases := []struct {
		name   string
		route  string
		sid    string
		body   string
		status int
	}{
		{"toggle ok", "POST:/admin/_shell/toggle", sid, "", http.StatusOK},
		{"toggle missing session", "POST:/admin/_shell/toggle", "", "", http.StatusBadRequest},
		{"toggle unknown session", "POST:/admin/_shell/toggle", "missing", "", http.StatusNotFound},
		{"collapsed ok", "POST:/admin/_shell/collapsed", sid, `{"collapsed":true}`, http.StatusOK},
		{"collapsed malformed", "POST:/admin/_shell/collapsed", sid, `{"collapsed":`, http.StatusBadRequest},
		{"group ok", "POST:/admin/_shell/groups/toggle", sid, `{"label":"Apps"}`, http.StatusOK},
		{"group malformed", "POST:/admin/_shell/groups/toggle", sid, `[`, http.StatusBadRequest},
		{"group blank label", "POST:/admin/_shell/groups/toggle", sid, `{"label":" "}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newMockContext()
			if tc.sid != "" {
				ctx.reqHeaders[shell.SessionHeader] = tc.sid
			}
			ctx.reqBody = []byte(tc.body)
			if err := env.mock.routes[tc.route](ctx); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if ctx.status != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, ctx.status, ctx.body)
			}
		})
	}
}

func TestServerErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	env := newTestEnv(t, &failingExecutor{err: errors.New("store offline")}, withLogger(zap.New(core)))

	ctx := newMockContext()
	ctx.reqHeaders[shell.SessionHeader] = "s1"
	if err := env.mock.routes["POST:/admin/_shell/toggle"](ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if ctx.status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", ctx.status)
	}
	if logs.Len() != 1 || logs.All()[0].Message != "shell request failed" {
		t.Fatalf("expected one error log, got %v", logs.All())
	}

	malformed := newMockContext()
	if err := env.mock.routes["POST:/admin/_shell/collapsed"](malformed); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if malformed.status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", malformed.status)
	}
	if logs.Len() != 1 {
		t.Fatalf("client errors must not be logged, got %d entries", logs.Len())
	}
}

func TestWebSocketStreamsOwnSessionOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	handler := env.mock.ws["/admin/_shell/ws"]
	ctx, cancel := context.WithCancel(context.Background())
	socket := newMockSocket(ctx, "s1")

	done := make(chan error, 1)
	go func() { done <- handler(socket) }()

	waitFor(t, func() bool { return env.broadcast.Subscribers() == 1 })
	_ = env.broadcast.ShellChanged(context.Background(), shell.ShellEvent{SessionID: "s2", Kind: shell.EventSidebarToggled})
	_ = env.broadcast.ShellChanged(context.Background(), shell.ShellEvent{SessionID: "s1", Kind: shell.EventGroupToggled})
	waitFor(t, func() bool { return len(socket.messages()) == 1 })
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	msgs := socket.messages()
	if len(msgs) != 1 || msgs[0].SessionID != "s1" {
		t.Fatalf("expected only own session events, got %+v", msgs)
	}
	if env.broadcast.Subscribers() != 0 {
		t.Fatalf("subscription leaked")
	}
}

func TestWebSocketRejectsMissingSession(t *testing.T) {
	env := newTestEnv(t, nil)
	socket := newMockSocket(context.Background(), "")
	err := env.mock.ws["/admin/_shell/ws"](socket)
	if !errors.Is(err, commands.ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
	if !socket.closed || env.broadcast.Subscribers() != 0 {
		t.Fatalf("expected closed socket without subscription")
	}
}

// --- Test helpers ---

type testEnv struct {
	mock      *mockRouter
	service   *shell.Service
	broadcast *shell.BroadcastHook
	renderer  *stubRenderer
}

type envOption func(*Config[struct{}])

func withLogger(logger *zap.Logger) envOption {
	return func(cfg *Config[struct{}]) { cfg.Logger = logger }
}

func newTestEnv(t *testing.T, api httpapi.Executor, opts ...envOption) *testEnv {
	t.Helper()
	broadcast := shell.NewBroadcastHook()
	service, err := shell.NewService(shell.Options{
		Tree:  shell.DefaultNavTree(),
		Hooks: []shell.EventHook{broadcast},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	renderer := &stubRenderer{}
	controller := page.NewController(page.ControllerOptions{
		View:     queries.NewShellViewQuery(service),
		Tree:     service.Tree(),
		Board:    widgets.NewBoard(widgets.DefaultFixtures(), widgets.NewChartRenderer(widgets.WithChartCache(nil))),
		Renderer: renderer,
		BasePath: "/admin",
	})
	if api == nil {
		api = &httpapi.CommandExecutor{
			ToggleCommander:   commands.NewToggleSidebarCommand(service, nil),
			CollapseCommander: commands.NewSetSidebarCollapsedCommand(service, nil),
			GroupCommander:    commands.NewToggleGroupCommand(service, nil),
		}
	}
	mock := newMockRouter()
	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		Tree:       service.Tree(),
		API:        api,
		Broadcast:  broadcast,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	return &testEnv{mock: mock, service: service, broadcast: broadcast, renderer: renderer}
}

type mockRouter struct {
	router.Router[struct{}]
	prefix string
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
	static []string
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
		ws:     m.ws,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	m.routes[method+":"+m.prefix+path] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Static(prefix, root string, config ...router.Static) router.Router[struct{}] {
	m.static = append(m.static, m.prefix+prefix)
	return m
}

func (m *mockRouter) WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	m.ws[m.prefix+path] = handler
	return mockRouteInfo{}
}

type mockRouteInfo struct {
	router.RouteInfo
}

type mockContext struct {
	router.Context
	ctx        context.Context
	query      map[string]string
	reqHeaders map[string]string
	reqBody    []byte
	headers    map[string]string
	body       []byte
	status     int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:        context.Background(),
		query:      map[string]string{},
		reqHeaders: map[string]string{},
		headers:    map[string]string{},
	}
}

func (m *mockContext) Context() context.Context { return m.ctx }

func (m *mockContext) Query(name string, defaultValue ...string) string {
	if v, ok := m.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Header(key string) string { return m.reqHeaders[key] }

func (m *mockContext) Body() []byte { return m.reqBody }

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

type mockSocket struct {
	router.WebSocketContext
	ctx    context.Context
	sid    string
	mu     sync.Mutex
	sent   []shell.ShellEvent
	closed bool
}

func newMockSocket(ctx context.Context, sid string) *mockSocket {
	return &mockSocket{ctx: ctx, sid: sid}
}

func (m *mockSocket) Context() context.Context { return m.ctx }

func (m *mockSocket) Query(name string, defaultValue ...string) string {
	if name == shell.SessionQueryParam {
		return m.sid
	}
	return ""
}

func (m *mockSocket) WriteJSON(v any) error {
	event, ok := v.(shell.ShellEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T", v)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, event)
	return nil
}

func (m *mockSocket) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSocket) messages() []shell.ShellEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shell.ShellEvent(nil), m.sent...)
}

type stubRenderer struct {
	names []string
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.names = append(s.names, name)
	result := name
	if m, ok := data.(map[string]any); ok && name == "layout" {
		result = fmt.Sprintf("layout:%v:%v", m["mode"], m["title"])
	}
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte(result))
	}
	return result, nil
}

type failingExecutor struct {
	err error
}

func (f *failingExecutor) ToggleSidebar(context.Context, commands.ToggleSidebarInput) error {
	return f.err
}

func (f *failingExecutor) SetCollapsed(context.Context, commands.SetSidebarCollapsedInput) error {
	return f.err
}

func (f *failingExecutor) ToggleGroup(context.Context, commands.ToggleGroupInput) error {
	return f.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
