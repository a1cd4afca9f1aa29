package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/commands"
	"github.com/goliatone/go-admin-shell/components/shell/httpapi"
	"github.com/goliatone/go-admin-shell/components/shell/page"
)

// DefaultBasePath is where the shell mounts when Config.BasePath is empty.
const DefaultBasePath = "/admin"

// Config wires go-router with the shell page controller, mutation API, and broadcast hook.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *page.Controller
	Tree       *shell.NavTree
	API        httpapi.Executor
	Broadcast  *shell.BroadcastHook
	Logger     *zap.Logger
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for shell endpoints.
type RouteConfig struct {
	Home      string
	State     string
	Toggle    string
	Collapsed string
	Group     string
	WebSocket string
	Assets    string
}

// DefaultRoutes fills empty route paths with their defaults.
func DefaultRoutes(routes RouteConfig) RouteConfig {
	if routes.Home == "" {
		routes.Home = "/"
	}
	if routes.State == "" {
		routes.State = "/_shell/state"
	}
	if routes.Toggle == "" {
		routes.Toggle = "/_shell/toggle"
	}
	if routes.Collapsed == "" {
		routes.Collapsed = "/_shell/collapsed"
	}
	if routes.Group == "" {
		routes.Group = "/_shell/groups/toggle"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/_shell/ws"
	}
	if routes.Assets == "" {
		routes.Assets = "/_shell/assets"
	}
	return routes
}

// Register mounts the shell pages, JSON state, toggle API, WebSocket, and assets on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Tree == nil {
		return errors.New("gorouter: nav tree is required")
	}
	routes := DefaultRoutes(cfg.Routes)
	base := BasePath(cfg.BasePath)
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("gorouter")

	cfg.Router.Static(base+routes.Assets, ".", router.Static{
		FS:     page.Assets(),
		Root:   ".",
		MaxAge: 86400,
	})

	group := cfg.Router.Group(base)

	group.Get(routes.Home, pageHandler(cfg.Controller, "", logger))
	for _, path := range LeafPaths(cfg.Tree) {
		group.Get(path, pageHandler(cfg.Controller, path, logger))
	}

	group.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		view, err := cfg.Controller.State(ctx.Context(), page.Request{
			SessionID: sessionID(ctx),
			Path:      ctx.Query("path"),
		})
		if err != nil {
			return respondError(ctx, logger, err)
		}
		ctx.SetHeader(shell.SessionHeader, view.SessionID)
		return ctx.JSON(http.StatusOK, view)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes, logger)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	logger.Debug("shell routes registered", zap.String("base", base), zap.Int("pages", len(LeafPaths(cfg.Tree))+1))
	return nil
}

// BasePath normalizes the mount prefix.
func BasePath(base string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	if base == "" {
		return DefaultBasePath
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

// LeafPaths lists the distinct leaf routes of the tree in traversal order.
func LeafPaths(tree *shell.NavTree) []string {
	seen := map[string]bool{}
	var paths []string
	for _, leaf := range tree.Leaves() {
		if seen[leaf.Path()] {
			continue
		}
		seen[leaf.Path()] = true
		paths = append(paths, leaf.Path())
	}
	return paths
}

func pageHandler(controller *page.Controller, path string, logger *zap.Logger) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		view, err := controller.RenderPage(ctx.Context(), page.Request{
			SessionID:  sessionID(ctx),
			Path:       path,
			SalesMonth: ctx.Query("month"),
			DealPeriod: ctx.Query("period"),
		}, &buf)
		if err != nil {
			return respondError(ctx, logger, err)
		}
		ctx.SetHeader(shell.SessionHeader, view.SessionID)
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	})
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig, logger *zap.Logger) {
	r.Post(routes.Toggle, router.WrapHandler(func(ctx router.Context) error {
		if err := api.ToggleSidebar(ctx.Context(), commands.ToggleSidebarInput{SessionID: sessionID(ctx)}); err != nil {
			return respondError(ctx, logger, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Collapsed, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Collapsed bool `json:"collapsed"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		input := commands.SetSidebarCollapsedInput{SessionID: sessionID(ctx), Collapsed: payload.Collapsed}
		if err := api.SetCollapsed(ctx.Context(), input); err != nil {
			return respondError(ctx, logger, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Post(routes.Group, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		input := commands.ToggleGroupInput{SessionID: sessionID(ctx), Label: payload.Label}
		if err := api.ToggleGroup(ctx.Context(), input); err != nil {
			return respondError(ctx, logger, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *shell.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		session := strings.TrimSpace(ws.Query(shell.SessionQueryParam))
		if session == "" {
			_ = ws.Close()
			return commands.ErrSessionRequired
		}
		events, cancel := hook.Subscribe(session)
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func sessionID(ctx router.Context) string {
	if sid := strings.TrimSpace(ctx.Query(shell.SessionQueryParam)); sid != "" {
		return sid
	}
	return strings.TrimSpace(ctx.Header(shell.SessionHeader))
}

func respondError(ctx router.Context, logger *zap.Logger, err error) error {
	status := httpapi.StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("shell request failed", zap.Error(err))
	}
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}
