package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/commands"
	"github.com/goliatone/go-admin-shell/components/shell/gorouter"
	"github.com/goliatone/go-admin-shell/components/shell/httpapi"
	"github.com/goliatone/go-admin-shell/components/shell/page"
	"github.com/goliatone/go-admin-shell/components/shell/queries"
	"github.com/goliatone/go-admin-shell/components/widgets"
)

const (
	shutdownTimeout = 5 * time.Second
	janitorInterval = time.Minute
)

type serveCmd struct {
	Config      string `type:"path" help:"Path to the shell YAML config."`
	Manifest    string `type:"path" help:"Nav manifest to serve instead of the built-in navigation."`
	Addr        string `help:"Listen address for the admin shell (overrides config)."`
	MetricsAddr string `name:"metrics-addr" help:"Listen address for /metrics and the net/http event endpoints (overrides config)."`
	Match       string `help:"Active route matching: prefix or segment (overrides config)."`
	LogLevel    string `name:"log-level" help:"Log level: debug, info, warn, error (overrides config)."`
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := shell.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	cmd.applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tree, branding, err := loadTree(cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	broadcast := shell.NewBroadcastHook()
	telemetry := shell.MultiTelemetry{
		shell.NewPrometheusTelemetry(registry),
		shell.NewZapTelemetry(logger),
	}

	service, err := shell.NewService(shell.Options{
		Tree:          tree,
		Matcher:       shell.NewMatcher(cfg.MatchMode()),
		Widths:        cfg.Layout,
		Branding:      branding,
		Notifications: cfg.Notifications,
		Sessions:      shell.NewMemorySessionStore(shell.WithIdleTTL(cfg.SessionTTL)),
		Hooks:         []shell.EventHook{broadcast},
		Telemetry:     telemetry,
	})
	if err != nil {
		return err
	}
	if err := shell.RegisterSessionGauge(registry, service.SessionCount); err != nil {
		return fmt.Errorf("shellctl: register session gauge: %w", err)
	}

	renderer, err := page.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("shellctl: templates: %w", err)
	}
	base := gorouter.BasePath(cfg.BasePath)
	routes := gorouter.DefaultRoutes(gorouter.RouteConfig{})
	chartCache := widgets.NewChartCache(cfg.Charts.CacheTTL)
	charts := widgets.NewChartRenderer(
		widgets.WithChartCache(chartCache),
		widgets.WithChartTheme(cfg.Charts.Theme),
		widgets.WithChartAssetsHost(cfg.Charts.AssetsHost),
	)
	viewQuery := queries.NewShellViewQuery(service)
	controller := page.NewController(page.ControllerOptions{
		View:       viewQuery,
		Tree:       tree,
		Board:      widgets.NewBoard(widgets.DefaultFixtures(), charts),
		Renderer:   renderer,
		BasePath:   base,
		HomePath:   cfg.HomePath,
		AssetsPath: base + routes.Assets,
		SocketPath: base + routes.WebSocket,
	})

	toggle := commands.NewToggleSidebarCommand(service, telemetry)
	collapse := commands.NewSetSidebarCollapsedCommand(service, telemetry)
	group := commands.NewToggleGroupCommand(service, telemetry)

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		Tree:       tree,
		API: &httpapi.CommandExecutor{
			ToggleCommander:   toggle,
			CollapseCommander: collapse,
			GroupCommander:    group,
		},
		Broadcast: broadcast,
		Logger:    logger,
		BasePath:  base,
		Routes:    routes,
	}); err != nil {
		return fmt.Errorf("shellctl: register routes: %w", err)
	}

	ops := &http.Server{
		Addr: cfg.MetricsAddr,
		Handler: opsMux(registry, broadcast, &httpapi.Handlers{
			Toggle:   toggle,
			Collapse: collapse,
			Group:    group,
			Unmount:  commands.NewUnmountShellCommand(service, telemetry),
			View:     viewQuery,
			HomePath: cfg.HomePath,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("admin shell listening",
			zap.String("addr", cfg.Addr),
			zap.String("url", "http://localhost"+cfg.Addr+base+cfg.HomePath),
			zap.Int("pages", len(gorouter.LeafPaths(tree))),
		)
		if err := server.Serve(cfg.Addr); err != nil {
			return fmt.Errorf("shellctl: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("ops server listening", zap.String("addr", cfg.MetricsAddr))
		if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shellctl: ops server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runJanitor(gCtx, janitorInterval, logger, service, chartCache)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down", zap.Duration("grace_period", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("admin shell shutdown error", zap.Error(err))
		}
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown error", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}

// runJanitor evicts idle sessions and expired charts until ctx is done.
func runJanitor(ctx context.Context, interval time.Duration, logger *zap.Logger, service *shell.Service, charts *widgets.ChartCache) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(ctx, logger, service, charts)
		}
	}
}

func sweep(ctx context.Context, logger *zap.Logger, service *shell.Service, charts *widgets.ChartCache) {
	expired := service.ExpireIdle(ctx)
	remaining := charts.Purge()
	if expired > 0 {
		logger.Debug("expired idle sessions",
			zap.Int("expired", expired),
			zap.Int("sessions", service.SessionCount()),
			zap.Int("cached_charts", remaining),
		)
	}
}

func (cmd *serveCmd) applyFlags(cfg *shell.Config) {
	if cmd.Manifest != "" {
		cfg.Manifest = cmd.Manifest
	}
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	if cmd.MetricsAddr != "" {
		cfg.MetricsAddr = cmd.MetricsAddr
	}
	if cmd.Match != "" {
		cfg.Match = cmd.Match
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
}

// loadTree resolves the served nav tree; manifest branding wins over config branding.
func loadTree(cfg shell.Config) (*shell.NavTree, shell.Branding, error) {
	if cfg.Manifest == "" {
		return shell.DefaultNavTree(), cfg.Branding, nil
	}
	tree, doc, err := shell.LoadNavTree(cfg.Manifest, shell.NewNavSchemaValidator())
	if err != nil {
		return nil, shell.Branding{}, err
	}
	branding := cfg.Branding
	if doc.Branding != nil {
		branding = *doc.Branding
	}
	return tree, branding, nil
}

func opsMux(gatherer prometheus.Gatherer, broadcast *shell.BroadcastHook, api *httpapi.Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", shell.MetricsHandler(gatherer))
	mux.HandleFunc("GET /_shell/events", broadcast.ServeSSE)
	mux.HandleFunc("GET /_shell/ws", broadcast.ServeWebSocket)
	mux.HandleFunc("GET /_shell/state", api.HandleState)
	mux.HandleFunc("POST /_shell/toggle", api.HandleToggleSidebar)
	mux.HandleFunc("POST /_shell/collapsed", api.HandleSetCollapsed)
	mux.HandleFunc("POST /_shell/groups/toggle", api.HandleToggleGroup)
	mux.HandleFunc("DELETE /_shell/session", api.HandleUnmount)
	return mux
}
