package shell

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTreeRequired is returned when the service is built without a nav tree.
var ErrTreeRequired = errors.New("shell: nav tree is required")

const (
	EventMounted          = "shell.mounted"
	EventUnmounted        = "shell.unmounted"
	EventSidebarToggled   = "shell.sidebar.toggled"
	EventSidebarCollapsed = "shell.sidebar.collapsed_set"
	EventGroupToggled     = "shell.group.toggled"
	EventExpired          = "shell.expired"
)

// ShellEvent describes a state change on one mounted shell.
type ShellEvent struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Mode      Mode      `json:"mode"`
	Group     string    `json:"group,omitempty"`
	Open      bool      `json:"open,omitempty"`
	Applied   bool      `json:"applied"`
	At        time.Time `json:"at"`
}

// EventHook notifies transports (WebSocket/SSE) about shell changes.
// Hooks run while the session is locked, so they see events in commit order
// and must not call back into the same session.
type EventHook interface {
	ShellChanged(ctx context.Context, event ShellEvent) error
}

type noopEventHook struct{}

func (noopEventHook) ShellChanged(context.Context, ShellEvent) error { return nil }

// HeaderView is the serializable header state.
type HeaderView struct {
	Collapsed     bool   `json:"collapsed"`
	LeftOffset    int    `json:"left_offset"`
	Height        int    `json:"height"`
	UserName      string `json:"user_name"`
	Notifications int    `json:"notifications"`
}

// ShellView is a read-only snapshot of one mounted shell for a path.
type ShellView struct {
	SessionID   string          `json:"session_id"`
	CurrentPath string          `json:"current_path"`
	Mode        Mode            `json:"mode"`
	Collapsed   bool            `json:"collapsed"`
	Branding    Branding        `json:"branding"`
	Sidebar     SidebarView     `json:"sidebar"`
	Header      HeaderView      `json:"header"`
	Content     ContentProps    `json:"content"`
	Expansion   map[string]bool `json:"expansion"`
}

// Options configures the shell Service.
type Options struct {
	Tree          *NavTree
	Matcher       Matcher
	Widths        Widths
	Branding      Branding
	Notifications int
	Sessions      SessionStore
	Hooks         []EventHook
	Telemetry     Telemetry
	Now           func() time.Time
}

// Service mounts shells per session and routes interactions to the owning shell.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Tree == nil {
		return nil, ErrTreeRequired
	}
	if opts.Sessions == nil {
		opts.Sessions = NewMemorySessionStore()
	}
	if len(opts.Hooks) == 0 {
		opts.Hooks = []EventHook{noopEventHook{}}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Widths = opts.Widths.withDefaults()
	opts.Branding = opts.Branding.withDefaults()
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}, nil
}

// Tree returns the configured nav tree.
func (s *Service) Tree() *NavTree { return s.opts.Tree }

// Mount creates a fresh expanded shell seeded from currentPath.
func (s *Service) Mount(ctx context.Context, currentPath string) (string, error) {
	sh := Mount(s.opts.Tree, currentPath, WithMatcher(s.opts.Matcher), WithWidths(s.opts.Widths))
	id, err := s.opts.Sessions.Create(ctx, sh)
	if err != nil {
		return "", fmt.Errorf("shell: mount: %w", err)
	}
	s.opts.Telemetry.Record(ctx, EventMounted, map[string]any{
		"session_id":  id,
		"path":        currentPath,
		"open_groups": sh.Expansion().OpenGroups(),
	})
	return id, nil
}

// Ensure returns id when it names a mounted shell, otherwise mounts a new one.
func (s *Service) Ensure(ctx context.Context, id, currentPath string) (string, error) {
	if id != "" {
		err := s.opts.Sessions.With(ctx, id, func(*Shell) error { return nil })
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return "", err
		}
	}
	return s.Mount(ctx, currentPath)
}

// Unmount tears down a session.
func (s *Service) Unmount(ctx context.Context, id string) error {
	if err := s.opts.Sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, EventUnmounted, map[string]any{"session_id": id})
	return nil
}

// ToggleSidebar flips the collapsed flag of a session's shell.
func (s *Service) ToggleSidebar(ctx context.Context, id string) (Mode, error) {
	var (
		mode      Mode
		notifyErr error
	)
	err := s.opts.Sessions.With(ctx, id, func(sh *Shell) error {
		mode = sh.Toggle()
		notifyErr = s.emit(ctx, ShellEvent{SessionID: id, Kind: EventSidebarToggled, Mode: mode, Applied: true})
		return nil
	})
	if err != nil {
		return "", err
	}
	return mode, notifyErr
}

// SetCollapsed forces the collapsed flag; no event fires when nothing changed.
func (s *Service) SetCollapsed(ctx context.Context, id string, collapsed bool) (Mode, error) {
	var (
		mode      Mode
		notifyErr error
	)
	err := s.opts.Sessions.With(ctx, id, func(sh *Shell) error {
		changed := sh.SetCollapsed(collapsed)
		mode = sh.Mode()
		if changed {
			notifyErr = s.emit(ctx, ShellEvent{SessionID: id, Kind: EventSidebarCollapsed, Mode: mode, Applied: true})
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return mode, notifyErr
}

// ToggleGroup flips a group's open flag. Applied is false while the sidebar is collapsed.
func (s *Service) ToggleGroup(ctx context.Context, id, label string) (bool, error) {
	var (
		applied   bool
		notifyErr error
	)
	err := s.opts.Sessions.With(ctx, id, func(sh *Shell) error {
		applied = sh.ToggleGroup(label)
		open, _ := sh.Expansion().Stored(label)
		notifyErr = s.emit(ctx, ShellEvent{
			SessionID: id,
			Kind:      EventGroupToggled,
			Mode:      sh.Mode(),
			Group:     label,
			Open:      open,
			Applied:   applied,
		})
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, notifyErr
}

// ExpireIdle evicts idle sessions when the store supports it and returns how many went.
func (s *Service) ExpireIdle(ctx context.Context) int {
	sweeper, ok := s.opts.Sessions.(SessionSweeper)
	if !ok {
		return 0
	}
	evicted := sweeper.Sweep()
	for _, id := range evicted {
		s.opts.Telemetry.Record(ctx, EventExpired, map[string]any{"session_id": id})
	}
	return len(evicted)
}

// SessionCount reports the mounted session count, or -1 when the store cannot tell.
func (s *Service) SessionCount() int {
	if sweeper, ok := s.opts.Sessions.(SessionSweeper); ok {
		return sweeper.Len()
	}
	return -1
}

// View snapshots the session's shell for currentPath.
func (s *Service) View(ctx context.Context, id, currentPath string) (ShellView, error) {
	var view ShellView
	err := s.opts.Sessions.With(ctx, id, func(sh *Shell) error {
		view = s.snapshot(id, currentPath, sh)
		return nil
	})
	if err != nil {
		return ShellView{}, err
	}
	return view, nil
}

func (s *Service) snapshot(id, currentPath string, sh *Shell) ShellView {
	header := sh.Header()
	return ShellView{
		SessionID:   id,
		CurrentPath: currentPath,
		Mode:        sh.Mode(),
		Collapsed:   sh.Collapsed(),
		Branding:    s.opts.Branding,
		Sidebar:     sh.Sidebar(currentPath),
		Header: HeaderView{
			Collapsed:     header.Collapsed,
			LeftOffset:    header.LeftOffset,
			Height:        header.Height,
			UserName:      s.opts.Branding.UserName,
			Notifications: s.opts.Notifications,
		},
		Content:   sh.Content(),
		Expansion: sh.Expansion().Snapshot(),
	}
}

func (s *Service) emit(ctx context.Context, event ShellEvent) error {
	event.At = s.opts.Now()
	payload := map[string]any{
		"session_id": event.SessionID,
		"mode":       string(event.Mode),
		"applied":    event.Applied,
	}
	if event.Group != "" {
		payload["group"] = event.Group
		payload["open"] = event.Open
	}
	s.opts.Telemetry.Record(ctx, event.Kind, payload)
	var errs []error
	for _, hook := range s.opts.Hooks {
		if err := hook.ShellChanged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("shell: notify hooks: %w", err)
	}
	return nil
}
