package shell

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type recordingHook struct {
	mu     sync.Mutex
	events []ShellEvent
	err    error
}

func (h *recordingHook) ShellChanged(_ context.Context, event ShellEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Tree == nil {
		opts.Tree = DefaultNavTree()
	}
	opts.Now = func() time.Time { return time.Date(2021, 9, 20, 10, 0, 0, 0, time.UTC) }
	svc, err := NewService(opts)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresTree(t *testing.T) {
	_, err := NewService(Options{})
	assert.ErrorIs(t, err, ErrTreeRequired)
}

func TestServiceMountAndView(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc := newTestService(t, Options{Telemetry: telemetry, Notifications: 3})
	ctx := context.Background()

	id, err := svc.Mount(ctx, "/crm")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	view, err := svc.View(ctx, id, "/crm")
	require.NoError(t, err)
	assert.Equal(t, ModeExpanded, view.Mode)
	assert.Equal(t, DefaultExpandedWidth, view.Sidebar.Width)
	assert.Equal(t, DefaultExpandedWidth, view.Header.LeftOffset)
	assert.Equal(t, DefaultExpandedWidth, view.Content.LeftOffset)
	assert.Equal(t, "VELZON", view.Branding.Name)
	assert.Equal(t, "Anna Adame", view.Header.UserName)
	assert.Equal(t, 3, view.Header.Notifications)
	assert.True(t, view.Expansion["Dashboards"])
	assert.False(t, view.Expansion["Apps"])
	assert.Equal(t, []string{EventMounted}, telemetry.events)
}

func TestServiceToggleSidebarEmitsEvents(t *testing.T) {
	hook := &recordingHook{}
	svc := newTestService(t, Options{Hooks: []EventHook{hook}})
	ctx := context.Background()
	id, err := svc.Mount(ctx, "/crm")
	require.NoError(t, err)

	mode, err := svc.ToggleSidebar(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ModeCollapsed, mode)

	view, err := svc.View(ctx, id, "/crm")
	require.NoError(t, err)
	assert.Equal(t, DefaultCollapsedWidth, view.Content.LeftOffset)
	assert.True(t, view.Header.Collapsed)

	require.Len(t, hook.events, 1)
	assert.Equal(t, EventSidebarToggled, hook.events[0].Kind)
	assert.Equal(t, id, hook.events[0].SessionID)
	assert.Equal(t, 2021, hook.events[0].At.Year())
}

func TestServiceSetCollapsedOnlyEmitsOnChange(t *testing.T) {
	hook := &recordingHook{}
	svc := newTestService(t, Options{Hooks: []EventHook{hook}})
	ctx := context.Background()
	id, _ := svc.Mount(ctx, "/")

	mode, err := svc.SetCollapsed(ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, ModeExpanded, mode)
	assert.Empty(t, hook.events)

	mode, err = svc.SetCollapsed(ctx, id, true)
	require.NoError(t, err)
	assert.Equal(t, ModeCollapsed, mode)
	require.Len(t, hook.events, 1)
	assert.Equal(t, EventSidebarCollapsed, hook.events[0].Kind)
}

func TestServiceToggleGroup(t *testing.T) {
	hook := &recordingHook{}
	svc := newTestService(t, Options{Hooks: []EventHook{hook}})
	ctx := context.Background()
	id, _ := svc.Mount(ctx, "/crm")

	applied, err := svc.ToggleGroup(ctx, id, "Apps")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, hook.events[0].Open)

	_, err = svc.ToggleSidebar(ctx, id)
	require.NoError(t, err)
	applied, err = svc.ToggleGroup(ctx, id, "Apps")
	require.NoError(t, err)
	assert.False(t, applied)

	view, err := svc.View(ctx, id, "/crm")
	require.NoError(t, err)
	assert.True(t, view.Expansion["Apps"], "stored value survives collapse")
	apps, ok := view.Sidebar.Find("Apps")
	require.True(t, ok)
	assert.False(t, apps.Open)
}

func TestServiceUnknownSession(t *testing.T) {
	svc := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.ToggleSidebar(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.View(ctx, "missing", "/")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Unmount(ctx, "missing"), ErrSessionNotFound)
}

func TestServiceEnsureMountsFreshShell(t *testing.T) {
	svc := newTestService(t, Options{})
	ctx := context.Background()
	id, err := svc.Ensure(ctx, "", "/crm")
	require.NoError(t, err)

	same, err := svc.Ensure(ctx, id, "/analytics")
	require.NoError(t, err)
	assert.Equal(t, id, same)

	fresh, err := svc.Ensure(ctx, "stale", "/crm")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", fresh)

	require.NoError(t, svc.Unmount(ctx, id))
	remounted, err := svc.Ensure(ctx, id, "/crm")
	require.NoError(t, err)
	assert.NotEqual(t, id, remounted)
	view, err := svc.View(ctx, remounted, "/crm")
	require.NoError(t, err)
	assert.Equal(t, ModeExpanded, view.Mode, "fresh mounts reset to expanded")
}

func TestServiceHookErrorsAreReturned(t *testing.T) {
	boom := errors.New("boom")
	svc := newTestService(t, Options{Hooks: []EventHook{&recordingHook{err: boom}}})
	ctx := context.Background()
	id, _ := svc.Mount(ctx, "/")

	mode, err := svc.ToggleSidebar(ctx, id)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ModeCollapsed, mode, "state change is kept")
}

func TestServiceSerializesConcurrentToggles(t *testing.T) {
	svc := newTestService(t, Options{})
	ctx := context.Background()
	id, _ := svc.Mount(ctx, "/")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ToggleSidebar(ctx, id)
		}()
	}
	wg.Wait()

	view, err := svc.View(ctx, id, "/")
	require.NoError(t, err)
	assert.Equal(t, ModeExpanded, view.Mode, "an even number of toggles lands on expanded")
}

func TestServiceHooksSeeToggleEventsInCommitOrder(t *testing.T) {
	hook := &recordingHook{}
	svc := newTestService(t, Options{Hooks: []EventHook{hook}})
	ctx := context.Background()
	id, _ := svc.Mount(ctx, "/")

	var wg sync.WaitGroup
	for i := 0; i < 41; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ToggleSidebar(ctx, id)
		}()
	}
	wg.Wait()

	hook.mu.Lock()
	defer hook.mu.Unlock()
	require.Len(t, hook.events, 41)
	for i, event := range hook.events {
		want := ModeCollapsed
		if i%2 == 1 {
			want = ModeExpanded
		}
		if event.Mode != want {
			t.Fatalf("event %d: expected mode %s, got %s", i, want, event.Mode)
		}
	}
	view, err := svc.View(ctx, id, "/")
	require.NoError(t, err)
	assert.Equal(t, hook.events[len(hook.events)-1].Mode, view.Mode, "last event matches the stored state")
}

func TestServiceExpireIdleSessions(t *testing.T) {
	clock := time.Date(2021, 9, 20, 10, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore(WithIdleTTL(time.Minute), WithStoreClock(func() time.Time { return clock }))
	telemetry := &recordingTelemetry{}
	svc := newTestService(t, Options{Sessions: store, Telemetry: telemetry})
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_, err := svc.Ensure(ctx, "", "/crm")
		require.NoError(t, err)
	}
	kept, err := svc.Ensure(ctx, "", "/crm")
	require.NoError(t, err)
	assert.Equal(t, 1001, svc.SessionCount())

	clock = clock.Add(45 * time.Second)
	_, err = svc.Ensure(ctx, kept, "/crm")
	require.NoError(t, err)
	clock = clock.Add(30 * time.Second)

	assert.Equal(t, 1000, svc.ExpireIdle(ctx))
	assert.Equal(t, 1, svc.SessionCount())
	_, err = svc.View(ctx, kept, "/crm")
	assert.NoError(t, err, "touched session survives the sweep")

	telemetry.mu.Lock()
	expired := 0
	for _, event := range telemetry.events {
		if event == EventExpired {
			expired++
		}
	}
	telemetry.mu.Unlock()
	assert.Equal(t, 1000, expired)
}

type fixedStore struct {
	SessionStore
}

func TestServiceExpireIdleWithoutSweeper(t *testing.T) {
	svc := newTestService(t, Options{Sessions: fixedStore{NewMemorySessionStore()}})
	assert.Equal(t, 0, svc.ExpireIdle(context.Background()))
	assert.Equal(t, -1, svc.SessionCount())
}
