package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-shell/components/shell"
	"github.com/goliatone/go-admin-shell/components/shell/commands"
	"github.com/goliatone/go-admin-shell/components/shell/queries"
)

// Handlers exposes the shell interactions over plain net/http, backed by shared commands.
type Handlers struct {
	Toggle   gocommand.Commander[commands.ToggleSidebarInput]
	Collapse gocommand.Commander[commands.SetSidebarCollapsedInput]
	Group    gocommand.Commander[commands.ToggleGroupInput]
	Unmount  gocommand.Commander[commands.UnmountShellInput]
	View     gocommand.Querier[queries.ViewInput, shell.ShellView]
	HomePath string
}

type collapsedPayload struct {
	Collapsed bool `json:"collapsed"`
}

type groupPayload struct {
	Label string `json:"label"`
}

// HandleToggleSidebar flips the sidebar for the request's session.
func (h *Handlers) HandleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	input := commands.ToggleSidebarInput{SessionID: shell.SessionFromRequest(r)}
	if err := h.Toggle.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetCollapsed sets the sidebar mode from a {"collapsed": bool} body.
func (h *Handlers) HandleSetCollapsed(w http.ResponseWriter, r *http.Request) {
	var payload collapsedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.SetSidebarCollapsedInput{SessionID: shell.SessionFromRequest(r), Collapsed: payload.Collapsed}
	if err := h.Collapse.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleGroup flips a group header from a {"label": "..."} body.
func (h *Handlers) HandleToggleGroup(w http.ResponseWriter, r *http.Request) {
	var payload groupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.ToggleGroupInput{SessionID: shell.SessionFromRequest(r), Label: payload.Label}
	if err := h.Group.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnmount drops the request's session.
func (h *Handlers) HandleUnmount(w http.ResponseWriter, r *http.Request) {
	input := commands.UnmountShellInput{SessionID: shell.SessionFromRequest(r)}
	if err := h.Unmount.Execute(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleState returns the shell snapshot for ?path=, mounting a session when needed.
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = h.HomePath
	}
	view, err := h.View.Query(r.Context(), queries.ViewInput{SessionID: shell.SessionFromRequest(r), Path: path})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(shell.SessionHeader, view.SessionID)
	_ = json.NewEncoder(w).Encode(view)
}

// StatusFor maps shell and command errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shell.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrSessionRequired), errors.Is(err, commands.ErrLabelRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}
