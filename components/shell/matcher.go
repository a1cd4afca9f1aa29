package shell

import (
	"fmt"
	"strings"
)

// MatchMode selects how non-exact leaves compare against the current path.
type MatchMode int

const (
	// MatchLiteralPrefix treats the leaf path as a raw string prefix, so "/crm" matches "/crmextra".
	MatchLiteralPrefix MatchMode = iota
	// MatchSegmentBoundary requires equality or a "/" right after the leaf path.
	MatchSegmentBoundary
)

func (m MatchMode) String() string {
	switch m {
	case MatchSegmentBoundary:
		return "segment"
	default:
		return "prefix"
	}
}

// ParseMatchMode maps the configuration value onto a MatchMode.
func ParseMatchMode(value string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "prefix", "literal":
		return MatchLiteralPrefix, nil
	case "segment", "boundary":
		return MatchSegmentBoundary, nil
	default:
		return MatchLiteralPrefix, fmt.Errorf("shell: unknown match mode %q", value)
	}
}

// Matcher decides whether entries are active for a path.
type Matcher struct {
	Mode MatchMode
}

// NewMatcher returns a matcher for the given mode.
func NewMatcher(mode MatchMode) Matcher {
	return Matcher{Mode: mode}
}

// IsActive reports whether entry corresponds to (or contains) currentPath.
func (m Matcher) IsActive(entry NavEntry, currentPath string) bool {
	switch entry.kind {
	case KindLeaf:
		return m.leafActive(entry, currentPath)
	case KindGroup:
		for _, child := range entry.children {
			if m.IsActive(child, currentPath) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (m Matcher) leafActive(entry NavEntry, currentPath string) bool {
	if entry.path == "" {
		return false
	}
	if entry.exactMatch {
		return currentPath == entry.path
	}
	if !strings.HasPrefix(currentPath, entry.path) {
		return false
	}
	if m.Mode != MatchSegmentBoundary {
		return true
	}
	if len(currentPath) == len(entry.path) || strings.HasSuffix(entry.path, "/") {
		return true
	}
	return currentPath[len(entry.path)] == '/'
}
