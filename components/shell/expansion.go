package shell

import "sort"

// ExpansionState maps group labels to their stored open flag.
// Values are immutable; Toggle returns a new state.
type ExpansionState struct {
	open map[string]bool
}

// Seed opens every group containing an active leaf for currentPath.
func Seed(tree *NavTree, currentPath string, matcher Matcher) ExpansionState {
	state := ExpansionState{open: make(map[string]bool)}
	tree.Walk(func(entry NavEntry, _ int, _ *NavEntry) bool {
		if !entry.IsGroup() {
			return true
		}
		active := matcher.IsActive(entry, currentPath)
		// groups sharing a label share a key; any active one keeps it open
		state.open[entry.label] = state.open[entry.label] || active
		return true
	})
	return state
}

// Toggle flips label's stored value. Unknown labels open. While collapsed the receiver is returned unchanged.
func (s ExpansionState) Toggle(label string, collapsed bool) ExpansionState {
	if collapsed {
		return s
	}
	next := ExpansionState{open: make(map[string]bool, len(s.open)+1)}
	for k, v := range s.open {
		next.open[k] = v
	}
	next.open[label] = !s.open[label]
	return next
}

// EffectiveOpen is the display value: collapsed mode forces every group closed.
func (s ExpansionState) EffectiveOpen(label string, collapsed bool) bool {
	if collapsed {
		return false
	}
	return s.open[label]
}

// Stored returns the stored value and whether the key exists.
func (s ExpansionState) Stored(label string) (open bool, ok bool) {
	open, ok = s.open[label]
	return open, ok
}

// Snapshot returns a copy of the stored values.
func (s ExpansionState) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.open))
	for k, v := range s.open {
		out[k] = v
	}
	return out
}

// OpenGroups lists labels whose stored value is open, sorted.
func (s ExpansionState) OpenGroups() []string {
	labels := make([]string, 0, len(s.open))
	for k, v := range s.open {
		if v {
			labels = append(labels, k)
		}
	}
	sort.Strings(labels)
	return labels
}

// Equal reports whether both states hold the same stored values.
func (s ExpansionState) Equal(other ExpansionState) bool {
	if len(s.open) != len(other.open) {
		return false
	}
	for k, v := range s.open {
		if ov, ok := other.open[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
