package shell

const (
	DefaultCollapsedWidth = 80
	DefaultExpandedWidth  = 256
	DefaultHeaderHeight   = 70
)

// Mode is the sidebar width state.
type Mode string

const (
	ModeExpanded  Mode = "expanded"
	ModeCollapsed Mode = "collapsed"
)

// Widths holds the fixed layout dimensions in pixels.
type Widths struct {
	CollapsedWidth int `json:"collapsed_width" yaml:"collapsed_width"`
	ExpandedWidth  int `json:"expanded_width" yaml:"expanded_width"`
	HeaderHeight   int `json:"header_height" yaml:"header_height"`
}

// DefaultWidths returns the stock 80/256/70 layout.
func DefaultWidths() Widths {
	return Widths{
		CollapsedWidth: DefaultCollapsedWidth,
		ExpandedWidth:  DefaultExpandedWidth,
		HeaderHeight:   DefaultHeaderHeight,
	}
}

func (w Widths) withDefaults() Widths {
	if w.CollapsedWidth <= 0 {
		w.CollapsedWidth = DefaultCollapsedWidth
	}
	if w.ExpandedWidth <= 0 {
		w.ExpandedWidth = DefaultExpandedWidth
	}
	if w.HeaderHeight <= 0 {
		w.HeaderHeight = DefaultHeaderHeight
	}
	return w
}

// For returns the sidebar width for the given collapsed flag.
func (w Widths) For(collapsed bool) int {
	if collapsed {
		return w.CollapsedWidth
	}
	return w.ExpandedWidth
}

// HeaderProps is what the header bar receives from the shell.
type HeaderProps struct {
	Collapsed  bool
	LeftOffset int
	Height     int
	OnToggle   func()
}

// ContentProps is what the content region receives from the shell.
type ContentProps struct {
	LeftOffset int `json:"left_offset"`
	TopOffset  int `json:"top_offset"`
}

// Shell owns the collapsed flag and group expansion for one mounted layout.
// It is not safe for concurrent use; the owner serializes mutations.
type Shell struct {
	tree      *NavTree
	matcher   Matcher
	widths    Widths
	collapsed bool
	expansion ExpansionState
}

// ShellOption customizes a Shell at mount.
type ShellOption func(*Shell)

// WithMatcher overrides the default literal-prefix matcher.
func WithMatcher(m Matcher) ShellOption {
	return func(s *Shell) {
		s.matcher = m
	}
}

// WithWidths overrides the layout dimensions.
func WithWidths(w Widths) ShellOption {
	return func(s *Shell) {
		s.widths = w.withDefaults()
	}
}

// Mount creates an expanded shell with expansion seeded from currentPath.
func Mount(tree *NavTree, currentPath string, opts ...ShellOption) *Shell {
	s := &Shell{
		tree:    tree,
		matcher: NewMatcher(MatchLiteralPrefix),
		widths:  DefaultWidths(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.expansion = Seed(tree, currentPath, s.matcher)
	return s
}

func (s *Shell) Tree() *NavTree   { return s.tree }
func (s *Shell) Matcher() Matcher { return s.matcher }
func (s *Shell) Widths() Widths   { return s.widths }
func (s *Shell) Collapsed() bool  { return s.collapsed }

// Mode reports the current state.
func (s *Shell) Mode() Mode {
	if s.collapsed {
		return ModeCollapsed
	}
	return ModeExpanded
}

// Toggle flips between Expanded and Collapsed.
func (s *Shell) Toggle() Mode {
	s.collapsed = !s.collapsed
	return s.Mode()
}

// SetCollapsed forces a state. Reports whether the state changed.
func (s *Shell) SetCollapsed(collapsed bool) bool {
	if s.collapsed == collapsed {
		return false
	}
	s.collapsed = collapsed
	return true
}

// ToggleGroup flips a group's stored open flag. Ignored while collapsed; reports whether it applied.
func (s *Shell) ToggleGroup(label string) bool {
	if s.collapsed {
		return false
	}
	s.expansion = s.expansion.Toggle(label, false)
	return true
}

// Expansion returns the stored expansion state.
func (s *Shell) Expansion() ExpansionState { return s.expansion }

// SidebarWidth returns the current sidebar width.
func (s *Shell) SidebarWidth() int { return s.widths.For(s.collapsed) }

// Header returns the header bar props; OnToggle is bound to this shell.
func (s *Shell) Header() HeaderProps {
	return HeaderProps{
		Collapsed:  s.collapsed,
		LeftOffset: s.SidebarWidth(),
		Height:     s.widths.HeaderHeight,
		OnToggle:   func() { s.Toggle() },
	}
}

// Content returns the content region props.
func (s *Shell) Content() ContentProps {
	return ContentProps{
		LeftOffset: s.SidebarWidth(),
		TopOffset:  s.widths.HeaderHeight,
	}
}

// Sidebar builds the sidebar view for currentPath.
func (s *Shell) Sidebar(currentPath string) SidebarView {
	return BuildSidebar(s.tree, SidebarInput{
		Collapsed:   s.collapsed,
		CurrentPath: currentPath,
		Expansion:   s.expansion,
		Matcher:     s.matcher,
		Widths:      s.widths,
	})
}
