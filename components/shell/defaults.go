package shell

// Branding holds the brand and profile block shown in the sidebar and header.
type Branding struct {
	Name       string `json:"name" yaml:"name"`
	Short      string `json:"short" yaml:"short"`
	UserName   string `json:"user_name" yaml:"user_name"`
	UserRole   string `json:"user_role" yaml:"user_role"`
	UserStatus string `json:"user_status" yaml:"user_status"`
}

// DefaultBranding returns the stock brand block.
func DefaultBranding() Branding {
	return Branding{
		Name:       "VELZON",
		Short:      "V",
		UserName:   "Anna Adame",
		UserRole:   "Founder",
		UserStatus: "Online",
	}
}

func (b Branding) withDefaults() Branding {
	def := DefaultBranding()
	if b.Name == "" {
		b.Name = def.Name
	}
	if b.Short == "" {
		b.Short = def.Short
	}
	return b
}

// DefaultHomePath is the page shown at the base path.
const DefaultHomePath = "/crm"

// DefaultNavTree returns the stock admin navigation.
func DefaultNavTree() *NavTree {
	return MustNavTree(DefaultNavEntries()...)
}

// DefaultNavEntries returns the stock admin navigation entries.
func DefaultNavEntries() []NavEntry {
	return []NavEntry{
		Group("Dashboards", []NavEntry{
			Leaf("Analytics", "/analytics"),
			Leaf("CRM", "/crm", ExactMatch()),
			Leaf("Ecommerce", "/ecommerce"),
			Leaf("Crypto", "/crypto"),
		}, WithIcon("layout-dashboard")),
		Leaf("Projects", "/projects", WithIcon("folder-kanban")),
		Leaf("NFT", "/nft", WithIcon("gem")),
		Leaf("Job", "/job", WithIcon("briefcase")),
		Leaf("Blog", "/blog", WithIcon("newspaper"), WithBadge("New", BadgeNew)),
		Group("Apps", []NavEntry{
			Leaf("Calendar", "/apps/calendar"),
			Leaf("Chat", "/apps/chat"),
			Leaf("Email", "/apps/email"),
		}, WithIcon("layout-grid")),
		Leaf("Layouts", "/layouts", WithIcon("layers"), WithBadge("Hot", BadgeHot)),
		SectionTitle("PAGES"),
		Group("Authentication", []NavEntry{
			Leaf("Sign In", "/auth/signin"),
			Leaf("Sign Up", "/auth/signup"),
		}, WithIcon("shield-check")),
		Group("Pages", []NavEntry{
			Leaf("Starter", "/pages/starter"),
			Leaf("Profile", "/pages/profile"),
		}, WithIcon("file-text")),
		Leaf("Landing", "/landing", WithIcon("rocket")),
		SectionTitle("COMPONENTS"),
		Group("Base UI", []NavEntry{
			Leaf("Alerts", "/components/alerts"),
			Leaf("Buttons", "/components/buttons"),
		}, WithIcon("box")),
		Group("Advance UI", []NavEntry{
			Leaf("Scrollbar", "/components/scrollbar"),
			Leaf("Swiper", "/components/swiper"),
		}, WithIcon("layers-3")),
		Leaf("Widgets", "/components/widgets", WithIcon("puzzle")),
		Leaf("Forms", "/components/forms", WithIcon("clipboard-list")),
	}
}
