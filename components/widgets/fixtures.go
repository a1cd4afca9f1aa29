package widgets

// Trend is the direction of a stat card change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// StatCard is one tile of the stat-card grid.
type StatCard struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
	Period string `json:"period"`
	Icon   string `json:"icon"`
}

// SalesMonth holds the sales forecast bars for a month.
type SalesMonth struct {
	Month   string  `json:"month"`
	Goal    float64 `json:"goal"`
	Pending float64 `json:"pending"`
	Revenue float64 `json:"revenue"`
}

// BalancePoint is one month of the balance overview.
type BalancePoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// DealTypePoint is one axis of the deal-type radar.
type DealTypePoint struct {
	Label   string  `json:"label"`
	Pending float64 `json:"pending"`
	Loss    float64 `json:"loss"`
	Won     float64 `json:"won"`
}

// Deal is one row of the deals status table.
type Deal struct {
	Name          string `json:"name"`
	LastContacted string `json:"last_contacted"`
	SalesRep      string `json:"sales_rep"`
	RepInitials   string `json:"rep_initials"`
	Status        string `json:"status"`
	Value         string `json:"value"`
}

// Task is one checklist item.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date"`
}

// Fixtures bundles every dataset the CRM page displays.
type Fixtures struct {
	Stats           []StatCard      `json:"stats"`
	Sales           []SalesMonth    `json:"sales"`
	Balance         []BalancePoint  `json:"balance"`
	DealTypeMonthly []DealTypePoint `json:"deal_type_monthly"`
	DealTypeYearly  []DealTypePoint `json:"deal_type_yearly"`
	Deals           []Deal          `json:"deals"`
	Tasks           []Task          `json:"tasks"`
}

// DefaultFixtures returns the stock CRM data set.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Stats: []StatCard{
			{Title: "Campaign Sent", Value: "197", Change: "5.2%", Trend: TrendUp, Period: "vs. previous month", Icon: "send"},
			{Title: "Annual Profit", Value: "$489.4k", Change: "12.8%", Trend: TrendUp, Period: "vs. previous year", Icon: "dollar-sign"},
			{Title: "Lead Conversation", Value: "32.89%", Change: "2.5%", Trend: TrendDown, Period: "vs. target", Icon: "users"},
			{Title: "Daily Average Income", Value: "$1,596.5", Change: "7.1%", Trend: TrendUp, Period: "today", Icon: "activity"},
		},
		Sales: []SalesMonth{
			{Month: "Nov 2021", Goal: 37000, Pending: 12000, Revenue: 18000},
			{Month: "Oct 2021", Goal: 35000, Pending: 10000, Revenue: 23000},
			{Month: "Sep 2021", Goal: 41000, Pending: 11000, Revenue: 15000},
			{Month: "Aug 2021", Goal: 30000, Pending: 13000, Revenue: 21000},
		},
		Balance: []BalancePoint{
			{Month: "Jan", Revenue: 18000, Expenses: 12000},
			{Month: "Feb", Revenue: 22000, Expenses: 15000},
			{Month: "Mar", Revenue: 25000, Expenses: 17000},
			{Month: "Apr", Revenue: 20000, Expenses: 18000},
			{Month: "May", Revenue: 28000, Expenses: 20000},
			{Month: "Jun", Revenue: 35000, Expenses: 22000},
			{Month: "Jul", Revenue: 32000, Expenses: 25000},
			{Month: "Aug", Revenue: 40000, Expenses: 28000},
			{Month: "Sep", Revenue: 45000, Expenses: 30000},
			{Month: "Oct", Revenue: 42000, Expenses: 33000},
			{Month: "Nov", Revenue: 50000, Expenses: 35000},
			{Month: "Dec", Revenue: 58000, Expenses: 40000},
		},
		DealTypeMonthly: []DealTypePoint{
			{Label: "Jan", Pending: 65, Loss: 28, Won: 82},
			{Label: "Feb", Pending: 72, Loss: 35, Won: 65},
			{Label: "Mar", Pending: 58, Loss: 22, Won: 93},
			{Label: "Apr", Pending: 78, Loss: 45, Won: 55},
			{Label: "May", Pending: 85, Loss: 18, Won: 75},
			{Label: "Jun", Pending: 60, Loss: 30, Won: 90},
		},
		DealTypeYearly: []DealTypePoint{
			{Label: "2018", Pending: 50, Loss: 20, Won: 80},
			{Label: "2019", Pending: 60, Loss: 30, Won: 70},
			{Label: "2020", Pending: 70, Loss: 25, Won: 90},
			{Label: "2021", Pending: 40, Loss: 40, Won: 50},
			{Label: "2022", Pending: 80, Loss: 15, Won: 60},
			{Label: "2023", Pending: 65, Loss: 35, Won: 85},
		},
		Deals: []Deal{
			{Name: "Absternet LLC", LastContacted: "Sep 20, 2021", SalesRep: "Donald Risher", RepInitials: "DR", Status: "Deal Won", Value: "$100.1K"},
			{Name: "Raitech Soft", LastContacted: "Sep 23, 2021", SalesRep: "Sofia Cunha", RepInitials: "SC", Status: "Intro Call", Value: "$150K"},
			{Name: "William PVT", LastContacted: "Sep 27, 2021", SalesRep: "Luis Rocha", RepInitials: "LR", Status: "Stuck", Value: "$78.18K"},
			{Name: "Loiusee LLP", LastContacted: "Sep 30, 2021", SalesRep: "Vitoria Rodrigues", RepInitials: "VR", Status: "Deal Won", Value: "$180K"},
			{Name: "Tech Solutions Inc.", LastContacted: "Oct 02, 2021", SalesRep: "Pedro Alves", RepInitials: "PA", Status: "Negotiation", Value: "$220K"},
		},
		Tasks: []Task{
			{ID: "task1", Title: "Review and make sure nothing slips through cracks", Completed: false, DueDate: "15 Sep, 2021"},
			{ID: "task2", Title: "Send meeting invites for sales upcampaign", Completed: true, DueDate: "20 Sep, 2021"},
			{ID: "task3", Title: "Weekly closed sales won checking with sales team", Completed: false, DueDate: "24 Sep, 2021"},
			{ID: "task4", Title: "Add notes that can be viewed from the individual view", Completed: false, DueDate: "27 Sep, 2021"},
			{ID: "task5", Title: "Move stuff to another page", Completed: true, DueDate: "10 Sep, 2021"},
		},
	}
}
