package widgets

import (
	"context"
	"fmt"
)

// BoardQuery carries the user-selectable widget inputs.
type BoardQuery struct {
	SalesMonth string
	DealPeriod Period
}

// ChartView is one rendered chart widget with its selector state.
type ChartView struct {
	Title    string   `json:"title"`
	HTML     string   `json:"html"`
	Options  []string `json:"options,omitempty"`
	Selected string   `json:"selected,omitempty"`
}

// TaskListView is the checklist widget state.
type TaskListView struct {
	Tasks     []Task `json:"tasks"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// Summary renders "N of M remaining".
func (v TaskListView) Summary() string {
	return fmt.Sprintf("%d of %d remaining", v.Remaining, v.Total)
}

// CRMPage is the composed CRM dashboard content.
type CRMPage struct {
	Stats    []StatCard     `json:"stats"`
	Sales    ChartView      `json:"sales"`
	DealType ChartView      `json:"deal_type"`
	Balance  ChartView      `json:"balance"`
	Totals   BalanceSummary `json:"totals"`
	Deals    []Deal         `json:"deals"`
	Tasks    TaskListView   `json:"tasks"`
}

// Board composes the CRM widgets from fixtures.
type Board struct {
	fixtures Fixtures
	charts   *ChartRenderer
}

// NewBoard builds a board over fixtures; a nil renderer uses the defaults.
func NewBoard(fixtures Fixtures, charts *ChartRenderer) *Board {
	if charts == nil {
		charts = NewChartRenderer()
	}
	return &Board{fixtures: fixtures, charts: charts}
}

// CRM builds the CRM page for the query.
func (b *Board) CRM(ctx context.Context, q BoardQuery) (CRMPage, error) {
	if err := ctx.Err(); err != nil {
		return CRMPage{}, err
	}
	month, ok := b.salesMonth(q.SalesMonth)
	if !ok {
		return CRMPage{}, fmt.Errorf("widgets: no sales data")
	}
	salesHTML, err := b.charts.SalesForecast(month)
	if err != nil {
		return CRMPage{}, err
	}

	period := q.DealPeriod
	if period == "" {
		period = PeriodMonthly
	}
	dealPoints := b.fixtures.DealTypeMonthly
	if period == PeriodYearly {
		dealPoints = b.fixtures.DealTypeYearly
	}
	dealHTML, err := b.charts.DealType(period, dealPoints)
	if err != nil {
		return CRMPage{}, err
	}

	balanceHTML, err := b.charts.BalanceOverview(b.fixtures.Balance)
	if err != nil {
		return CRMPage{}, err
	}

	return CRMPage{
		Stats: append([]StatCard(nil), b.fixtures.Stats...),
		Sales: ChartView{
			Title:    "Sales Forecast",
			HTML:     salesHTML,
			Options:  b.salesMonths(),
			Selected: month.Month,
		},
		DealType: ChartView{
			Title:    "Deal Type",
			HTML:     dealHTML,
			Options:  []string{string(PeriodMonthly), string(PeriodYearly)},
			Selected: string(period),
		},
		Balance: ChartView{
			Title: "Balance Overview",
			HTML:  balanceHTML,
		},
		Totals: Summarize(b.fixtures.Balance),
		Deals:  append([]Deal(nil), b.fixtures.Deals...),
		Tasks: TaskListView{
			Tasks:     append([]Task(nil), b.fixtures.Tasks...),
			Remaining: RemainingTasks(b.fixtures.Tasks),
			Total:     len(b.fixtures.Tasks),
		},
	}, nil
}

func (b *Board) salesMonth(name string) (SalesMonth, bool) {
	if len(b.fixtures.Sales) == 0 {
		return SalesMonth{}, false
	}
	for _, m := range b.fixtures.Sales {
		if m.Month == name {
			return m, true
		}
	}
	return b.fixtures.Sales[0], true
}

func (b *Board) salesMonths() []string {
	out := make([]string, len(b.fixtures.Sales))
	for i, m := range b.fixtures.Sales {
		out[i] = m.Month
	}
	return out
}
