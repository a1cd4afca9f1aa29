package widgets

import "fmt"

// TotalRevenue sums revenue over the balance points.
func TotalRevenue(points []BalancePoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Revenue
	}
	return total
}

// TotalExpenses sums expenses over the balance points.
func TotalExpenses(points []BalancePoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Expenses
	}
	return total
}

// ProfitRatio is (revenue-expenses)/revenue as a percentage; 100 with no expenses, 0 with no revenue.
func ProfitRatio(points []BalancePoint) float64 {
	revenue := TotalRevenue(points)
	expenses := TotalExpenses(points)
	if expenses <= 0 {
		return 100
	}
	if revenue == 0 {
		return 0
	}
	return (revenue - expenses) / revenue * 100
}

// RemainingTasks counts tasks not yet completed.
func RemainingTasks(tasks []Task) int {
	remaining := 0
	for _, task := range tasks {
		if !task.Completed {
			remaining++
		}
	}
	return remaining
}

// BalanceSummary is the totals row under the balance chart.
type BalanceSummary struct {
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	ProfitRatio float64 `json:"profit_ratio"`
}

// Summarize computes the balance totals.
func Summarize(points []BalancePoint) BalanceSummary {
	return BalanceSummary{
		Revenue:     TotalRevenue(points),
		Expenses:    TotalExpenses(points),
		ProfitRatio: ProfitRatio(points),
	}
}

// FormatThousands renders 584000 as "$584k".
func FormatThousands(value float64) string {
	return fmt.Sprintf("$%.0fk", value/1000)
}

// FormatPercent renders a ratio with one decimal.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
