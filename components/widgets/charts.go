package widgets

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "350px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// Period selects the deal-type radar data set.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod falls back to monthly for unknown values.
func ParsePeriod(value string) Period {
	if strings.EqualFold(strings.TrimSpace(value), string(PeriodYearly)) {
		return PeriodYearly
	}
	return PeriodMonthly
}

// ChartRenderer renders server-side ECharts markup for the CRM charts.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartOption customizes the renderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache; nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with a shared five-minute cache unless overridden.
func NewChartRenderer(opts ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// SalesForecast renders goal/pending/revenue bars for one month.
func (r *ChartRenderer) SalesForecast(month SalesMonth) (string, error) {
	return r.cached("sales", month, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions("Sales Forecast", month.Month)...)
		bar.SetXAxis([]string{month.Month})
		bar.AddSeries("Goal", []opts.BarData{{Name: "Goal", Value: month.Goal}})
		bar.AddSeries("Pending Forecast", []opts.BarData{{Name: "Pending Forecast", Value: month.Pending}})
		bar.AddSeries("Revenue", []opts.BarData{{Name: "Revenue", Value: month.Revenue}})
		return renderChart(bar)
	})
}

// BalanceOverview renders monthly revenue and expenses lines.
func (r *ChartRenderer) BalanceOverview(points []BalancePoint) (string, error) {
	return r.cached("balance", points, func() (string, error) {
		months := make([]string, len(points))
		revenue := make([]opts.LineData, len(points))
		expenses := make([]opts.LineData, len(points))
		for i, p := range points {
			months[i] = p.Month
			revenue[i] = opts.LineData{Name: p.Month, Value: p.Revenue}
			expenses[i] = opts.LineData{Name: p.Month, Value: p.Expenses}
		}
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions("Balance Overview", "")...)
		line.SetXAxis(months)
		line.AddSeries("Revenue", revenue)
		line.AddSeries("Expenses", expenses)
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// DealType renders the pending/loss/won radar.
func (r *ChartRenderer) DealType(period Period, points []DealTypePoint) (string, error) {
	key := struct {
		Period Period
		Points []DealTypePoint
	}{period, points}
	return r.cached("deal_type", key, func() (string, error) {
		indicators := make([]*opts.Indicator, len(points))
		pending := make([]float64, len(points))
		loss := make([]float64, len(points))
		won := make([]float64, len(points))
		for i, p := range points {
			indicators[i] = &opts.Indicator{Name: p.Label, Max: 100}
			pending[i] = p.Pending
			loss[i] = p.Loss
			won[i] = p.Won
		}
		radar := charts.NewRadar()
		radar.SetGlobalOptions(append(
			r.globalOptions("Deal Type", string(period)),
			charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
		)...)
		radar.AddSeries("Pending", []opts.RadarData{{Name: "Pending", Value: pending}})
		radar.AddSeries("Loss", []opts.RadarData{{Name: "Loss", Value: loss}})
		radar.AddSeries("Won", []opts.RadarData{{Name: "Won", Value: won}})
		return renderChart(radar)
	})
}

func (r *ChartRenderer) cached(kind string, input any, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", kind, r.theme, r.assetsHost, inputHash(input))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("widgets: render chart: %w", err)
	}
	return buf.String(), nil
}
