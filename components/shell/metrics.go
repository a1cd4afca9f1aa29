package shell

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusTelemetry counts shell events per event name.
type PrometheusTelemetry struct {
	events *prometheus.CounterVec
	groups *prometheus.CounterVec
}

// NewPrometheusTelemetry registers the shell counters with reg (default registerer when nil).
func NewPrometheusTelemetry(reg prometheus.Registerer) *PrometheusTelemetry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_shell_events_total",
		Help: "Shell state events by name.",
	}, []string{"event"})
	groups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_shell_group_toggles_total",
		Help: "Group header toggles by group label and outcome.",
	}, []string{"group", "applied"})
	reg.MustRegister(events, groups)
	return &PrometheusTelemetry{events: events, groups: groups}
}

// Record increments the event counter, plus the group counter for group toggles.
func (p *PrometheusTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	p.events.WithLabelValues(event).Inc()
	if event != EventGroupToggled {
		return
	}
	label, _ := payload["group"].(string)
	applied := "false"
	if ok, _ := payload["applied"].(bool); ok {
		applied = "true"
	}
	p.groups.WithLabelValues(label, applied).Inc()
}

// RegisterSessionGauge exposes count as the mounted sessions gauge.
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "admin_shell_sessions",
		Help: "Mounted shell sessions.",
	}, func() float64 { return float64(count()) })
	return reg.Register(gauge)
}

// MetricsHandler serves metrics gathered from reg (default gatherer when nil).
func MetricsHandler(reg prometheus.Gatherer) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
