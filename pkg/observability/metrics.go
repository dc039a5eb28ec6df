package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the dialogue engine.
type Metrics struct {
	Turns            *prometheus.CounterVec
	Routes           *prometheus.CounterVec
	Actions          *prometheus.CounterVec
	OrdersPlaced     prometheus.Counter
	ReasonerDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabot_turns_total",
				Help: "Total number of turns appended to conversations",
			},
			[]string{"role"},
		),
		Routes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabot_routes_total",
				Help: "Total number of routing decisions",
			},
			[]string{"route"},
		),
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baristabot_actions_total",
				Help: "Total number of executed actions",
			},
			[]string{"action", "outcome"},
		),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "baristabot_orders_placed_total",
			Help: "Total number of orders handed to fulfillment",
		}),
		ReasonerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "baristabot_reasoner_duration_seconds",
			Help:    "Latency of Reasoner calls",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Turns, m.Routes, m.Actions, m.OrdersPlaced, m.ReasonerDuration)
	return m
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			m.Turns.WithLabelValues(string(e.Role)).Inc()
			if e.Role == domain.RoleAssistant {
				m.ReasonerDuration.Observe(e.Latency.Seconds())
			}
		},
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			m.Routes.WithLabelValues(string(e.Route)).Inc()
		},
		OnActionReturn: func(ctx context.Context, e *domain.ActionEvent) {
			outcome := "ok"
			if e.IsError {
				outcome = "error"
			}
			m.Actions.WithLabelValues(e.Name, outcome).Inc()
		},
		OnOrderPlaced: func(ctx context.Context, e *domain.OrderEvent) {
			m.OrdersPlaced.Inc()
		},
	}
}

// Handler serves the metrics gathered by g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
