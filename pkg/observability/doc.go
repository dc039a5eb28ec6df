/*
Package observability turns engine lifecycle events into structured logs and
Prometheus metrics.

Both are exposed as domain.LifecycleHooks and can be combined with ComposeHooks:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.ComposeHooks(observability.LogHooks(logger), metrics.Hooks())
*/
package observability
