/*
Package observability exports Prometheus metrics for the Arbor scheduler.

Metrics.Hooks returns a domain.LifecycleHooks value to pass to arbor.WithLifecycleHooks;
the collectors are served by the HTTP adapter on /metrics.
*/
package observability
