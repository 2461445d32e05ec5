/*
Package http exposes a Visualizer over HTTP.

The API is described by the embedded openapi.yaml (served on /openapi.yaml and
validated with kin-openapi). Animations are pushed to browsers as server-sent
events on /events: wire StreamManager.Publish to an event.Adapter and pass the
adapter to the Visualizer as its renderer and sinks.
*/
package http
