// Package cli holds the logic behind the arbor commands: one-shot builds,
// the interactive REPL, and the HTTP and MCP servers.
package cli
