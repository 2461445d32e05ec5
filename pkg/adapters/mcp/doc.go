// Package mcp exposes a Visualizer to AI agents through the Model Context Protocol.
package mcp
