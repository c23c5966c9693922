// Package mcp provides an MCP (Model Context Protocol) server adapter for Askdocs.
// It lets AI assistants ask grounded questions against the local document corpus.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
