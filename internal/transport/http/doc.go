// Package http provides the HTTP transport layer: chi handlers that
// expose the pipeline's analytics artifacts over a small read-only API,
// plus the router that wires them behind the middleware chain.
package http
