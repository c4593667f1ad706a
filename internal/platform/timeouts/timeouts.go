// Package timeouts defines shared timeout constants for the storefront
// HTTP surface and its background work.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write caps how long a response may take to write. It must exceed the mock
// payment delay so checkout responses are not cut off.
const Write = 30 * time.Second

// Idle bounds keep-alive connections between requests.
const Idle = 2 * time.Minute

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Sweep caps a single maintenance pass.
const Sweep = 30 * time.Second
