// Package delivery defines the contract every inbound transport
// (HTTP today, workers tomorrow) fulfils so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running inbound server.
type Delivery interface {
	// Serve blocks until the server stops or the context is cancelled.
	Serve(ctx context.Context) error
}
