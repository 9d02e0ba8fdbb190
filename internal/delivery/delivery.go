// Package delivery defines what every inbound transport exposes to the process.
package delivery

import "context"

// Delivery is a long-running inbound transport started by the application.
type Delivery interface {
	// Serve blocks until the transport stops. A graceful shutdown is not an error.
	Serve(ctx context.Context) error
}
