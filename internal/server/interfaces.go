package server

import "context"

// Server defines the lifecycle of the backend transport.
type Server interface {
	// RunServer serves until a stop signal arrives.
	RunServer()

	// Run serves until ctx is done, then shuts down gracefully.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
