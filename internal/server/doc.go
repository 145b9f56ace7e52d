// Package server runs the HTTP transport of the note backend and shuts it
// down gracefully on SIGTERM, SIGINT or SIGQUIT.
package server
