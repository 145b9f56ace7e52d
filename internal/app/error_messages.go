// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings the note backend writes into
// error response bodies.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidLoginPassword is returned for an unknown login and for a
	// wrong password alike.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgFailedToReadBody is returned when the request body cannot be read.
	MsgFailedToReadBody = "failed to read request body"

	// MsgInvalidGzip is returned for a gzip-encoded body that does not
	// inflate.
	MsgInvalidGzip = "invalid gzip data"

	// MsgRecordIDMismatch is returned when the id in an update body differs
	// from the one in the path.
	MsgRecordIDMismatch = "record id does not match the path"

	// MsgUnavailable is returned by the health endpoint while a dependency
	// is down.
	MsgUnavailable = "unavailable"
)
