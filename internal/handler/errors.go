// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoListenAddress is returned by NewHandlers when the server has no HTTP
// address to mount the routes on.
var errNoListenAddress = errors.New("handler: server http address is empty")
