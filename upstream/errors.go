/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package upstream

import "errors"

// ErrNotFound is returned when the API has no record for the requested
// resource. Callers render a not-found page rather than an error state.
var ErrNotFound = errors.New("upstream resource not found")
