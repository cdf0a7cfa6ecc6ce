/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/flamego/flamego"

	"github.com/skhalid/pulseview/upstream"
)

const upstreamProbeTimeout = 3 * time.Second

// Healthz reports liveness plus the reachability of the upstream API.
// The dashboard itself is healthy even when the upstream is not; the
// status distinguishes the two so probes can alert on either.
func Healthz(c flamego.Context, client *upstream.Client) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), upstreamProbeTimeout)
	defer cancel()

	body := map[string]string{
		"status":   "ok",
		"upstream": "ok",
	}
	code := http.StatusOK
	if err := client.Ping(ctx); err != nil {
		body["upstream"] = "unreachable"
		code = http.StatusServiceUnavailable
	}

	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
