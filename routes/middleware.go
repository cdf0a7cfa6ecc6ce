/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"
	"github.com/google/uuid"

	"github.com/skhalid/pulseview/logging"
)

var requestLogger = logging.Logger(logging.SourceWebRequest)

// CSRFInjector automatically injects CSRF token into template data for all routes
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// NoCacheHeaders disables caching for all page responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// RequestLogger tags each request with an id, logs timing metadata, and
// records the Prometheus request metrics.
func RequestLogger(c flamego.Context) {
	start := time.Now()
	requestID := uuid.NewString()
	c.ResponseWriter().Header().Set("X-Request-ID", requestID)

	c.Next()

	status := c.ResponseWriter().Status()
	if status == 0 {
		status = http.StatusOK
	}

	observeRequest(c.Request().Method, status, time.Since(start))

	requestLogger.Info("request",
		"event", "request",
		"request_id", requestID,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"ip", clientIP(c.Request()),
		"user_agent", c.Request().UserAgent(),
	)
}

// clientIP prefers the first X-Forwarded-For hop over the socket address.
func clientIP(r *flamego.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
