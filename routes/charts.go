/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"

	"github.com/skhalid/pulseview/render"
	"github.com/skhalid/pulseview/status"
	"github.com/skhalid/pulseview/trend"
	"github.com/skhalid/pulseview/upstream"
)

// Canvas size bounds for the PNG chart endpoint. Out-of-range requests are
// clamped rather than rejected.
const (
	minCanvasDim = 16
	maxCanvasDim = 2048

	defaultChartWidth  = 640
	defaultChartHeight = 240

	defaultSparkWidth  = 140
	defaultSparkHeight = 40
)

// chartInsets pad the plotting area inside the canvas.
var (
	fullInsets    = trend.Insets{Top: 24, Right: 12, Bottom: 28, Left: 48}
	minimalInsets = trend.Insets{Top: 4, Right: 4, Bottom: 4, Left: 4}
)

// ChartPNG serves the rendered line chart for one patient metric.
// Query parameters: w and h (canvas size, clamped), minimal (sparkline
// mode), color (stroke hex). Degenerate sizes or an empty series produce a
// blank image, never an error page.
func ChartPNG(c flamego.Context, client *upstream.Client) {
	ctx := c.Request().Context()
	w := c.ResponseWriter()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	metric := c.Param("metric")
	if metric == "" {
		http.Error(w, "missing metric", http.StatusBadRequest)
		return
	}

	minimal := c.Query("minimal") == "1" || c.Query("minimal") == "true"

	defW, defH := defaultChartWidth, defaultChartHeight
	insets := fullInsets
	if minimal {
		defW, defH = defaultSparkWidth, defaultSparkHeight
		insets = minimalInsets
	}
	width := clampDim(c.QueryInt("w"), defW)
	height := clampDim(c.QueryInt("h"), defH)

	trends, err := client.LabTrends(ctx, id, metric)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			http.NotFound(w, c.Request().Request)
			return
		}
		webLogger.Error("fetching lab trend", "patient", id, "metric", metric, "error", err)
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}

	var series trend.Series
	var thresholds trend.Thresholds
	unit := ""
	if len(trends) > 0 {
		series = trends[0].Series()
		thresholds = trends[0].Thresholds()
		unit = trends[0].Unit
	}

	geom := trend.Layout(series, thresholds, float64(width), float64(height), insets)
	sum := trend.Summarize(series)

	header := w.Header()
	header.Set("Content-Type", "image/png")
	header.Set("Cache-Control", "no-store, max-age=0")

	opts := render.Options{
		Stroke:  strokeColor(c.Query("color")),
		Minimal: minimal,
		Label:   status.MetricLabel(metric),
		Unit:    unit,
	}
	if err := render.WriteChart(w, geom, sum, opts); err != nil {
		webLogger.Error("encoding chart", "patient", id, "metric", metric, "error", err)
	}
}

func clampDim(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	if v < minCanvasDim {
		return minCanvasDim
	}
	if v > maxCanvasDim {
		return maxCanvasDim
	}
	return v
}

// strokeColor validates a user-supplied hex color, falling back to the
// default palette entry.
func strokeColor(s string) string {
	if len(s) == 7 && s[0] == '#' {
		for _, r := range s[1:] {
			switch {
			case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			default:
				return render.DefaultStroke
			}
		}
		return s
	}
	return render.DefaultStroke
}
