/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */

// Package render turns chart geometry into drawable output. The geometry
// math lives in the trend package; this package only issues draw calls.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/fogleman/gg"

	"github.com/skhalid/pulseview/trend"
)

// Default chart palette.
const (
	DefaultStroke = "#3b82f6"
	warningColor  = "#f59e0b"
	dangerColor   = "#ef4444"
)

// Options controls PNG chart appearance. Minimal mode draws the same
// geometry but suppresses the chrome (labels and the stat footer); the
// underlying statistics and coordinates are identical in both modes.
type Options struct {
	Stroke  string
	Minimal bool
	Label   string
	Unit    string
}

// Chart draws a geometry onto a fresh canvas and returns the image.
// A degenerate geometry (no points) yields a blank canvas of at least one
// pixel; no draw calls are issued for it.
func Chart(g trend.Geometry, sum *trend.Summary, opts Options) image.Image {
	w, h := int(g.Width), int(g.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	dc.SetRGBA(1, 1, 1, 1)
	dc.Clear()

	if len(g.Points) == 0 {
		return dc.Image()
	}

	stroke := opts.Stroke
	if stroke == "" {
		stroke = DefaultStroke
	}

	drawThresholds(dc, g)
	drawFill(dc, g, stroke)
	drawStroke(dc, g, stroke)
	drawMarkers(dc, g, stroke)

	if !opts.Minimal {
		drawChrome(dc, g, sum, opts)
	}

	return dc.Image()
}

// WriteChart encodes the chart as PNG.
func WriteChart(w io.Writer, g trend.Geometry, sum *trend.Summary, opts Options) error {
	return png.Encode(w, Chart(g, sum, opts))
}

// drawThresholds draws dashed horizontal reference lines under the plot.
func drawThresholds(dc *gg.Context, g trend.Geometry) {
	left := g.Insets.Left
	right := g.Width - g.Insets.Right

	line := func(y float64, hex string) {
		dc.SetHexColor(hex)
		dc.SetLineWidth(1)
		dc.SetDash(4, 3)
		dc.DrawLine(left, y, right, y)
		dc.Stroke()
		dc.SetDash()
	}

	if g.WarningY != nil {
		line(*g.WarningY, warningColor)
	}
	if g.DangerY != nil {
		line(*g.DangerY, dangerColor)
	}
}

// drawFill paints the baseline-to-curve polygon with a vertical gradient
// fading to transparent at the baseline.
func drawFill(dc *gg.Context, g trend.Geometry, stroke string) {
	if len(g.Fill) < 3 {
		return
	}

	top := g.Insets.Top
	baseline := g.Height - g.Insets.Bottom

	c := parseHex(stroke)
	grad := gg.NewLinearGradient(0, top, 0, baseline)
	grad.AddColorStop(0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 90})
	grad.AddColorStop(1, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0})

	dc.MoveTo(g.Fill[0].X, g.Fill[0].Y)
	for _, p := range g.Fill[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetFillStyle(grad)
	dc.Fill()
}

func drawStroke(dc *gg.Context, g trend.Geometry, stroke string) {
	dc.MoveTo(g.Points[0].X, g.Points[0].Y)
	for _, p := range g.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.SetHexColor(stroke)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawMarkers(dc *gg.Context, g trend.Geometry, stroke string) {
	dc.SetHexColor(stroke)
	for _, p := range g.Points {
		dc.DrawCircle(p.X, p.Y, 3)
		dc.Fill()
	}
}

// drawChrome adds the axis labels and the stat footer around the plot.
func drawChrome(dc *gg.Context, g trend.Geometry, sum *trend.Summary, opts Options) {
	dc.SetHexColor("#475569")

	if opts.Label != "" {
		dc.DrawStringAnchored(opts.Label, g.Insets.Left, g.Insets.Top/2, 0, 0.5)
	}

	dc.DrawStringAnchored(fmt.Sprintf("%.4g", g.YMax), g.Insets.Left-4, g.Insets.Top, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.4g", g.YMin), g.Insets.Left-4, g.Height-g.Insets.Bottom, 1, 0.5)

	if sum != nil {
		footer := fmt.Sprintf("latest %.4g", sum.Latest)
		if opts.Unit != "" {
			footer += " " + opts.Unit
		}
		footer += fmt.Sprintf("  %+.4g (%s)", sum.Change, sum.Trend)
		dc.DrawStringAnchored(footer, g.Insets.Left, g.Height-g.Insets.Bottom/2, 0, 0.5)
	}
}

// parseHex reads a #rrggbb color, falling back to the default stroke blue.
func parseHex(s string) color.NRGBA {
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
}
