/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package trend

// Thresholds holds optional horizontal reference values layered under a
// series plot. Each field is independently optional; values in the series
// may legitimately exceed either one.
type Thresholds struct {
	Warning *float64
	Danger  *float64
}

// Insets are padding amounts, in pixels, between the canvas edge and the
// plotting area.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Point is a pixel coordinate on the drawing surface.
type Point struct {
	X float64
	Y float64
}

// Geometry is the renderable description of a chart, derived per render
// from a series, thresholds, and a canvas size. It carries everything a
// drawing surface needs and nothing it doesn't; it is never cached.
type Geometry struct {
	Width  float64
	Height float64
	Insets Insets

	// Points are the stroke polyline coordinates, one per reading,
	// evenly spaced across the plotting width.
	Points []Point

	// Fill is a closed polygon tracing bottom-left baseline, the value
	// curve left to right, then the bottom-right baseline.
	Fill []Point

	// WarningY and DangerY are pixel y positions for present thresholds.
	WarningY *float64
	DangerY  *float64

	YMin float64
	YMax float64
}

// thresholdMargin widens the y-domain around threshold values so reference
// lines never sit flush against the plot edge.
const thresholdMargin = 0.10

// Domain computes the y-axis value range for a series plus any present
// thresholds. A present threshold contributes value*(1-margin) to the lower
// bound and value*(1+margin) to the upper bound. ok is false when the
// series has no usable values.
func Domain(s Series, th Thresholds) (yMin, yMax float64, ok bool) {
	vals := s.values()
	if len(vals) == 0 {
		return 0, 0, false
	}

	yMin, yMax = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}

	for _, t := range []*float64{th.Warning, th.Danger} {
		if t == nil {
			continue
		}
		if low := *t * (1 - thresholdMargin); low < yMin {
			yMin = low
		}
		if high := *t * (1 + thresholdMargin); high > yMax {
			yMax = high
		}
	}

	return yMin, yMax, true
}

// Layout maps a series onto a pixel canvas. Reading i lands at
// x = left + (i / max(n-1, 1)) * plotWidth, so a single reading sits flush
// against the left inset. Values map linearly onto the plot height with the
// orientation flipped so larger values render higher on screen.
//
// Layout never panics: a non-positive canvas or plotting area yields a
// degenerate geometry with no points, which renderers skip.
func Layout(s Series, th Thresholds, width, height float64, in Insets) Geometry {
	g := Geometry{Width: width, Height: height, Insets: in}

	plotW := width - in.Left - in.Right
	plotH := height - in.Top - in.Bottom
	if width <= 0 || height <= 0 || plotW <= 0 || plotH <= 0 {
		return g
	}

	yMin, yMax, ok := Domain(s, th)
	if !ok {
		return g
	}
	yRange := yMax - yMin
	if yRange == 0 {
		yRange = 1
	}
	g.YMin, g.YMax = yMin, yMax

	toY := func(v float64) float64 {
		return in.Top + plotH - ((v-yMin)/yRange)*plotH
	}

	vals := s.values()
	denom := float64(len(vals) - 1)
	if denom < 1 {
		denom = 1
	}

	g.Points = make([]Point, len(vals))
	for i, v := range vals {
		g.Points[i] = Point{
			X: in.Left + (float64(i)/denom)*plotW,
			Y: toY(v),
		}
	}

	baseline := in.Top + plotH
	g.Fill = make([]Point, 0, len(g.Points)+2)
	g.Fill = append(g.Fill, Point{X: g.Points[0].X, Y: baseline})
	g.Fill = append(g.Fill, g.Points...)
	g.Fill = append(g.Fill, Point{X: g.Points[len(g.Points)-1].X, Y: baseline})

	if th.Warning != nil {
		y := toY(*th.Warning)
		g.WarningY = &y
	}
	if th.Danger != nil {
		y := toY(*th.Danger)
		g.DangerY = &y
	}

	return g
}
