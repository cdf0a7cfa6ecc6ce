/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */

// Package trend computes summary statistics and pixel-space chart geometry
// for time-series lab readings. Everything here is a pure function of its
// inputs; callers recompute on every data or canvas change.
package trend

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Direction classifies the overall movement of a series.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// Trend classification ratios, carried over from the original dashboard.
// The second-half mean must move past the first-half mean by more than 5%
// in either direction before the series stops being "stable". These are
// deliberately tolerant of noise and have no documented clinical basis.
const (
	trendUpRatio   = 1.05
	trendDownRatio = 0.95
)

// Reading is a single observation in a series. A zero Date is valid; the
// x-axis is defined by insertion order, not timestamps.
type Reading struct {
	Value float64
	Date  time.Time
}

// Series is an ordered, chronological sequence of readings.
type Series []Reading

// Summary holds derived statistics for a series.
type Summary struct {
	Latest float64
	Min    float64
	Max    float64
	Range  float64
	Change float64
	Trend  Direction
}

// values extracts the finite reading values in order. NaN and infinite
// values stand in for missing or non-numeric readings and are dropped.
func (s Series) values() []float64 {
	vals := make([]float64, 0, len(s))
	for _, r := range s {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			continue
		}
		vals = append(vals, r.Value)
	}
	return vals
}

// Summarize computes min, max, latest, change, and trend direction for a
// series. It returns nil when the series has no usable readings, which
// callers render as an "insufficient data" state. A single-reading series
// produces a flat summary with Change 0 and a stable trend.
func Summarize(s Series) *Summary {
	vals := s.values()
	if len(vals) == 0 {
		return nil
	}

	minVal, maxVal := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	return &Summary{
		Latest: vals[len(vals)-1],
		Min:    minVal,
		Max:    maxVal,
		Range:  maxVal - minVal,
		Change: vals[len(vals)-1] - vals[0],
		Trend:  classify(vals),
	}
}

// classify compares the mean of the first half of the values against the
// mean of the second half. The split point is floor(n/2), so for odd n the
// middle element belongs to the second half. Values exactly on the 1.05 or
// 0.95 boundary classify as stable.
func classify(vals []float64) Direction {
	if len(vals) < 2 {
		return Stable
	}

	half := len(vals) / 2
	firstMean := stat.Mean(vals[:half], nil)
	secondMean := stat.Mean(vals[half:], nil)

	switch {
	case secondMean > firstMean*trendUpRatio:
		return Increasing
	case secondMean < firstMean*trendDownRatio:
		return Decreasing
	default:
		return Stable
	}
}
