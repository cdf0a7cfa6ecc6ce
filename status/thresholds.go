/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package status

import "github.com/skhalid/pulseview/trend"

// metricThresholds holds the warning/danger chart bands per lab metric.
// These mirror the clinical cutoffs baked into the upstream risk models
// (A1C prediabetic/diabetic, ATP-III lipid cutoffs, hypertension stages);
// they are display bands, not validity bounds on the data.
var metricThresholds = map[string]trend.Thresholds{
	"A1C":           {Warning: f(5.7), Danger: f(6.5)},
	"GLUCOSE":       {Warning: f(100), Danger: f(126)},
	"LDL":           {Warning: f(130), Danger: f(160)},
	"HDL":           {Warning: f(40)},
	"TRIGLYCERIDES": {Warning: f(150), Danger: f(200)},
	"BP_SYSTOLIC":   {Warning: f(130), Danger: f(140)},
	"BP_DIASTOLIC":  {Warning: f(80), Danger: f(90)},
}

func f(v float64) *float64 {
	return &v
}

// MetricThresholds returns the chart bands for a lab metric. For metrics
// without a known band, the upstream reference high (when present) serves
// as the warning line so the chart still carries context.
func MetricThresholds(labType string, referenceHigh *float64) trend.Thresholds {
	if th, ok := metricThresholds[labType]; ok {
		return th
	}
	return trend.Thresholds{Warning: referenceHigh}
}

// MetricLabels maps lab metric identifiers to display names.
var metricLabels = map[string]string{
	"A1C":           "Hemoglobin A1C",
	"GLUCOSE":       "Fasting Glucose",
	"LDL":           "LDL Cholesterol",
	"HDL":           "HDL Cholesterol",
	"TRIGLYCERIDES": "Triglycerides",
	"BP_SYSTOLIC":   "Systolic Blood Pressure",
	"BP_DIASTOLIC":  "Diastolic Blood Pressure",
}

// MetricLabel returns the display name for a lab metric, falling back to
// the raw identifier.
func MetricLabel(labType string) string {
	if l, ok := metricLabels[labType]; ok {
		return l
	}
	return labType
}
