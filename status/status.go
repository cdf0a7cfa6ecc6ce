/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */

// Package status defines the closed enums used across the dashboard (risk
// levels, lab result statuses, imaging severities) and their presentation
// mappings. Everything is a total lookup over a fixed set; unknown inputs
// fall back to a neutral entry instead of failing.
package status

import "strings"

// RiskLevel is the upstream model's risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// ParseRiskLevel normalizes an upstream risk level string. Unrecognized
// values map to RiskLow, matching the upstream default.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskModerate:
		return RiskModerate
	case RiskHigh:
		return RiskHigh
	case RiskCritical:
		return RiskCritical
	default:
		return RiskLow
	}
}

var riskColors = map[RiskLevel]string{
	RiskLow:      "#22c55e",
	RiskModerate: "#f59e0b",
	RiskHigh:     "#ef4444",
	RiskCritical: "#b91c1c",
}

var riskBadgeClasses = map[RiskLevel]string{
	RiskLow:      "badge-low",
	RiskModerate: "badge-moderate",
	RiskHigh:     "badge-high",
	RiskCritical: "badge-critical",
}

// Color returns the hex color used for the risk level.
func (r RiskLevel) Color() string {
	if c, ok := riskColors[r]; ok {
		return c
	}
	return riskColors[RiskLow]
}

// BadgeClass returns the CSS class for a risk badge.
func (r RiskLevel) BadgeClass() string {
	if c, ok := riskBadgeClasses[r]; ok {
		return c
	}
	return riskBadgeClasses[RiskLow]
}

// LabStatus is the upstream classification of one lab result against its
// reference range.
type LabStatus string

const (
	LabNormal   LabStatus = "NORMAL"
	LabLow      LabStatus = "LOW"
	LabHigh     LabStatus = "HIGH"
	LabCritical LabStatus = "CRITICAL"
)

var labBadgeClasses = map[LabStatus]string{
	LabNormal:   "badge-normal",
	LabLow:      "badge-abnormal",
	LabHigh:     "badge-abnormal",
	LabCritical: "badge-critical",
}

// BadgeClass returns the CSS class for a lab status badge.
func (s LabStatus) BadgeClass() string {
	if c, ok := labBadgeClasses[LabStatus(strings.ToUpper(string(s)))]; ok {
		return c
	}
	return labBadgeClasses[LabNormal]
}

// Severity is an imaging finding severity bucket.
type Severity string

const (
	SeverityNormal   Severity = "NORMAL"
	SeverityLow      Severity = "LOW"
	SeverityModerate Severity = "MODERATE"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Imaging abnormality-score cutoffs, carried over from the original
// classifier. Scores below the moderate cutoff read as normal studies;
// scores past the high cutoff surface additional findings.
const (
	AbnormalityModerateCutoff = 0.3
	AbnormalityHighCutoff     = 0.6
)

// SeverityFromScore buckets an imaging abnormality score (0..1).
func SeverityFromScore(score float64) Severity {
	switch {
	case score < AbnormalityModerateCutoff:
		return SeverityNormal
	case score < AbnormalityHighCutoff:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}

var severityBadgeClasses = map[Severity]string{
	SeverityNormal:   "badge-normal",
	SeverityLow:      "badge-low",
	SeverityModerate: "badge-moderate",
	SeverityHigh:     "badge-high",
	SeverityCritical: "badge-critical",
}

// BadgeClass returns the CSS class for an imaging severity badge.
func (s Severity) BadgeClass() string {
	if c, ok := severityBadgeClasses[s]; ok {
		return c
	}
	return severityBadgeClasses[SeverityNormal]
}
