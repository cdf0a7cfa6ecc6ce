/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"
	"sort"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/skhalid/pulseview/render"
	"github.com/skhalid/pulseview/status"
	"github.com/skhalid/pulseview/trend"
	"github.com/skhalid/pulseview/upstream"
)

// metricEntry is one lab metric's row on the dashboard: the latest stored
// value plus derived trend statistics and chart links.
type metricEntry struct {
	Metric       string
	Label        string
	Unit         string
	Latest       *upstream.LabResult
	Summary      *trend.Summary
	BadgeClass   string
	SparklineURL string
	Selected     bool
}

// ViewPatient renders a patient's full dashboard: the overall-risk card,
// latest labs with trend summaries, the selected metric's interactive
// chart, and the imaging/genomics/notes/predictions panels.
func ViewPatient(c flamego.Context, s session.Session, client *upstream.Client, t template.Template, data template.Data) {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		SetErrorFlash(s, "Invalid patient id")
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	dashboard, err := client.Dashboard(ctx, id)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			SetErrorFlash(s, "Patient not found")
		} else {
			webLogger.Error("fetching dashboard", "patient", id, "error", err)
			SetErrorFlash(s, "Failed to load patient dashboard")
		}
		c.Redirect("/", http.StatusSeeOther)
		return
	}

	// Metrics render in a fixed order so the page is stable across fetches.
	metrics := make([]string, 0, len(dashboard.LabTrends))
	for m := range dashboard.LabTrends {
		metrics = append(metrics, m)
	}
	sort.Strings(metrics)

	selected := selectedMetric(s, id, metrics, c.Query("metric"))
	tab := activeTab(s, c.Query("tab"))

	entries := make([]metricEntry, 0, len(metrics))
	for _, m := range metrics {
		series := upstream.Series(dashboard.LabTrends[m])
		entry := metricEntry{
			Metric:       m,
			Label:        status.MetricLabel(m),
			Summary:      trend.Summarize(series),
			SparklineURL: "/patient/" + strconv.Itoa(id) + "/chart/" + m + "?minimal=1&w=140&h=40",
			Selected:     m == selected,
		}
		if latest, ok := dashboard.LatestLabs[m]; ok {
			latestCopy := latest
			entry.Latest = &latestCopy
			entry.Unit = latest.Unit
			entry.BadgeClass = latest.Status.BadgeClass()
		}
		entries = append(entries, entry)
	}

	// The selected metric gets the interactive chart.
	if selected != "" {
		series := upstream.Series(dashboard.LabTrends[selected])
		var refHigh *float64
		unit := ""
		if latest, ok := dashboard.LatestLabs[selected]; ok {
			refHigh = latest.ReferenceHigh
			unit = latest.Unit
		}
		th := status.MetricThresholds(selected, refHigh)
		chart, err := render.LineChartHTML(status.MetricLabel(selected), unit, series, th)
		if err != nil {
			webLogger.Error("building chart", "patient", id, "metric", selected, "error", err)
		} else if chart != "" {
			data["Chart"] = htmltemplate.HTML(chart)
		}
	}

	// The anomaly analysis comes from a separate endpoint; the dashboard
	// still renders when it is unavailable.
	if report, err := client.Anomalies(ctx, id); err != nil {
		webLogger.Warn("fetching anomalies", "patient", id, "error", err)
		data["AlertsUnavailable"] = true
	} else {
		alerts := make([]map[string]interface{}, 0, len(report.Alerts))
		for _, a := range report.Alerts {
			level := status.ParseRiskLevel(a.Severity)
			alerts = append(alerts, map[string]interface{}{
				"Label":      status.MetricLabel(a.LabType),
				"Message":    a.Message,
				"Severity":   level,
				"BadgeClass": level.BadgeClass(),
			})
		}
		data["Alerts"] = alerts
		data["AnomalyCount"] = len(report.Anomalies)
	}

	imaging := make([]map[string]interface{}, 0, len(dashboard.Imaging))
	for _, study := range dashboard.Imaging {
		entry := map[string]interface{}{
			"Study":      study,
			"Severity":   study.Severity(),
			"BadgeClass": study.Severity().BadgeClass(),
		}
		if study.AbnormalityScore != nil {
			entry["AbnormalityScore"] = fmt.Sprintf("%.2f", *study.AbnormalityScore)
		}
		imaging = append(imaging, entry)
	}

	predictions := make([]map[string]interface{}, 0, len(dashboard.Predictions))
	for _, p := range dashboard.Predictions {
		predictions = append(predictions, map[string]interface{}{
			"Prediction":    p,
			"Level":         p.RiskLevel(),
			"BadgeClass":    p.RiskLevel().BadgeClass(),
			"Color":         p.RiskLevel().Color(),
			"ConfidencePct": fmt.Sprintf("%.0f%%", p.Confidence*100),
		})
	}

	data["Patient"] = dashboard.Patient
	if dashboard.Age != nil {
		data["Age"] = *dashboard.Age
	}
	data["Risk"] = dashboard.OverallRisk
	data["RiskScorePct"] = fmt.Sprintf("%.0f%%", dashboard.OverallRisk.Score*100)
	data["RiskConfidencePct"] = fmt.Sprintf("%.0f%%", dashboard.OverallRisk.Confidence*100)
	data["RiskLevel"] = dashboard.OverallRisk.RiskLevel()
	data["RiskBadgeClass"] = dashboard.OverallRisk.RiskLevel().BadgeClass()
	data["RiskColor"] = dashboard.OverallRisk.RiskLevel().Color()
	data["Metrics"] = entries
	data["SelectedMetric"] = selected
	data["ActiveTab"] = tab
	data["Imaging"] = imaging
	data["Genomics"] = dashboard.Genomics
	data["Notes"] = dashboard.ClinicalNotes
	data["Predictions"] = predictions
	data["Recommendations"] = dashboard.Recommendations
	data["LastUpdated"] = dashboard.LastUpdated.Time

	t.HTML(http.StatusOK, "patient")
}
