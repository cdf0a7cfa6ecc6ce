/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"strconv"

	"github.com/flamego/session"
)

// Per-session view state: the selected metric per patient and the active
// dashboard tab. Handlers receive the resolved values as plain data; the
// session is the only place this state lives.
const (
	sessionKeyMetricPrefix = "selected_metric_"
	sessionKeyActiveTab    = "active_tab"
	defaultTab             = "overview"
)

var validTabs = map[string]bool{
	"overview": true,
	"labs":     true,
	"imaging":  true,
	"genomics": true,
	"notes":    true,
}

// selectedMetric resolves which metric the dashboard chart should show:
// an explicit request wins, then the session's remembered choice, then the
// first available metric. The resolved choice is written back so it sticks
// across navigation.
func selectedMetric(s session.Session, patientID int, available []string, requested string) string {
	if len(available) == 0 {
		return ""
	}

	key := sessionKeyMetricPrefix + strconv.Itoa(patientID)

	if requested != "" && contains(available, requested) {
		s.Set(key, requested)
		return requested
	}

	if remembered, ok := s.Get(key).(string); ok && contains(available, remembered) {
		return remembered
	}

	s.Set(key, available[0])
	return available[0]
}

// activeTab resolves the dashboard tab, remembering it in the session.
func activeTab(s session.Session, requested string) string {
	if validTabs[requested] {
		s.Set(sessionKeyActiveTab, requested)
		return requested
	}
	if remembered, ok := s.Get(sessionKeyActiveTab).(string); ok && validTabs[remembered] {
		return remembered
	}
	return defaultTab
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
