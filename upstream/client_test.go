// SPDX-FileCopyrightText: 2026 Sami Khalid
// SPDX-License-Identifier: Apache-2.0

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testContext() context.Context {
	return context.Background()
}

func TestClientPatients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"patients": [{"id": 1, "name": "Pat Doe"}, {"id": 2, "name": "Lee Roe"}], "count": 2}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	patients, err := c.Patients(testContext())
	if err != nil {
		t.Fatalf("Patients failed: %v", err)
	}
	if len(patients) != 2 || patients[0].Name != "Pat Doe" {
		t.Errorf("unexpected patients: %+v", patients)
	}
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Patient(testContext(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"trends": [{"lab_type": "A1C", "unit": "%", "data": [5.8, 6.0]}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	trends, err := c.LabTrends(testContext(), 1, "A1C")
	if err != nil {
		t.Fatalf("LabTrends failed after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("got %d calls, want 3", calls.Load())
	}
	if len(trends) != 1 || trends[0].LabType != "A1C" || len(trends[0].Data) != 2 {
		t.Errorf("unexpected trends: %+v", trends)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Predictions(testContext(), 1); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Errorf("got %d calls, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestClientLabTrendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "GLUCOSE" {
			t.Errorf("type query = %q, want GLUCOSE", got)
		}
		w.Write([]byte(`{"trends": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.LabTrends(testContext(), 7, "GLUCOSE"); err != nil {
		t.Fatalf("LabTrends failed: %v", err)
	}
}

func TestClientPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status": "healthy", "version": "1.0.0"}`))
	}))
	defer srv.Close()

	if err := New(srv.URL).Ping(testContext()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestClientAnomalies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients/5/anomalies" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"anomalies": [
				{"lab_type": "A1C", "value": 8.1, "date": "2026-02-14T10:00:00", "severity": "HIGH", "description": "Outside expected range", "z_score": 2.7}
			],
			"trends": {"A1C": {"direction": "increasing", "change": 0.9, "period": "6 months"}},
			"alerts": [
				{"lab_type": "A1C", "message": "A1C well above diabetic threshold", "severity": "CRITICAL"}
			]
		}`))
	}))
	defer srv.Close()

	report, err := New(srv.URL).Anomalies(testContext(), 5)
	if err != nil {
		t.Fatalf("Anomalies failed: %v", err)
	}
	if len(report.Anomalies) != 1 || report.Anomalies[0].LabType != "A1C" {
		t.Errorf("unexpected anomalies: %+v", report.Anomalies)
	}
	if report.Anomalies[0].ZScore == nil || *report.Anomalies[0].ZScore != 2.7 {
		t.Errorf("unexpected z score: %+v", report.Anomalies[0].ZScore)
	}
	if got := report.Trends["A1C"].Direction; got != "increasing" {
		t.Errorf("trend direction = %q", got)
	}
	if len(report.Alerts) != 1 || report.Alerts[0].Severity != "CRITICAL" {
		t.Errorf("unexpected alerts: %+v", report.Alerts)
	}
}

func TestClientAnomaliesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"anomalies": [], "trends": {}, "alerts": [], "message": "No lab data available for analysis"}`))
	}))
	defer srv.Close()

	report, err := New(srv.URL).Anomalies(testContext(), 9)
	if err != nil {
		t.Fatalf("Anomalies failed: %v", err)
	}
	if len(report.Anomalies) != 0 || len(report.Alerts) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if report.Message == "" {
		t.Error("expected explanatory message")
	}
}

func TestClientDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients/3/dashboard" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"patient": {"id": 3, "name": "Pat Doe"},
			"overall_risk": {"score": 0.12, "level": "LOW", "confidence": 0.7},
			"lab_trends": {"GLUCOSE": [98, 102, {"value": 95, "date": "2026-01-10"}]}
		}`))
	}))
	defer srv.Close()

	d, err := New(srv.URL).Dashboard(testContext(), 3)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if d.Patient.Name != "Pat Doe" {
		t.Errorf("patient = %+v", d.Patient)
	}
	if len(d.LabTrends["GLUCOSE"]) != 3 {
		t.Errorf("glucose trend = %+v", d.LabTrends["GLUCOSE"])
	}
}
