// SPDX-FileCopyrightText: 2026 Sami Khalid
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/skhalid/pulseview/templates"
	"github.com/skhalid/pulseview/upstream"
)

func newPageApp(t *testing.T, upstreamHandler http.HandlerFunc) (*flamego.Flame, *httptest.Server) {
	t.Helper()

	api := httptest.NewServer(upstreamHandler)

	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		t.Fatalf("loading templates: %v", err)
	}

	f := flamego.New()
	f.Use(session.Sessioner())
	f.Use(template.Templater(template.Options{FileSystem: fs}))
	f.Use(SiteTitleInjector())
	f.Use(FlashInjector())
	f.Map(upstream.New(api.URL))
	f.Get("/", Home)
	f.Get("/patient/{id}", ViewPatient)

	return f, api
}

func TestHomeListsPatients(t *testing.T) {
	t.Parallel()

	f, api := newPageApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"patients": [
			{"id": 1, "name": "Aisha Rahman", "gender": "F", "blood_type": "O+"},
			{"id": 2, "name": "Tom Baker", "gender": "M"}
		], "count": 2}`)
	})
	defer api.Close()

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Aisha Rahman", "Tom Baker", `href="/patient/1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
}

func TestHomeUpstreamDownShowsError(t *testing.T) {
	t.Parallel()

	f, api := newPageApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	})
	defer api.Close()

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "unreachable") {
		t.Fatal("expected error banner in body")
	}
}

const dashboardFixture = `{
	"patient": {"id": 7, "name": "Aisha Rahman", "gender": "F", "blood_type": "O+"},
	"age": 54,
	"overall_risk": {"score": 0.62, "level": "HIGH", "confidence": 0.8},
	"latest_labs": {
		"A1C": {"id": 1, "lab_type": "A1C", "value": 7.5, "unit": "%", "status": "HIGH", "recorded_at": "2026-03-05T09:00:00"}
	},
	"lab_trends": {
		"A1C": [
			{"value": 6.8, "date": "2026-01-05T09:00:00"},
			{"value": 7.0, "date": "2026-02-05T09:00:00"},
			{"value": 7.5, "date": "2026-03-05T09:00:00"}
		]
	},
	"imaging": [],
	"genomics": {"variants": [], "high_risk_count": 0},
	"clinical_notes": [],
	"predictions": [
		{"id": 1, "prediction_type": "diabetes_risk", "risk_score": 0.7, "risk_level": "HIGH", "confidence": 0.85}
	],
	"recommendations": ["Schedule endocrinology follow-up"],
	"last_updated": "2026-03-06T12:00:00"
}`

const anomaliesFixture = `{
	"anomalies": [
		{"lab_type": "A1C", "value": 7.5, "date": "2026-03-05T09:00:00", "severity": "HIGH", "description": "Value above expected range", "z_score": 2.4}
	],
	"trends": {"A1C": {"direction": "increasing", "change": 0.7, "period": "3 months"}},
	"alerts": [
		{"lab_type": "A1C", "message": "A1C rising toward diabetic threshold", "severity": "HIGH"}
	]
}`

func TestViewPatientRendersDashboard(t *testing.T) {
	t.Parallel()

	f, api := newPageApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/patients/7/dashboard":
			fmt.Fprint(w, dashboardFixture)
		case "/api/patients/7/anomalies":
			fmt.Fprint(w, anomaliesFixture)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})
	defer api.Close()

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patient/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"Aisha Rahman",
		"Overall risk 62%",
		"Hemoglobin A1C",
		"/patient/7/chart/A1C?minimal=1",
		"Schedule endocrinology follow-up",
		"A1C rising toward diabetic threshold",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}

	if strings.Contains(body, "Anomaly analysis is currently unavailable") {
		t.Fatal("did not expect degraded-alerts banner")
	}
}

func TestViewPatientAnomaliesUnavailable(t *testing.T) {
	t.Parallel()

	f, api := newPageApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/patients/7/dashboard":
			fmt.Fprint(w, dashboardFixture)
		default:
			http.Error(w, "bad request", http.StatusBadRequest)
		}
	})
	defer api.Close()

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patient/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected dashboard to render despite anomaly failure, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Anomaly analysis is currently unavailable") {
		t.Fatal("expected degraded-alerts banner")
	}

	if !strings.Contains(body, "Aisha Rahman") {
		t.Fatal("expected dashboard content to render")
	}
}

func TestViewPatientNotFoundRedirectsHome(t *testing.T) {
	t.Parallel()

	f, api := newPageApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer api.Close()

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patient/99", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}

	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("expected redirect to '/', got %q", got)
	}
}

func TestViewPatientInvalidIDRedirectsHome(t *testing.T) {
	t.Parallel()

	f, api := newPageApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for an invalid id")
	})
	defer api.Close()

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patient/nope", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
}
