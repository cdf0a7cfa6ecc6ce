/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package upstream

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/skhalid/pulseview/status"
	"github.com/skhalid/pulseview/trend"
)

// apiTimeLayouts are the timestamp formats the upstream API emits. The API
// serializes naive UTC datetimes, so RFC 3339 is tried first and the
// zone-less variants after it.
var apiTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// APITime is a time.Time that tolerates the upstream API's zone-less
// ISO 8601 timestamps.
type APITime struct {
	time.Time
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range apiTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// Patient is the upstream demographic record.
type Patient struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	DateOfBirth      string  `json:"date_of_birth"`
	Gender           string  `json:"gender"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	EmergencyContact string  `json:"emergency_contact"`
	BloodType        string  `json:"blood_type"`
	CreatedAt        APITime `json:"created_at"`
}

// OverallRisk is the fused risk headline for a patient.
type OverallRisk struct {
	Score      float64 `json:"score"`
	Level      string  `json:"level"`
	Confidence float64 `json:"confidence"`
}

// RiskLevel returns the typed risk level for the headline.
func (r OverallRisk) RiskLevel() status.RiskLevel {
	return status.ParseRiskLevel(r.Level)
}

// TrendPoint is one reading in a lab trend. The upstream API emits either a
// bare number or a {value, date, status} object; both decode into the same
// shape. A missing or null value leaves Value nil.
type TrendPoint struct {
	Value  *float64
	Date   APITime
	Status string
}

func (p *TrendPoint) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		// Bare numeric reading.
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		p.Value = &v
		return nil
	}

	var obj struct {
		Value  *float64 `json:"value"`
		Date   APITime  `json:"date"`
		Status string   `json:"status"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	p.Value = obj.Value
	p.Date = obj.Date
	p.Status = obj.Status
	return nil
}

// Series converts trend points into an engine series, preserving order.
// Points without a usable value become NaN readings, which the engine
// filters before computing anything.
func Series(points []TrendPoint) trend.Series {
	s := make(trend.Series, len(points))
	for i, p := range points {
		value := math.NaN()
		if p.Value != nil {
			value = *p.Value
		}
		s[i] = trend.Reading{Value: value, Date: p.Date.Time}
	}
	return s
}

// LabTrend is one metric's charting payload from /labs/trends.
type LabTrend struct {
	LabType       string       `json:"lab_type"`
	Unit          string       `json:"unit"`
	ReferenceLow  *float64     `json:"reference_low"`
	ReferenceHigh *float64     `json:"reference_high"`
	Data          []TrendPoint `json:"data"`
}

// Series returns the trend's readings as an engine series.
func (t LabTrend) Series() trend.Series {
	return Series(t.Data)
}

// Thresholds returns the chart bands for this metric.
func (t LabTrend) Thresholds() trend.Thresholds {
	return status.MetricThresholds(t.LabType, t.ReferenceHigh)
}

// LabResult is a single stored lab value.
type LabResult struct {
	ID            int              `json:"id"`
	PatientID     int              `json:"patient_id"`
	LabType       string           `json:"lab_type"`
	Value         float64          `json:"value"`
	Unit          string           `json:"unit"`
	ReferenceLow  *float64         `json:"reference_low"`
	ReferenceHigh *float64         `json:"reference_high"`
	Status        status.LabStatus `json:"status"`
	RecordedAt    APITime          `json:"recorded_at"`
}

// ImagingStudy is a summarized imaging record.
type ImagingStudy struct {
	ID               int             `json:"id"`
	Modality         string          `json:"modality"`
	BodyPart         string          `json:"body_part"`
	Findings         json.RawMessage `json:"findings"`
	AbnormalityScore *float64        `json:"abnormality_score"`
	StudyDate        APITime         `json:"study_date"`
}

// Severity buckets the study's abnormality score.
func (s ImagingStudy) Severity() status.Severity {
	if s.AbnormalityScore == nil {
		return status.SeverityNormal
	}
	return status.SeverityFromScore(*s.AbnormalityScore)
}

// GenomicVariant is one classified variant.
type GenomicVariant struct {
	ID                   int      `json:"id"`
	Gene                 string   `json:"gene"`
	Variant              string   `json:"variant"`
	Chromosome           string   `json:"chromosome"`
	Position             int64    `json:"position"`
	Classification       string   `json:"classification"`
	PathogenicityScore   *float64 `json:"pathogenicity_score"`
	AssociatedConditions []string `json:"associated_conditions"`
}

// GenomicsSummary groups a patient's variants.
type GenomicsSummary struct {
	Variants      []GenomicVariant `json:"variants"`
	HighRiskCount int              `json:"high_risk_count"`
}

// ClinicalNote is an NLP-processed clinical note.
type ClinicalNote struct {
	ID             int      `json:"id"`
	NoteType       string   `json:"note_type"`
	Content        string   `json:"content"`
	Conditions     []string `json:"conditions"`
	Medications    []string `json:"medications"`
	Symptoms       []string `json:"symptoms"`
	SentimentScore *float64 `json:"sentiment_score"`
	NoteDate       APITime  `json:"note_date"`
}

// Prediction is one stored model output.
type Prediction struct {
	ID              int      `json:"id"`
	PredictionType  string   `json:"prediction_type"`
	RiskScore       float64  `json:"risk_score"`
	RiskLevelRaw    string   `json:"risk_level"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
	ModalitiesUsed  []string `json:"modalities_used"`
	ModelVersion    string   `json:"model_version"`
	CreatedAt       APITime  `json:"created_at"`
}

// RiskLevel returns the typed risk level for the prediction.
func (p Prediction) RiskLevel() status.RiskLevel {
	return status.ParseRiskLevel(p.RiskLevelRaw)
}

// Dashboard is the aggregated payload behind a patient's dashboard view.
type Dashboard struct {
	Patient         Patient                 `json:"patient"`
	Age             *int                    `json:"age"`
	OverallRisk     OverallRisk             `json:"overall_risk"`
	LatestLabs      map[string]LabResult    `json:"latest_labs"`
	LabTrends       map[string][]TrendPoint `json:"lab_trends"`
	Imaging         []ImagingStudy          `json:"imaging"`
	Genomics        GenomicsSummary         `json:"genomics"`
	ClinicalNotes   []ClinicalNote          `json:"clinical_notes"`
	Predictions     []Prediction            `json:"predictions"`
	Recommendations []string                `json:"recommendations"`
	LastUpdated     APITime                 `json:"last_updated"`
}

// Anomaly is one flagged lab reading from the anomaly endpoint.
type Anomaly struct {
	LabType     string   `json:"lab_type"`
	Value       float64  `json:"value"`
	Date        APITime  `json:"date"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	ZScore      *float64 `json:"z_score"`
}

// Alert is an actionable warning derived from anomalies.
type Alert struct {
	LabType  string `json:"lab_type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// TrendAnalysis is the upstream's own per-metric direction estimate.
type TrendAnalysis struct {
	Direction string  `json:"direction"`
	Change    float64 `json:"change"`
	Period    string  `json:"period"`
}

// AnomalyReport is the payload of /patients/{id}/anomalies.
type AnomalyReport struct {
	Anomalies []Anomaly                `json:"anomalies"`
	Trends    map[string]TrendAnalysis `json:"trends"`
	Alerts    []Alert                  `json:"alerts"`
	Message   string                   `json:"message"`
}
