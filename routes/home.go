/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/skhalid/pulseview/logging"
	"github.com/skhalid/pulseview/upstream"
)

var webLogger = logging.Logger(logging.SourceWeb)

// Home renders the patient list.
func Home(c flamego.Context, client *upstream.Client, t template.Template, data template.Data) {
	ctx := c.Request().Context()

	patients, err := client.Patients(ctx)
	if err != nil {
		webLogger.Error("fetching patients", "error", err)
		data["Error"] = "The Health Analytics API is unreachable"
	} else {
		data["Patients"] = patients
		data["PatientCount"] = len(patients)
	}

	data["IsHome"] = true
	t.HTML(http.StatusOK, "home")
}
