/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"os"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
)

const (
	defaultSiteTitle = "PulseView"
	siteTitleEnvVar  = "PULSEVIEW_SITE_TITLE"
)

// SiteTitleInjector places the configured site title in template data.
func SiteTitleInjector() flamego.Handler {
	return func(data template.Data) {
		title := strings.TrimSpace(os.Getenv(siteTitleEnvVar))
		if title == "" {
			title = defaultSiteTitle
		}
		data["SiteTitle"] = title
	}
}

// FlashInjector moves any pending flash message into template data.
func FlashInjector() flamego.Handler {
	return func(f session.Flash, data template.Data) {
		if msg, ok := f.(FlashMessage); ok {
			data["Flash"] = msg
		}
	}
}
