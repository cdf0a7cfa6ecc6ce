/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/skhalid/pulseview/routes"
	"github.com/skhalid/pulseview/static"
	"github.com/skhalid/pulseview/templates"
	"github.com/skhalid/pulseview/upstream"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the dashboard web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8080",
			Usage: "the web server port",
		},
		&cli.StringFlag{
			Name:    "api-url",
			Sources: cli.EnvVars("HEALTH_API_URL"),
			Usage:   "base URL of the Health Analytics API (e.g., http://localhost:5000)",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (templates read from disk)",
		},
	},
	Action: start,
}

func start(ctx context.Context, cmd *cli.Command) error {
	apiURL := cmd.String("api-url")
	if apiURL == "" {
		return errAPIURLRequired
	}

	client := upstream.New(apiURL)

	f, err := newWeb(client, cmd.Bool("dev"))
	if err != nil {
		return err
	}

	port := cmd.String("port")
	appLogger.Info("starting web server", "port", port, "api_url", apiURL)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		Handler:      f,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv.ListenAndServe()
}

// newWeb assembles the flamego app: middleware, template loading, and all
// dashboard routes. Split out of start so tests can build the app against a
// fake upstream.
func newWeb(client *upstream.Client, dev bool) (*flamego.Flame, error) {
	f := flamego.New()

	templateOpts := template.Options{}
	if dev {
		templateOpts.Directory = "templates"
	} else {
		fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
		if err != nil {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
		templateOpts.FileSystem = fs
	}

	f.Use(routes.RequestLogger)
	f.Use(routes.NoCacheHeaders())
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer())
	f.Use(template.Templater(templateOpts))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
	}))
	f.Use(routes.CSRFInjector())
	f.Use(routes.SiteTitleInjector())
	f.Use(routes.FlashInjector())

	f.Map(client)

	f.Get("/", routes.Home)
	f.Get("/patient/{id}", routes.ViewPatient)
	f.Get("/patient/{id}/chart/{metric}", routes.ChartPNG)
	f.Get("/healthz", routes.Healthz)
	f.Get("/metrics", routes.MetricsHandler)

	return f, nil
}
