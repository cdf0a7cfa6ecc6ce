/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skhalid/pulseview/render"
	"github.com/skhalid/pulseview/status"
	"github.com/skhalid/pulseview/trend"
	"github.com/skhalid/pulseview/upstream"
)

var CmdChart = &cli.Command{
	Name:  "chart",
	Usage: "Render a lab trend chart PNG from a saved API payload",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "path to a JSON file holding a /labs/trends response",
		},
		&cli.StringFlag{
			Name:  "output",
			Value: "chart.png",
			Usage: "path of the PNG file to write",
		},
		&cli.StringFlag{
			Name:  "metric",
			Usage: "lab type to render (defaults to the first trend in the file)",
		},
		&cli.IntFlag{
			Name:  "width",
			Value: 640,
			Usage: "canvas width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: 240,
			Usage: "canvas height in pixels",
		},
	},
	Action: chart,
}

var chartInsets = trend.Insets{Top: 24, Right: 12, Bottom: 28, Left: 48}

func chart(ctx context.Context, cmd *cli.Command) error {
	input := cmd.String("input")
	if input == "" {
		return errInputRequired
	}

	lab, err := loadTrend(input, cmd.String("metric"))
	if err != nil {
		return err
	}

	series := lab.Series()
	geom := trend.Layout(series, lab.Thresholds(),
		float64(cmd.Int("width")), float64(cmd.Int("height")), chartInsets)

	out, err := os.Create(cmd.String("output"))
	if err != nil {
		return err
	}
	defer out.Close()

	opts := render.Options{
		Stroke: render.DefaultStroke,
		Label:  status.MetricLabel(lab.LabType),
		Unit:   lab.Unit,
	}
	if err := render.WriteChart(out, geom, trend.Summarize(series), opts); err != nil {
		return err
	}

	appLogger.Info("chart written", "output", cmd.String("output"), "metric", lab.LabType, "points", len(lab.Data))

	return nil
}

// loadTrend reads a saved /labs/trends payload and picks one metric from
// it. An empty metric selects the first trend in the file.
func loadTrend(path, metric string) (*upstream.LabTrend, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Trends []upstream.LabTrend `json:"trends"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(payload.Trends) == 0 {
		return nil, fmt.Errorf("%s holds no trends", path)
	}

	if metric == "" {
		return &payload.Trends[0], nil
	}
	for i := range payload.Trends {
		if payload.Trends[i].LabType == metric {
			return &payload.Trends[i], nil
		}
	}
	return nil, fmt.Errorf("metric %q not found in %s", metric, path)
}
