/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package render

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/skhalid/pulseview/trend"
)

// LineChartHTML builds the interactive go-echarts line chart used on the
// full dashboard page: the value series with min/max mark points and an
// average mark line, plus dashed warning/danger threshold lines. The y-axis
// range comes from the same domain computation the PNG renderer uses, so
// the two renderings always agree.
func LineChartHTML(title, unit string, s trend.Series, th trend.Thresholds) (string, error) {
	if len(s) == 0 {
		return "", nil
	}

	xAxis := make([]string, 0, len(s))
	yData := make([]opts.LineData, 0, len(s))
	for i, r := range s {
		if r.Date.IsZero() {
			xAxis = append(xAxis, fmt.Sprintf("#%d", i+1))
		} else {
			xAxis = append(xAxis, r.Date.Format("Jan 2, 2006"))
		}
		yData = append(yData, opts.LineData{Value: r.Value})
	}

	var yAxisMin, yAxisMax interface{}
	if yMin, yMax, ok := trend.Domain(s, th); ok {
		yAxisMin = yMin
		yAxisMax = yMax
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: unit,
			Min:  yAxisMin,
			Max:  yAxisMax,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
		charts.WithMarkLineNameTypeItemOpts(
			opts.MarkLineNameTypeItem{Name: "Average", Type: "average"},
		),
	}

	var markLineItems []interface{}
	if th.Warning != nil {
		markLineItems = append(markLineItems, opts.MarkLineNameYAxisItem{
			Name:  "Warning",
			YAxis: *th.Warning,
		})
	}
	if th.Danger != nil {
		markLineItems = append(markLineItems, opts.MarkLineNameYAxisItem{
			Name:  "Danger",
			YAxis: *th.Danger,
		})
	}
	if len(markLineItems) > 0 {
		// Dashed gray lines with no arrow heads.
		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLineItems,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(title, yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
