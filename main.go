/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/skhalid/pulseview/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "pulseview",
		Usage: "PulseView - Health Analytics Dashboard",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdChart,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
