/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/skhalid/pulseview/logging"

var appLogger = logging.Logger(logging.SourceApp)
