/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errAPIURLRequired = errors.New("api-url is required (set via --api-url or HEALTH_API_URL env var)")
	errInputRequired  = errors.New("input file is required (set via --input)")
)
