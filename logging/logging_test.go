// SPDX-FileCopyrightText: 2026 Sami Khalid
// SPDX-License-Identifier: Apache-2.0

package logging

import "testing"

func TestLoggerInitializers(t *testing.T) {
	t.Parallel()

	Init()
	if l := Logger(SourceApp); l == nil {
		t.Fatal("Logger returned nil")
	}
	if l := Logger(SourceUpstream); l == nil {
		t.Fatal("Logger returned nil for upstream source")
	}
	if l := StdLogger(SourceWebRequest); l == nil {
		t.Fatal("StdLogger returned nil")
	}
}
