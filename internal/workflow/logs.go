// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package workflow

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// noLogsPlaceholder is summarized instead of log text when the archive
// has no log members at all.
const noLogsPlaceholder = "No log files found in the workflow logs."

// maxLogFileBytes bounds how much of a single archive member is read.
const maxLogFileBytes = 8 << 20

// ExtractLogs extracts and concatenates all .txt members of a workflow
// run log archive, in archive order.
func ExtractLogs(archive []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", fmt.Errorf("workflow: invalid log archive: %w", err)
	}

	var sb strings.Builder
	found := false
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".txt") {
			continue
		}
		found = true

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("workflow: failed to open %s in log archive: %w", f.Name, err)
		}

		_, err = io.Copy(&sb, io.LimitReader(rc, maxLogFileBytes))
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("workflow: failed to read %s from log archive: %w", f.Name, err)
		}
		sb.WriteByte('\n')
	}

	if !found {
		return noLogsPlaceholder, nil
	}

	return sb.String(), nil
}
