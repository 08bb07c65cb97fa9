/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/quality"
)

// ParseColumnsFlag splits a comma-separated column list, trimming spaces
// and dropping empty entries.
func ParseColumnsFlag(columnsFlag string) []string {
	if columnsFlag == "" {
		return nil
	}
	var columns []string
	for _, part := range strings.Split(columnsFlag, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			columns = append(columns, part)
		}
	}
	return columns
}

// ReadCorrectionsFile loads a cleanser correction table from a JSON file:
// an array of {"find": ..., "replace": ...} objects.
func ReadCorrectionsFile(filePath string) ([]quality.Correction, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read corrections file: %w", err)
	}
	var corrections []quality.Correction
	if err := json.Unmarshal(content, &corrections); err != nil {
		return nil, fmt.Errorf("failed to parse corrections file '%s': %w", filePath, err)
	}
	return corrections, nil
}

// ReadValuesFile reads newline-separated values for cleansing. Blank lines
// are kept: an empty value is still a value.
func ReadValuesFile(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}
	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// WriteReportToFile writes rendered report output.
func WriteReportToFile(content string, filePath string) error {
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report to '%s': %w", filePath, err)
	}
	return nil
}
