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
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/quality"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/utils"
)

var (
	requiredColumnsFlag string
	outlierColumnsFlag  string
	duplicateKeyFlag    string
	scValueColumn       string
	scMinValid          float64
	scMaxValid          float64
	scFormat            string
	scOutFile           string
)

var scorecardCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Compute dataset-wide quality metrics and render a graded scorecard",
	Long: `Computes the four dataset-level quality metrics (missing, duplicate,
invalid and 3-sigma outlier counts) and renders them as a scorecard with a
letter grade per metric.`,
	Example: `./data_quality_engine scorecard --dialect postgres --host localhost --port 5432 --username user --password pass --database flowers --table prices --required-columns species,price --outlier-columns price --duplicate-key species,price --value-column price`,
	RunE:    runScorecard,
}

func runScorecard(cmd *cobra.Command, args []string) error {
	acc, closeAccessor, err := openAccessor()
	if err != nil {
		return err
	}
	defer closeAccessor()

	params := quality.MetricsParams{
		RequiredColumns: utils.ParseColumnsFlag(requiredColumnsFlag),
		OutlierColumns:  utils.ParseColumnsFlag(outlierColumnsFlag),
		DuplicateKey:    utils.ParseColumnsFlag(duplicateKeyFlag),
	}
	if scValueColumn != "" {
		if scMinValid > scMaxValid {
			return &quality.ErrInvalidRange{Lo: scMinValid, Hi: scMaxValid}
		}
		params.Invalid = table.AnyOf(table.OutsideRange(scValueColumn, scMinValid, scMaxValid))
	}

	svc := quality.NewService(acc, logger)
	metrics, err := svc.ComputeMetrics(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}
	entries := quality.BuildScorecard(metrics)

	var output string
	switch scFormat {
	case "json":
		encoded, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode scorecard: %w", err)
		}
		output = string(encoded) + "\n"
	case "text":
		output = quality.FormatScorecardAsText(entries)
	default:
		return fmt.Errorf("unsupported format: %s (only text, json are supported)", scFormat)
	}

	if scOutFile != "" {
		if err := utils.WriteReportToFile(output, scOutFile); err != nil {
			return err
		}
		fmt.Printf("Scorecard written to: %s\n", scOutFile)
		return nil
	}
	fmt.Print(output)
	return nil
}

func init() {
	scorecardCmd.Flags().StringVar(&requiredColumnsFlag, "required-columns", "", "Comma-separated columns that must be populated - MANDATORY")
	scorecardCmd.Flags().StringVar(&outlierColumnsFlag, "outlier-columns", "", "Comma-separated numeric columns screened for 3-sigma outliers")
	scorecardCmd.Flags().StringVar(&duplicateKeyFlag, "duplicate-key", "", "Comma-separated columns defining duplicate identity (defaults to required columns)")
	scorecardCmd.Flags().StringVar(&scValueColumn, "value-column", "", "Numeric column checked against the validity range")
	scorecardCmd.Flags().Float64Var(&scMinValid, "min-valid", quality.DefaultValidRange.Lo, "Lower bound of the validity range")
	scorecardCmd.Flags().Float64Var(&scMaxValid, "max-valid", quality.DefaultValidRange.Hi, "Upper bound of the validity range")
	scorecardCmd.Flags().StringVar(&scFormat, "format", "text", "Output format ('text' or 'json')")
	scorecardCmd.Flags().StringVarP(&scOutFile, "out_file", "o", "", "File path to save the scorecard to (optional)")
}
