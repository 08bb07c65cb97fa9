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
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/utils"
)

var (
	profileGroupColumn string
	profileValueColumn string
	profileMinValid    float64
	profileMaxValid    float64
	profileJoin        string
	profileFormat      string
	profileOutFile     string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Compute per-group missing/invalid/duplicate counts",
	Long: `Profiles the dataset per group key (e.g. competitor or category),
reporting where missing, invalid and duplicate values concentrate.`,
	Example: `./data_quality_engine profile --csv prices.csv --numeric-columns price --group-column competitor --value-column price --join inclusive`,
	RunE:    runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	if profileGroupColumn == "" {
		return fmt.Errorf("--group-column is required")
	}
	if profileValueColumn == "" {
		return fmt.Errorf("--value-column is required")
	}
	join, err := quality.ParseJoinMode(profileJoin)
	if err != nil {
		return err
	}

	acc, closeAccessor, err := openAccessor()
	if err != nil {
		return err
	}
	defer closeAccessor()

	svc := quality.NewService(acc, logger)
	results, err := svc.Profile(cmd.Context(), quality.ProfileParams{
		GroupColumn: profileGroupColumn,
		ValueColumn: profileValueColumn,
		ValidRange:  quality.ValidRange{Lo: profileMinValid, Hi: profileMaxValid},
		Join:        join,
	})
	if err != nil {
		return fmt.Errorf("failed to profile dataset: %w", err)
	}

	var output string
	switch profileFormat {
	case "json":
		encoded, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		output = string(encoded) + "\n"
	case "text":
		output = quality.FormatProfileAsText(results)
	default:
		return fmt.Errorf("unsupported format: %s (only text, json are supported)", profileFormat)
	}

	if profileOutFile != "" {
		if err := utils.WriteReportToFile(output, profileOutFile); err != nil {
			return err
		}
		fmt.Printf("Profile written to: %s\n", profileOutFile)
		return nil
	}
	fmt.Print(output)
	return nil
}

func init() {
	profileCmd.Flags().StringVar(&profileGroupColumn, "group-column", "", "Column whose values group the profile counts - MANDATORY")
	profileCmd.Flags().StringVar(&profileValueColumn, "value-column", "", "Tracked measure column (nulls, range violations, duplicates) - MANDATORY")
	profileCmd.Flags().Float64Var(&profileMinValid, "min-valid", quality.DefaultValidRange.Lo, "Lower bound of the validity range")
	profileCmd.Flags().Float64Var(&profileMaxValid, "max-valid", quality.DefaultValidRange.Hi, "Upper bound of the validity range")
	profileCmd.Flags().StringVar(&profileJoin, "join", "strict", "Key reconciliation across the three measures ('strict' or 'inclusive')")
	profileCmd.Flags().StringVar(&profileFormat, "format", "text", "Output format ('text' or 'json')")
	profileCmd.Flags().StringVarP(&profileOutFile, "out_file", "o", "", "File path to save the profile to (optional)")
}
