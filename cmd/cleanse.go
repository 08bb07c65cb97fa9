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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/quality"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/utils"
)

var (
	cleanseValuesFile      string
	cleanseCorrectionsFile string
	cleanseOutFile         string
)

var cleanseCmd = &cobra.Command{
	Use:   "cleanse",
	Short: "Normalize text values (whitespace, casing, typo corrections)",
	Long: `Reads newline-separated values from a file and applies the cleansing
pipeline: whitespace collapse, case normalization, then an optional table of
exact-match typo corrections. The source file is never modified.`,
	Example: `./data_quality_engine cleanse --values species.txt --corrections corrections.json`,
	RunE:    runCleanse,
}

func runCleanse(cmd *cobra.Command, args []string) error {
	if cleanseValuesFile == "" {
		return fmt.Errorf("--values is required")
	}

	var corrections []quality.Correction
	if cleanseCorrectionsFile != "" {
		var err error
		corrections, err = utils.ReadCorrectionsFile(cleanseCorrectionsFile)
		if err != nil {
			return err
		}
	}
	cleanser, err := quality.NewCleanser(corrections)
	if err != nil {
		return fmt.Errorf("invalid correction table: %w", err)
	}

	values, err := utils.ReadValuesFile(cleanseValuesFile)
	if err != nil {
		return err
	}
	cleaned := cleanser.Cleanse(values)
	output := strings.Join(cleaned, "\n") + "\n"

	if cleanseOutFile != "" {
		if err := utils.WriteReportToFile(output, cleanseOutFile); err != nil {
			return err
		}
		fmt.Printf("Cleaned values written to: %s\n", cleanseOutFile)
		return nil
	}
	fmt.Print(output)
	return nil
}

func init() {
	cleanseCmd.Flags().StringVar(&cleanseValuesFile, "values", "", "File of newline-separated values to cleanse - MANDATORY")
	cleanseCmd.Flags().StringVar(&cleanseCorrectionsFile, "corrections", "", "JSON file with [{\"find\": ..., \"replace\": ...}] typo corrections")
	cleanseCmd.Flags().StringVarP(&cleanseOutFile, "out_file", "o", "", "File path to save cleaned values to (optional)")
}
