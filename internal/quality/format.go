package quality

import (
	"bytes"
	"fmt"
)

// FormatScorecardAsText renders the scorecard for terminal or file output.
func FormatScorecardAsText(entries []ScorecardEntry) string {
	if len(entries) == 0 {
		return "No metrics computed.\n"
	}
	var buffer bytes.Buffer
	buffer.WriteString("--- Data Quality Scorecard ---\n")
	for _, entry := range entries {
		if entry.Grade != "" {
			buffer.WriteString(fmt.Sprintf("  %-16s %8d  [%s]\n", entry.Metric, entry.Value, entry.Grade))
		} else {
			buffer.WriteString(fmt.Sprintf("  %-16s %8d\n", entry.Metric, entry.Value))
		}
	}
	return buffer.String()
}

// FormatProfileAsText renders per-group profile counts.
func FormatProfileAsText(results []ProfileResult) string {
	if len(results) == 0 {
		return "No groups profiled.\n"
	}
	var buffer bytes.Buffer
	buffer.WriteString("--- Data Quality Profile ---\n")
	for _, r := range results {
		buffer.WriteString(fmt.Sprintf("  Group: %s\n", r.Key))
		buffer.WriteString(fmt.Sprintf("    Missing: %d | Invalid: %d | Duplicates: %d\n",
			r.MissingCount, r.InvalidCount, r.DuplicateCount))
	}
	return buffer.String()
}
