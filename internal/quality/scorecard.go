package quality

// Metric display names, in scorecard order.
const (
	MetricMissing    = "Missing Values"
	MetricDuplicates = "Duplicates"
	MetricInvalid    = "Invalid Values"
	MetricOutliers   = "Outliers"
)

// BuildScorecard renders a metrics result into the fixed-order scorecard:
// Missing Values, Duplicates, Invalid Values, Outliers. Entries carry a
// letter grade only when the result has a positive row count to grade
// against.
func BuildScorecard(m *MetricsResult) []ScorecardEntry {
	entries := []ScorecardEntry{
		{Metric: MetricMissing, Value: m.TotalMissing},
		{Metric: MetricDuplicates, Value: m.TotalDuplicates},
		{Metric: MetricInvalid, Value: m.TotalInvalid},
		{Metric: MetricOutliers, Value: m.TotalOutliers},
	}
	if m.TotalRows > 0 {
		for i := range entries {
			entries[i].Grade = gradeFor(entries[i].Value, m.TotalRows)
		}
	}
	return entries
}

// gradeFor maps the clean-row ratio for one metric to a letter band.
func gradeFor(count, totalRows int64) string {
	ratio := 1 - float64(count)/float64(totalRows)
	switch {
	case ratio >= 0.90:
		return "A"
	case ratio >= 0.80:
		return "B"
	case ratio >= 0.70:
		return "C"
	case ratio >= 0.60:
		return "D"
	default:
		return "F"
	}
}
