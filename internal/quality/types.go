package quality

import "fmt"

// ProfileResult carries the per-group diagnostic counts that locate where
// quality problems concentrate.
type ProfileResult struct {
	Key            string `json:"key"`
	MissingCount   int64  `json:"missing_count"`
	InvalidCount   int64  `json:"invalid_count"`
	DuplicateCount int64  `json:"duplicate_count"`
}

// MetricsResult carries the dataset-wide quality counts. TotalDuplicates
// counts rows belonging to a duplicate group, not the number of groups.
type MetricsResult struct {
	TotalRows       int64 `json:"total_rows"`
	TotalMissing    int64 `json:"total_missing"`
	TotalDuplicates int64 `json:"total_duplicates"`
	TotalInvalid    int64 `json:"total_invalid"`
	TotalOutliers   int64 `json:"total_outliers"`
}

// ScorecardEntry is one line of the rendered scorecard. Grade is empty when
// no row denominator was available.
type ScorecardEntry struct {
	Metric string `json:"metric"`
	Value  int64  `json:"value"`
	Grade  string `json:"grade,omitempty"`
}

// ValidRange is the closed interval of acceptable values for a numeric
// column; violation is strictly outside either bound.
type ValidRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// DefaultValidRange is the engine's example rule: price must lie in [0,100].
var DefaultValidRange = ValidRange{Lo: 0, Hi: 100}

// JoinMode controls how the three per-group profile measures are
// reconciled on the group key.
type JoinMode int

const (
	// JoinStrict keeps only keys present in all three measures. A key with
	// no nulls, no invalids or no duplicates is dropped entirely.
	JoinStrict JoinMode = iota
	// JoinInclusive keeps every key seen by any measure, zero-filling the
	// counts the other measures did not report.
	JoinInclusive
)

func ParseJoinMode(s string) (JoinMode, error) {
	switch s {
	case "strict":
		return JoinStrict, nil
	case "inclusive":
		return JoinInclusive, nil
	default:
		return JoinStrict, fmt.Errorf("unsupported join mode: %s (only strict, inclusive are supported)", s)
	}
}

func (m JoinMode) String() string {
	if m == JoinInclusive {
		return "inclusive"
	}
	return "strict"
}
