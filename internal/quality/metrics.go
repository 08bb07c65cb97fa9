package quality

import (
	"context"
	"fmt"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

// outlierSigmas is the z-score threshold: a value further than this many
// population standard deviations from its column mean is an outlier.
const outlierSigmas = 3.0

// MetricsParams configures a dataset-wide metrics run.
type MetricsParams struct {
	// RequiredColumns are the columns that must be populated; a row with a
	// null in any of them counts once toward TotalMissing.
	RequiredColumns []string
	// Invalid is the caller-supplied invalidity predicate. An empty
	// predicate yields TotalInvalid = 0.
	Invalid table.Predicate
	// OutlierColumns are the numeric columns screened for 3-sigma outliers.
	OutlierColumns []string
	// DuplicateKey is the column set whose identical tuples define a
	// duplicate. Defaults to RequiredColumns when empty.
	DuplicateKey []string
}

// ComputeMetrics computes the four dataset-level quality counts. All
// configuration is validated against the table before the first aggregate
// query runs.
func (s *Service) ComputeMetrics(ctx context.Context, p MetricsParams) (*MetricsResult, error) {
	if len(p.RequiredColumns) == 0 {
		return nil, fmt.Errorf("at least one required column must be configured")
	}
	duplicateKey := p.DuplicateKey
	if len(duplicateKey) == 0 {
		duplicateKey = p.RequiredColumns
	}

	var named []string
	named = append(named, p.RequiredColumns...)
	named = append(named, p.OutlierColumns...)
	named = append(named, duplicateKey...)
	named = append(named, p.Invalid.ColumnNames()...)
	if err := s.validateColumns(ctx, named...); err != nil {
		return nil, err
	}

	totalRows, err := s.table.RowCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	missing, err := s.totalMissing(ctx, p.RequiredColumns)
	if err != nil {
		return nil, err
	}
	duplicates, err := s.table.DuplicateRowCount(ctx, duplicateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to count duplicates: %w", err)
	}
	invalid, err := s.totalInvalid(ctx, p.Invalid)
	if err != nil {
		return nil, err
	}
	outliers, err := s.totalOutliers(ctx, p.OutlierColumns)
	if err != nil {
		return nil, err
	}

	result := &MetricsResult{
		TotalRows:       totalRows,
		TotalMissing:    missing,
		TotalDuplicates: duplicates,
		TotalInvalid:    invalid,
		TotalOutliers:   outliers,
	}
	s.logger.Debugw("metrics computed",
		"rows", totalRows,
		"missing", missing,
		"duplicates", duplicates,
		"invalid", invalid,
		"outliers", outliers,
	)
	return result, nil
}

// totalMissing counts rows where any required column is null. The OR
// predicate counts a row once no matter how many of its columns are null.
func (s *Service) totalMissing(ctx context.Context, requiredColumns []string) (int64, error) {
	conds := make([]table.Condition, len(requiredColumns))
	for i, col := range requiredColumns {
		conds[i] = table.IsNull(col)
	}
	n, err := s.table.Count(ctx, table.AnyOf(conds...))
	if err != nil {
		return 0, fmt.Errorf("failed to count missing values: %w", err)
	}
	return n, nil
}

func (s *Service) totalInvalid(ctx context.Context, invalid table.Predicate) (int64, error) {
	if invalid.Empty() {
		return 0, nil
	}
	n, err := s.table.Count(ctx, invalid)
	if err != nil {
		return 0, fmt.Errorf("failed to count invalid values: %w", err)
	}
	return n, nil
}

// totalOutliers screens each configured column against mean +/- 3 sigma
// computed over the whole column, nulls excluded and the row under test
// included. A zero-variance column contributes no outliers; a row outside
// the band on several columns still counts once, because the per-column
// conditions are OR-ed into a single count.
func (s *Service) totalOutliers(ctx context.Context, outlierColumns []string) (int64, error) {
	var conds []table.Condition
	for _, col := range outlierColumns {
		mean, err := s.table.Mean(ctx, col)
		if err != nil {
			return 0, fmt.Errorf("failed to compute mean of %s: %w", col, err)
		}
		sigma, err := s.table.StdDev(ctx, col)
		if err != nil {
			return 0, fmt.Errorf("failed to compute stddev of %s: %w", col, err)
		}
		if sigma == 0 {
			s.logger.Debugw("skipping zero-variance column for outlier screening", "column", col)
			continue
		}
		conds = append(conds, table.OutsideRange(col, mean-outlierSigmas*sigma, mean+outlierSigmas*sigma))
	}
	if len(conds) == 0 {
		return 0, nil
	}
	n, err := s.table.Count(ctx, table.AnyOf(conds...))
	if err != nil {
		return 0, fmt.Errorf("failed to count outliers: %w", err)
	}
	return n, nil
}
