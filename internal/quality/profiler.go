package quality

import (
	"context"
	"fmt"
	"sort"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

// ProfileParams configures a per-group profiling run. ValueColumn is the
// tracked measure (e.g. price): its nulls are the missing counts, its
// excursions outside ValidRange are the invalid counts, and its pairing
// with GroupColumn defines the duplicate identity.
type ProfileParams struct {
	GroupColumn string
	ValueColumn string
	ValidRange  ValidRange
	Join        JoinMode
}

// Profile computes missing, invalid and duplicate counts per group key.
//
// Missing is an explicit null count of the value column per group. Invalid
// counts rows whose value falls strictly outside the closed ValidRange.
// Duplicate counts rows that share their (group, value) pair with at least
// one other row, attributed to the group. The three maps are reconciled on
// the group key according to Join; results are sorted by key.
func (s *Service) Profile(ctx context.Context, p ProfileParams) ([]ProfileResult, error) {
	if p.GroupColumn == "" {
		return nil, fmt.Errorf("group column cannot be empty")
	}
	if p.ValueColumn == "" {
		return nil, fmt.Errorf("value column cannot be empty")
	}
	if p.ValidRange.Lo > p.ValidRange.Hi {
		return nil, &ErrInvalidRange{Lo: p.ValidRange.Lo, Hi: p.ValidRange.Hi}
	}
	if err := s.validateColumns(ctx, p.GroupColumn, p.ValueColumn); err != nil {
		return nil, err
	}

	missing, err := s.table.GroupedCount(ctx, p.GroupColumn, table.AnyOf(table.IsNull(p.ValueColumn)))
	if err != nil {
		return nil, fmt.Errorf("failed to compute missing counts: %w", err)
	}
	invalid, err := s.table.GroupedCount(ctx, p.GroupColumn,
		table.AnyOf(table.OutsideRange(p.ValueColumn, p.ValidRange.Lo, p.ValidRange.Hi)))
	if err != nil {
		return nil, fmt.Errorf("failed to compute invalid counts: %w", err)
	}
	duplicates, err := s.table.GroupedDuplicateRowCount(ctx, p.GroupColumn, []string{p.ValueColumn})
	if err != nil {
		return nil, fmt.Errorf("failed to compute duplicate counts: %w", err)
	}

	keys := reconcileKeys(p.Join, missing, invalid, duplicates)
	results := make([]ProfileResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, ProfileResult{
			Key:            key,
			MissingCount:   missing[key],
			InvalidCount:   invalid[key],
			DuplicateCount: duplicates[key],
		})
	}

	s.logger.Debugw("profile computed",
		"group_column", p.GroupColumn,
		"value_column", p.ValueColumn,
		"join", p.Join.String(),
		"groups", len(results),
	)
	return results, nil
}

// reconcileKeys joins the per-measure key sets. Strict keeps only keys
// reported by all three measures; inclusive keeps the union, with absent
// measures read as zero from the maps.
func reconcileKeys(mode JoinMode, measures ...map[string]int64) []string {
	seen := make(map[string]int)
	for _, m := range measures {
		for key := range m {
			seen[key]++
		}
	}
	var keys []string
	for key, n := range seen {
		if mode == JoinInclusive || n == len(measures) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
