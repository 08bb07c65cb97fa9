// Package quality implements the data-quality assessment engine: per-group
// profiling, text cleansing, dataset-wide metrics and the graded scorecard.
// Every computation is a pure snapshot over an injected table.Accessor;
// nothing here holds state between calls.
package quality

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

// Service computes profiles and metrics over a single table.
type Service struct {
	table  table.Accessor
	logger *zap.SugaredLogger
}

func NewService(t table.Accessor, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		table:  t,
		logger: logger,
	}
}

// validateColumns checks every name against the table's declared columns
// and fails on the first unknown one.
func (s *Service) validateColumns(ctx context.Context, names ...string) error {
	columns, err := s.table.Columns(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Name] = true
	}
	for _, name := range names {
		if !known[name] {
			return &ErrUnknownColumn{Column: name}
		}
	}
	return nil
}
