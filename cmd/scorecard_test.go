package cmd

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/quality"
)

// The scorecard and profile commands must agree on the default validity
// range, and both must take it from quality.DefaultValidRange.
func TestValidityRangeFlagDefaultsShared(t *testing.T) {
	wantLo := strconv.FormatFloat(quality.DefaultValidRange.Lo, 'g', -1, 64)
	wantHi := strconv.FormatFloat(quality.DefaultValidRange.Hi, 'g', -1, 64)

	scMin := scorecardCmd.Flags().Lookup("min-valid")
	scMax := scorecardCmd.Flags().Lookup("max-valid")
	prMin := profileCmd.Flags().Lookup("min-valid")
	prMax := profileCmd.Flags().Lookup("max-valid")
	require.NotNil(t, scMin)
	require.NotNil(t, scMax)
	require.NotNil(t, prMin)
	require.NotNil(t, prMax)

	assert.Equal(t, wantLo, scMin.DefValue)
	assert.Equal(t, wantHi, scMax.DefValue)
	assert.Equal(t, prMin.DefValue, scMin.DefValue)
	assert.Equal(t, prMax.DefValue, scMax.DefValue)
}
