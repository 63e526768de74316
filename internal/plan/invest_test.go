package plan

import (
	"testing"

	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureValue_KnownFigures(t *testing.T) {
	// $500/month from zero at 7% for 10 years is roughly $86.5k.
	fv := FutureValue(0, 500, 10, DefaultAnnualReturn)
	assert.InDelta(t, 86542, fv, 50)

	// A lump sum with no contributions just compounds.
	fv = FutureValue(10000, 0, 10, DefaultAnnualReturn)
	assert.InDelta(t, 20097, fv, 50)
}

func TestFutureValue_ZeroReturnIsLinear(t *testing.T) {
	fv := FutureValue(1000, 100, 10, 0)
	assert.InDelta(t, 1000+100*120, fv, 1e-9)
}

func TestFutureValue_MonotonicInContribution(t *testing.T) {
	prev := FutureValue(5000, 0, 20, DefaultAnnualReturn)
	for _, c := range []float64{100, 250, 500, 1000} {
		fv := FutureValue(5000, c, 20, DefaultAnnualReturn)
		assert.Greater(t, fv, prev, "contribution %v", c)
		prev = fv
	}
}

func TestProjectGrowth_Table(t *testing.T) {
	tiers := model.ContributionTiers{Low: 250, Recommended: 750, High: 1500}
	table := ProjectGrowth(10000, tiers, DefaultAnnualReturn)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, tiers, table.Contributions)

	for i, row := range table.Rows {
		assert.Equal(t, GrowthHorizons[i], row.Years)
		assert.Less(t, row.Low, row.Recommended)
		assert.Less(t, row.Recommended, row.High)
		if i > 0 {
			assert.Greater(t, row.Low, table.Rows[i-1].Low, "longer horizons grow more")
		}
	}
}
