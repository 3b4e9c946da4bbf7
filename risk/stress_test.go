package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/projection"
)

func TestShock(t *testing.T) {
	t.Parallel()

	in := []float64{100, 110, 120}
	out := Shock(in, 0.2)

	assert.Equal(t, []float64{100, 110, 96}, out)
	assert.Equal(t, []float64{100, 110, 120}, in, "input is untouched")

	assert.Empty(t, Shock(nil, 0.2))
	assert.Equal(t, []float64{100, 110, 120}, Shock(in, 0))
}

func TestStressTest(t *testing.T) {
	t.Parallel()

	base := projection.Nominal(projection.Project(100, 240, 0.06, 0.02))
	st := StressTest(base, 0.2, 0)

	require.Len(t, st.Shocked, len(base))
	assert.Equal(t, 0.2, st.Fraction)
	assert.Equal(t, base[:len(base)-1], st.Shocked[:len(base)-1])
	assert.InDelta(t, base[len(base)-1]*0.8, st.Shocked[len(base)-1], 1e-9)

	assert.Equal(t, 0.0, st.Base.MaxDrawdown)
	n := len(base)
	assert.InDelta(t, 0.8*base[n-1]/base[n-2]-1, st.Stressed.MaxDrawdown, 1e-12)
	assert.Less(t, st.Stressed.MaxDrawdown, -0.19)
	assert.Greater(t, st.Stressed.Volatility, st.Base.Volatility)
	assert.Less(t, st.Stressed.Sharpe, st.Base.Sharpe)
}
