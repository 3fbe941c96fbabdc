package hwemc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptanceIsCappedAtOneHalf(t *testing.T) {
	assert.Equal(t, 0.5, acceptance(16))
	assert.Equal(t, 0.5, acceptance(1))
	assert.Equal(t, 0.125, acceptance(0.25))
}

func TestPartialStep(t *testing.T) {
	// Merged window with a single heterozygote: only the D-switch is legal,
	// with ratio (5/3)*(5/2)*4.
	cells := []int{5, 1, 5, 0, 0, 0}
	w := NewMoveWindow(0, 1, 0, 1)
	ratio := (5.0 / 3) * (5.0 / 2) * 4

	for _, v := range []struct {
		u        float64
		accepted bool
	}{
		{0.0, true},
		{0.49, true},
		{0.5, false}, // strictly below the threshold
		{0.9, false},
	} {
		tab, err := NewTable(3, cells)
		require.NoError(t, err)
		c := NewChain(tab, &scriptedSource{draws: []float64{v.u}}, -1)

		res := c.stepWindow(w)
		assert.Equal(t, PartialSwitch, res.Classification, "u=%v", v.u)
		assert.Equal(t, v.accepted, res.Accepted, "u=%v", v.u)

		if v.accepted {
			assert.Equal(t, DSwitch, res.Direction)
			assert.InDelta(t, -1+math.Log(ratio), c.LnP(), 1e-12)
			assert.Equal(t, 3, tab.Get(1, 0))
		} else {
			assert.Equal(t, -1.0, c.LnP())
			assert.Equal(t, cells, tab.Cells())
		}
	}
}

func TestFullStep(t *testing.T) {
	// Window (0,1,0,2) on the example table: ratio D is 5/3 and ratio R is
	// 1/12, so D takes u <= 1/2 and R takes 1/2 < u <= 1/2 + 1/24.
	w := NewMoveWindow(0, 1, 0, 2)

	for _, v := range []struct {
		u         float64
		accepted  bool
		direction Direction
		deltaLnP  float64
	}{
		{0.1, true, DSwitch, math.Log(5.0 / 3)},
		{0.5, true, DSwitch, math.Log(5.0 / 3)},
		{0.52, true, RSwitch, math.Log(1.0 / 12)},
		{0.6, false, DSwitch, 0},
	} {
		tab := exampleTable(t)
		c := NewChain(tab, &scriptedSource{draws: []float64{v.u}}, 0)

		res := c.stepWindow(w)
		assert.Equal(t, FullSwitch, res.Classification, "u=%v", v.u)
		assert.Equal(t, v.accepted, res.Accepted, "u=%v", v.u)
		assert.InDelta(t, v.deltaLnP, c.LnP(), 1e-12, "u=%v", v.u)
		if v.accepted {
			assert.Equal(t, v.direction, res.Direction, "u=%v", v.u)
		}
		assert.Equal(t, 19, tab.Total())
	}
}

func TestNoSwitchStepDrawsNothing(t *testing.T) {
	tab, err := NewTable(3, []int{7, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	src := &scriptedSource{draws: []float64{0.3}}
	c := NewChain(tab, src, 2.5)

	res := c.stepWindow(NewMoveWindow(0, 1, 0, 1))
	assert.Equal(t, NoSwitch, res.Classification)
	assert.False(t, res.Accepted)
	assert.Equal(t, 2.5, c.LnP())
	assert.Equal(t, 0, src.i)
}

// The running ln P must track the exact log-probability of the table.
func TestChainLnPTracksTable(t *testing.T) {
	tab := exampleTable(t)
	c := NewChain(tab, NewRandomSource(5), LnProbability(tab))

	for n := 0; n < 20000; n++ {
		c.Step()
	}

	assert.InDelta(t, LnProbability(c.Table()), c.LnP(), 1e-8)
	assert.Equal(t, 19, c.Table().Total())
}
