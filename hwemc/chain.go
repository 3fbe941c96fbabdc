package hwemc

import "math"

// acceptance is the probability of executing a proposed switch with the given
// ratio. A window offers at most two proposals, so each is capped at 1/2.
func acceptance(ratio float64) float64 {
	return math.Min(1, ratio) / 2
}

// StepResult describes one chain transition.
type StepResult struct {
	// Classification is the topology of the sampled window. It is recorded
	// whether or not a switch was executed.
	Classification Feasibility

	// Accepted is true when a switch was executed.
	Accepted bool

	// Direction is the executed switch, when Accepted.
	Direction Direction
}

// Chain is a Markov chain over genotype tables with fixed margins. It owns
// its table and its RandomSource.
type Chain struct {
	table *Table
	rs    RandomSource
	lnP   float64
}

// NewChain starts a chain at t, whose log-probability is lnP. The chain
// mutates t in place.
func NewChain(t *Table, rs RandomSource, lnP float64) *Chain {
	return &Chain{
		table: t,
		rs:    rs,
		lnP:   lnP,
	}
}

// LnP is the log-probability of the chain's current table.
func (c *Chain) LnP() float64 {
	return c.lnP
}

func (c *Chain) Table() *Table {
	return c.table
}

// Step samples a window and performs one Metropolis-Hastings transition.
func (c *Chain) Step() StepResult {
	return c.stepWindow(SampleWindow(c.rs, c.table.NAlleles()))
}

func (c *Chain) stepWindow(w MoveWindow) StepResult {
	e := Evaluate(c.table, w)
	res := StepResult{Classification: e.Feasibility}

	switch e.Feasibility {
	case NoSwitch:

	case PartialSwitch:
		r := e.Ratio(e.Direction)
		if c.rs.Next() < acceptance(r) {
			c.execute(w, e.Direction, r, &res)
		}

	case FullSwitch:
		u := c.rs.Next()
		pD := acceptance(e.RatioD)
		if u <= pD {
			c.execute(w, DSwitch, e.RatioD, &res)
		} else if u <= pD+acceptance(e.RatioR) {
			c.execute(w, RSwitch, e.RatioR, &res)
		}
	}

	return res
}

func (c *Chain) execute(w MoveWindow, d Direction, ratio float64, res *StepResult) {
	c.table.Apply(w, d)
	c.lnP += math.Log(ratio)
	res.Accepted = true
	res.Direction = d
}
