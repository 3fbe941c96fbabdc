package hwemc

import (
	"context"
	"fmt"
	"math"

	"github.com/carbocation/runningvariance"
	"gonum.org/v1/gonum/stat"
)

// Parameters configures a randomization run.
type Parameters struct {
	// Steps is the number of burn-in (de-memorization) steps.
	Steps int

	// Batches is the number of batches that are averaged.
	Batches int

	// BatchSize is the number of chain steps per batch.
	BatchSize int
}

// Validate rejects parameters that cannot produce a p-value and a standard
// error.
func (p Parameters) Validate() error {
	if p.Steps < 1 {
		return fmt.Errorf("%w: %d burn-in steps, at least 1 is required", ErrMalformedParameters, p.Steps)
	}
	if p.Batches <= 1 {
		return fmt.Errorf("%w: %d batches, more than 1 is required", ErrMalformedParameters, p.Batches)
	}
	if p.BatchSize < 1 {
		return fmt.Errorf("%w: batch size %d, at least 1 is required", ErrMalformedParameters, p.BatchSize)
	}

	return nil
}

// Iterations is the total number of chain steps of a run.
func (p Parameters) Iterations() int {
	return p.Steps + p.Batches*p.BatchSize
}

// Phase is the stage of a randomization run.
type Phase int

const (
	PhaseBurnIn Phase = iota
	PhaseSampling
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseBurnIn:
		return "burn-in"
	case PhaseSampling:
		return "sampling"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// Outcome is the result of a randomization run.
type Outcome struct {
	PValue float64
	StdErr float64

	LnPObserved float64

	// LnPFinal is the ln P of the chain's last table. It is zero for
	// outcomes pooled by CombineOutcomes.
	LnPFinal float64

	// LnPMean and LnPStdDev summarize the ln P of the tables visited while
	// sampling.
	LnPMean   float64
	LnPStdDev float64

	// Eligible counts steps by window topology, indexed by Feasibility.
	// Accepted counts the steps that executed a switch, by the same index.
	Eligible [3]int
	Accepted [3]int

	BatchPValues []float64
	Iterations   int
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(count) / float64(total)
}

// SwitchPercentages returns the percentage of steps whose window allowed a
// partial switch, a full switch, or either. These measure eligibility, not
// acceptance; see AcceptedPercentages.
func (o Outcome) SwitchPercentages() (partial, full, all float64) {
	return percent(o.Eligible[PartialSwitch], o.Iterations),
		percent(o.Eligible[FullSwitch], o.Iterations),
		percent(o.Eligible[PartialSwitch]+o.Eligible[FullSwitch], o.Iterations)
}

// AcceptedPercentages is SwitchPercentages restricted to executed switches.
func (o Outcome) AcceptedPercentages() (partial, full, all float64) {
	return percent(o.Accepted[PartialSwitch], o.Iterations),
		percent(o.Accepted[FullSwitch], o.Iterations),
		percent(o.Accepted[PartialSwitch]+o.Accepted[FullSwitch], o.Iterations)
}

// RandomizationState carries one run through its phases.
type RandomizationState struct {
	Phase       Phase
	Params      Parameters
	LnPObserved float64

	chain   *Chain
	outcome Outcome
	trace   *runningvariance.RunningStat
}

// NewRandomizationState prepares a run on t, which the run will mutate.
// lnPObserved is the log-probability of t.
func NewRandomizationState(t *Table, params Parameters, rs RandomSource, lnPObserved float64) (*RandomizationState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &RandomizationState{
		Phase:       PhaseBurnIn,
		Params:      params,
		LnPObserved: lnPObserved,
		chain:       NewChain(t, rs, lnPObserved),
		outcome: Outcome{
			LnPObserved:  lnPObserved,
			BatchPValues: make([]float64, 0, params.Batches),
		},
		trace: runningvariance.NewRunningStat(),
	}, nil
}

func (s *RandomizationState) Chain() *Chain {
	return s.chain
}

func (s *RandomizationState) step() StepResult {
	res := s.chain.Step()
	s.outcome.Eligible[res.Classification]++
	if res.Accepted {
		s.outcome.Accepted[res.Classification]++
	}
	s.outcome.Iterations++

	return res
}

// BurnIn runs the de-memorization steps. Only the switch tallies are kept.
func (s *RandomizationState) BurnIn(ctx context.Context) error {
	if s.Phase != PhaseBurnIn {
		return fmt.Errorf("burn-in requested during the %s phase", s.Phase)
	}

	done := ctx.Done()
	for i := 0; i < s.Params.Steps; i++ {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		s.step()
	}

	s.Phase = PhaseSampling
	return nil
}

// Sample runs the batches. For each batch, it records the fraction of steps
// whose table is no more probable than the observed table.
func (s *RandomizationState) Sample(ctx context.Context) error {
	if s.Phase != PhaseSampling {
		return fmt.Errorf("sampling requested during the %s phase", s.Phase)
	}

	done := ctx.Done()
	for b := 0; b < s.Params.Batches; b++ {
		counter := 0

		for i := 0; i < s.Params.BatchSize; i++ {
			select {
			case <-done:
				return ctx.Err()
			default:
			}

			s.step()

			lnP := s.chain.LnP()
			s.trace.Push(lnP)
			if noMoreProbable(lnP, s.LnPObserved) {
				counter++
			}
		}

		s.outcome.BatchPValues = append(s.outcome.BatchPValues, float64(counter)/float64(s.Params.BatchSize))
	}

	s.Phase = PhaseDone
	return nil
}

// Finish reduces the batch p-values into the p-value estimate and its
// standard error.
func (s *RandomizationState) Finish() (Outcome, error) {
	if s.Phase != PhaseDone {
		return s.outcome, fmt.Errorf("results requested during the %s phase", s.Phase)
	}

	out := s.outcome
	out.PValue, out.StdErr = batchSummary(out.BatchPValues)
	out.LnPFinal = s.chain.LnP()
	out.LnPMean = s.trace.Mean()
	out.LnPStdDev = s.trace.StandardDeviation()

	return out, nil
}

// lnPTolerance is the relative slack of the ln P comparison. The chain's ln P
// is a running sum of log ratios, so a revisit of an equally probable table
// can land a few ulps away from the observed value.
const lnPTolerance = 1e-9

// noMoreProbable reports whether a table with log-probability lnP is at most
// as probable as the observed table.
func noMoreProbable(lnP, lnPObserved float64) bool {
	return lnP <= lnPObserved+lnPTolerance*math.Max(1, math.Abs(lnPObserved))
}

// batchSummary returns the mean of the batch p-values and the standard error
// of that mean, sqrt(sum p^2/(g(g-1)) - mean^2/(g-1)).
func batchSummary(batches []float64) (mean, se float64) {
	mean, variance := stat.MeanVariance(batches, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return mean, 0
	}

	return mean, stat.StdErr(math.Sqrt(variance), float64(len(batches)))
}

// Run burns in and samples a chain started at t, which is mutated.
func Run(ctx context.Context, t *Table, params Parameters, rs RandomSource, lnPObserved float64) (Outcome, error) {
	s, err := NewRandomizationState(t, params, rs, lnPObserved)
	if err != nil {
		return Outcome{}, err
	}

	if err := s.BurnIn(ctx); err != nil {
		return Outcome{}, err
	}

	if err := s.Sample(ctx); err != nil {
		return Outcome{}, err
	}

	return s.Finish()
}

// Test runs the randomization test for the observed table without modifying
// it.
func Test(ctx context.Context, observed *Table, params Parameters, rs RandomSource) (Outcome, error) {
	return Run(ctx, observed.Clone(), params, rs, LnProbability(observed))
}
