package hwemc

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// RunReplicates runs one independent chain per RandomSource, concurrently.
// Each chain starts from its own copy of observed; the observed table is not
// modified. The chains are only combined at the batch level: the returned
// Outcome pools every batch p-value and sums the switch tallies. The
// per-chain outcomes are returned in the order of sources.
func RunReplicates(ctx context.Context, observed *Table, params Parameters, sources []RandomSource) (Outcome, []Outcome, error) {
	if err := params.Validate(); err != nil {
		return Outcome{}, nil, err
	}
	if len(sources) < 1 {
		return Outcome{}, nil, fmt.Errorf("at least one random source is required")
	}

	lnPObserved := LnProbability(observed)
	outcomes := make([]Outcome, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, rs := range sources {
		i, rs := i, rs
		g.Go(func() error {
			out, err := Run(ctx, observed.Clone(), params, rs, lnPObserved)
			if err != nil {
				return fmt.Errorf("chain %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, nil, err
	}

	return CombineOutcomes(outcomes), outcomes, nil
}

// CombineOutcomes pools the batches of independent chains that share the same
// observed table and parameters. LnPFinal belongs to a single chain and is left
// zero.
func CombineOutcomes(outcomes []Outcome) Outcome {
	combined := Outcome{}
	if len(outcomes) == 0 {
		return combined
	}
	combined.LnPObserved = outcomes[0].LnPObserved

	var sumMean, sumSecondMoment float64
	for _, o := range outcomes {
		combined.BatchPValues = append(combined.BatchPValues, o.BatchPValues...)
		combined.Iterations += o.Iterations
		for k := range o.Eligible {
			combined.Eligible[k] += o.Eligible[k]
			combined.Accepted[k] += o.Accepted[k]
		}

		sumMean += o.LnPMean
		sumSecondMoment += o.LnPStdDev*o.LnPStdDev + o.LnPMean*o.LnPMean
	}

	n := float64(len(outcomes))
	combined.PValue, combined.StdErr = batchSummary(combined.BatchPValues)
	combined.LnPMean = sumMean / n
	if v := sumSecondMoment/n - combined.LnPMean*combined.LnPMean; v > 0 {
		combined.LnPStdDev = math.Sqrt(v)
	}

	return combined
}
