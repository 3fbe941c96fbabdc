package hwestore

import (
	"strconv"

	"github.com/carbocation/popgen/hwemc"
	"gopkg.in/guregu/null.v3"
)

// FromOutcome describes a randomization test of t. seed is the seed of the
// first chain.
func FromOutcome(marker string, t *hwemc.Table, params hwemc.Parameters, o hwemc.Outcome, seed uint64) Result {
	return Result{
		Marker:       marker,
		Method:       MethodMCMC,
		NAlleles:     t.NAlleles(),
		NIndividuals: t.Total(),
		PValue:       o.PValue,
		StdErr:       null.FloatFrom(o.StdErr),
		Steps:        null.IntFrom(int64(params.Steps)),
		Batches:      null.IntFrom(int64(params.Batches)),
		BatchSize:    null.IntFrom(int64(params.BatchSize)),
		Seed:         null.StringFrom(strconv.FormatUint(seed, 10)),
	}
}
