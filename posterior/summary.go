// Package posterior reduces a retained MCMC sample to the point and
// interval estimates most users actually want: a per-bin posterior mean
// and an equal-tailed credible band.
package posterior

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ppistat/poisample/model"
	"github.com/ppistat/poisample/sampler"
)

// Summary holds per-bin posterior summaries of the intensity function.
// The slices are indexed by bin and share the Grid's layout.
type Summary struct {
	Title     string
	Grid      *model.Grid
	Mean      []float64
	Lower     []float64
	Upper     []float64
	LowerProb float64
	UpperProb float64
	BurnIn    int
	RowsUsed  int
}

// Summarize reduces a result to posterior means and the central 95%
// credible band.
func Summarize(res *sampler.Result) (*Summary, error) {
	return SummarizeQuantiles(res, 0.025, 0.975)
}

// SummarizeQuantiles is Summarize with a caller-chosen band. The first
// half of the retained rows is discarded as burn-in; at least two rows
// must survive. The input is never modified, so summarizing the same
// result twice gives identical answers.
func SummarizeQuantiles(res *sampler.Result, lower, upper float64) (*Summary, error) {
	if !(lower > 0.0) || !(upper < 1.0) || !(lower < upper) {
		return nil, &model.InvalidParameterError{
			Name:   "quantiles",
			Reason: "need 0 < lower < upper < 1",
		}
	}

	rows := len(res.Psi)
	burn := rows / 2
	use := rows - burn
	if use < 2 {
		return nil, &model.InsufficientSamplesError{Have: use, Need: 2}
	}

	bins := res.Grid.Bins()
	s := &Summary{
		Title:     res.Title,
		Grid:      res.Grid,
		Mean:      make([]float64, bins),
		Lower:     make([]float64, bins),
		Upper:     make([]float64, bins),
		LowerProb: lower,
		UpperProb: upper,
		BurnIn:    burn,
		RowsUsed:  use,
	}

	col := make([]float64, use)
	for k := 0; k < bins; k++ {
		for i := 0; i < use; i++ {
			col[i] = res.Psi[burn+i][k]
		}

		s.Mean[k] = stat.Mean(col, nil)

		sort.Float64s(col)
		s.Lower[k] = stat.Quantile(lower, stat.Empirical, col, nil)
		s.Upper[k] = stat.Quantile(upper, stat.Empirical, col, nil)
	}

	return s, nil
}
