package sampler

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/ppistat/poisample/model"
)

// RunChains executes several independent runs concurrently, one
// goroutine per chain. Chain i runs with seed cfg.Seed+i, so the chain
// set as a whole is as reproducible as a single run. Results come back
// in chain order. The first chain failure aborts the whole set.
func RunChains(ctx context.Context, obs model.Observations, cfg Config, chains int) ([]*Result, error) {
	if chains < 1 {
		return nil, &model.InvalidParameterError{Name: "chains", Reason: "need at least one chain"}
	}

	results := make([]*Result, chains)
	errs := make([]error, chains)

	var wg sync.WaitGroup
	for i := 0; i < chains; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			ccfg := cfg
			ccfg.Seed = cfg.Seed + int64(idx)
			ccfg.ChainID = idx
			results[idx], errs[idx] = Inference(ctx, obs, ccfg)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "Chain %d failed", i)
		}
	}

	return results, nil
}

// GelmanRubin computes the potential scale reduction factor per bin
// across two or more chains. The first half of each chain's retained
// rows is discarded as burn-in, matching the summarizer. Values near 1
// indicate the chains agree; a common rule of thumb flags anything
// above 1.1. With zero between-chain variance the estimate dips
// slightly below 1 by construction.
func GelmanRubin(results []*Result) ([]float64, error) {
	m := len(results)
	if m < 2 {
		return nil, errors.Errorf("Need at least 2 chains for a scale reduction factor, have %d", m)
	}

	bins := len(results[0].Counts)
	rows := len(results[0].Psi)
	for i, r := range results[1:] {
		if len(r.Counts) != bins || len(r.Psi) != rows {
			return nil, errors.Errorf("Chain %d shape does not match chain 0", i+1)
		}
	}

	burn := rows / 2
	n := rows - burn
	if n < 2 {
		return nil, &model.InsufficientSamplesError{Have: n, Need: 2}
	}

	rhat := make([]float64, bins)
	col := make([]float64, n)
	means := make([]float64, m)
	vars := make([]float64, m)

	for k := 0; k < bins; k++ {
		for j, r := range results {
			for i := 0; i < n; i++ {
				col[i] = r.Psi[burn+i][k]
			}
			means[j] = stat.Mean(col, nil)
			vars[j] = stat.Variance(col, nil)
		}

		w := stat.Mean(vars, nil)
		b := float64(n) * stat.Variance(means, nil)

		if w == 0.0 && b == 0.0 {
			rhat[k] = 1.0
			continue
		}

		varPlus := float64(n-1)/float64(n)*w + b/float64(n)
		rhat[k] = math.Sqrt(varPlus / w)
	}

	return rhat, nil
}
