package sampler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ppistat/poisample/model"
)

// Result is the immutable outcome of one completed run. Psi holds one
// row per retained iteration, in retention order; SampleIdx records
// which iteration produced each row. Alpha and BetaInd are parallel
// traces, present only when the run kept them.
type Result struct {
	Title      string
	Grid       *model.Grid
	Counts     []int
	SampleIdx  []int
	Psi        [][]float64
	Alpha      []float64
	BetaInd    []float64
	AcceptRate float64
	Seed       int64
	Iterations int
	Elapsed    time.Duration
}

// Inference runs the full posterior sampler over the observations and
// returns the retained sample. The run is deterministic given the
// configuration: identical Config and observations reproduce identical
// results bit for bit. Cancellation is honored between iterations; a
// canceled run returns no partial result.
func Inference(ctx context.Context, obs model.Observations, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	ch, err := NewChain(cfg, obs)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if cfg.Verbose {
		log = cfg.Logger
	}

	total := cfg.Samples.Last()
	rows := cfg.Samples.Count()

	res := &Result{
		Title:      cfg.Title,
		Grid:       ch.Grid(),
		Counts:     ch.Counts(),
		SampleIdx:  make([]int, 0, rows),
		Psi:        make([][]float64, 0, rows),
		Seed:       cfg.Seed,
		Iterations: total,
	}
	if cfg.KeepAlpha {
		res.Alpha = make([]float64, 0, rows)
	}
	if cfg.EmpiricalBayes {
		res.BetaInd = make([]float64, 0, rows)
	}

	log.Info("Starting inference",
		zap.String("title", cfg.Title),
		zap.Int("chain", cfg.ChainID),
		zap.Int("events", model.TotalEvents(res.Counts)),
		zap.Int("bins", cfg.Bins),
		zap.Int("iterations", total),
		zap.Int64("seed", cfg.Seed),
		zap.Bool("empiricalBayes", cfg.EmpiricalBayes),
	)

	start := time.Now()

	for it := 1; it <= total; it++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "Run canceled before iteration %d", it)
		}

		if err := ch.Step(); err != nil {
			return nil, errors.Wrap(err, "Inference halted")
		}

		if cfg.Samples.Contains(it) {
			res.SampleIdx = append(res.SampleIdx, it)
			res.Psi = append(res.Psi, ch.Psi())
			if cfg.KeepAlpha {
				res.Alpha = append(res.Alpha, ch.Alpha())
			}
			if cfg.EmpiricalBayes {
				res.BetaInd = append(res.BetaInd, ch.BetaInd())
			}
		}

		if it%cfg.LogEvery == 0 || it == total {
			report(cfg, ch, log, total, len(res.SampleIdx))
		}
	}

	res.AcceptRate = ch.AcceptRate()
	res.Elapsed = time.Since(start)

	log.Info("Inference complete",
		zap.String("title", cfg.Title),
		zap.Int("chain", cfg.ChainID),
		zap.Int("retained", len(res.Psi)),
		zap.Float64("acceptRate", res.AcceptRate),
		zap.Duration("elapsed", res.Elapsed),
	)

	return res, nil
}

// report delivers one progress snapshot to the log and the callback.
func report(cfg Config, ch *Chain, log *zap.Logger, total, retained int) {
	p := Progress{
		Title:            cfg.Title,
		ChainID:          cfg.ChainID,
		Iteration:        ch.Iteration(),
		TotalIterations:  total,
		Retained:         retained,
		Alpha:            ch.Alpha(),
		BetaInd:          ch.BetaInd(),
		AcceptRate:       ch.AcceptRate(),
		WindowAcceptRate: ch.WindowAcceptRate(),
	}

	log.Info("Sampling",
		zap.Int("chain", p.ChainID),
		zap.Int("iteration", p.Iteration),
		zap.Int("of", p.TotalIterations),
		zap.Float64("alpha", p.Alpha),
		zap.Float64("acceptRate", p.AcceptRate),
		zap.Float64("windowAcceptRate", p.WindowAcceptRate),
	)

	if cfg.Progress != nil {
		cfg.Progress(p)
	}
}
