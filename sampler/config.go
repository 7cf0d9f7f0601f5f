package sampler

import (
	"go.uber.org/zap"

	"github.com/ppistat/poisample/model"
	"github.com/ppistat/poisample/prior"
)

// Config fully determines a run: the same Config and observations
// always reproduce the same posterior sample bit for bit. Zero values
// are filled with usable defaults where one exists; see DefaultConfig
// for the standard starting point.
type Config struct {
	// Title labels the run in logs and result files.
	Title string

	// T0 and T delimit the observation window.
	T0 float64
	T  float64

	// NAgg is the number of independent realizations pooled into the
	// observation list.
	NAgg int

	// Bins is the number of grid cells the intensity is estimated on.
	Bins int

	// Samples selects the retained iterations.
	Samples Schedule

	// Alpha1/Beta1 parameterize the Gamma prior on the first
	// coefficient; AlphaInd/BetaInd the independent-Gamma baseline.
	Alpha1   float64
	Beta1    float64
	AlphaInd float64
	BetaInd  float64

	// Tau is the standard deviation of the log-scale random walk that
	// proposes new values of the coupling hyperparameter.
	Tau float64

	// Pi is the prior on the coupling hyperparameter. Nil selects an
	// exponential prior with mean 10.
	Pi prior.AlphaPrior

	// EmpiricalBayes re-estimates BetaInd from the coefficients after
	// every iteration instead of keeping it fixed.
	EmpiricalBayes bool

	// KeepAlpha retains the trace of the coupling hyperparameter
	// alongside the coefficients.
	KeepAlpha bool

	// Seed fixes the PRNG stream. Runs differing only in Seed are
	// independent chains.
	Seed int64

	// ChainID labels this run in progress reports when several chains
	// execute in parallel.
	ChainID int

	// AcceptWindow is the size of the trailing window used for the
	// windowed acceptance diagnostic. Zero selects 500.
	AcceptWindow int

	// Verbose enables progress logging through Logger.
	Verbose bool

	// LogEvery is the iteration interval between progress reports.
	// Zero selects 5000.
	LogEvery int

	// Logger receives progress output when Verbose is set. Nil with
	// Verbose set falls back to a no-op logger.
	Logger *zap.Logger

	// Progress, when non-nil, is called every LogEvery iterations and
	// once at the end of the run. It runs on the sampling goroutine and
	// should return quickly.
	Progress func(Progress)
}

// DefaultConfig returns the standard configuration for a set of
// observations: window [0, max(obs)], one bin per four events capped at
// 50, 30000 retained iterations, and the weakly informative
// hyperparameters alpha1 = beta1 = alphaInd = betaInd = 0.1. Runs are
// verbose by default, but nothing prints until a Logger is supplied.
func DefaultConfig(obs model.Observations) Config {
	bins := len(obs) / 4
	if bins < 1 {
		bins = 1
	}
	if bins > 50 {
		bins = 50
	}

	return Config{
		Title:     "poisson-intensity",
		T0:        0.0,
		T:         obs.Max(),
		NAgg:      1,
		Bins:      bins,
		Samples:   EveryIteration(1, 30000),
		Alpha1:    0.1,
		Beta1:     0.1,
		AlphaInd:  0.1,
		BetaInd:   0.1,
		Tau:       0.7,
		Pi:        prior.DefaultAlphaPrior(),
		KeepAlpha: true,
		Seed:      1,
		Verbose:   true,
	}
}

// withDefaults fills the gaps a zero-value Config leaves open.
func (c Config) withDefaults() Config {
	if c.Pi == nil {
		c.Pi = prior.DefaultAlphaPrior()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.AcceptWindow < 2 {
		c.AcceptWindow = 500
	}
	if c.LogEvery < 1 {
		c.LogEvery = 5000
	}
	return c
}

// Check insures every parameter is inside its legal domain. The window
// and observations themselves are validated when the grid is built.
func (c Config) Check() error {
	if c.NAgg < 1 {
		return &model.InvalidParameterError{Name: "nAgg", Reason: "need at least one realization"}
	}
	if c.Bins < 1 {
		return &model.InvalidParameterError{Name: "N", Reason: "bin count must be at least 1"}
	}
	if !(c.Alpha1 > 0.0) {
		return &model.InvalidParameterError{Name: "alpha1", Reason: "must be positive"}
	}
	if !(c.Beta1 > 0.0) {
		return &model.InvalidParameterError{Name: "beta1", Reason: "must be positive"}
	}
	if !(c.AlphaInd > 0.0) {
		return &model.InvalidParameterError{Name: "alphaInd", Reason: "must be positive"}
	}
	if !(c.BetaInd > 0.0) {
		return &model.InvalidParameterError{Name: "betaInd", Reason: "must be positive"}
	}
	if !(c.Tau > 0.0) {
		return &model.InvalidParameterError{Name: "tau", Reason: "proposal scale must be positive"}
	}
	return c.Samples.Check()
}
