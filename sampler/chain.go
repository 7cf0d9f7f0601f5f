package sampler

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ppistat/poisample/buffer"
	"github.com/ppistat/poisample/model"
	"github.com/ppistat/poisample/prior"
	"github.com/ppistat/poisample/rand"
)

// A Chain is the mutable state of one MCMC run over the intensity
// coefficients. Each Step performs one full iteration: a sweep over the
// auxiliary variables, a sweep over the coefficients, one
// Metropolis-Hastings move on the coupling hyperparameter, and (under
// empirical Bayes) the rate re-estimate. Draws always happen in that
// fixed order so a seed replays exactly.
type Chain struct {
	cfg    Config
	grid   *model.Grid
	counts []int
	widths []float64
	gmc    *prior.GMC
	gen    *rand.Generator

	psi     []float64
	zeta    []float64
	alpha   float64
	betaInd float64

	iteration int
	accepted  int64
	accWindow *buffer.CircularFloat
}

// NewChain validates the configuration, bins the observations, and
// returns a chain positioned at a deterministic starting state: each
// coefficient at its independent-Gamma posterior mean and the coupling
// hyperparameter at 1.
func NewChain(cfg Config, obs model.Observations) (*Chain, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	grid, err := model.UniformGrid(cfg.T0, cfg.T, cfg.Bins)
	if err != nil {
		return nil, err
	}

	counts, err := model.BinCounts(obs, grid)
	if err != nil {
		return nil, err
	}

	gmc := &prior.GMC{
		Alpha1:   cfg.Alpha1,
		Beta1:    cfg.Beta1,
		AlphaInd: cfg.AlphaInd,
		Pi:       cfg.Pi,
	}
	if err := gmc.Check(); err != nil {
		return nil, errors.Wrap(err, "Invalid smoothing prior")
	}

	ch := &Chain{
		cfg:       cfg,
		grid:      grid,
		counts:    counts,
		widths:    grid.Widths(),
		gmc:       gmc,
		gen:       rand.NewGenerator(cfg.Seed),
		psi:       make([]float64, cfg.Bins),
		zeta:      make([]float64, cfg.Bins-1),
		alpha:     1.0,
		betaInd:   cfg.BetaInd,
		accWindow: buffer.NewCircularFloat(cfg.AcceptWindow),
	}

	if cfg.EmpiricalBayes {
		total := model.TotalEvents(counts)
		ch.betaInd = prior.InitialBetaInd(total, float64(cfg.NAgg), cfg.T-cfg.T0, cfg.AlphaInd, cfg.BetaInd)
	}

	for k := range ch.psi {
		ch.psi[k] = (cfg.AlphaInd + float64(counts[k])) / (ch.betaInd + float64(cfg.NAgg)*ch.widths[k])
	}

	return ch, nil
}

// Step advances the chain by one full iteration.
func (c *Chain) Step() error {
	c.iteration++
	bins := len(c.psi)
	nAgg := float64(c.cfg.NAgg)

	// Refresh every auxiliary variable given the current coefficients.
	// Within the block the draws are conditionally independent; the
	// ascending order is fixed for reproducibility only.
	for j := 0; j+1 < bins; j++ {
		zp := c.gmc.ZetaFullConditional(c.psi[j], c.psi[j+1], c.alpha)
		if !positive(zp.Shape) || !positive(zp.Scale) {
			return &model.NumericDegeneracyError{
				Iteration: c.iteration, Bin: j, Quantity: "zeta",
				Shape: zp.Shape, Rate: zp.Scale,
			}
		}

		c.zeta[j] = distuv.InverseGamma{Alpha: zp.Shape, Beta: zp.Scale, Src: c.gen}.Rand()
		if !positive(c.zeta[j]) {
			return &model.NumericDegeneracyError{
				Iteration: c.iteration, Bin: j, Quantity: "zeta",
				Shape: zp.Shape, Rate: zp.Scale,
			}
		}
	}

	// Refresh every coefficient given the auxiliary variables just
	// drawn. Again conditionally independent within the block.
	for k := 0; k < bins; k++ {
		gp, err := c.gmc.PsiFullConditional(k, bins, c.counts[k], c.widths[k], nAgg, c.alpha, c.betaInd, c.zeta)
		if err != nil {
			return errors.Wrapf(err, "Coefficient update failed at iteration %d", c.iteration)
		}
		if !positive(gp.Shape) || !positive(gp.Rate) {
			return &model.NumericDegeneracyError{
				Iteration: c.iteration, Bin: k, Quantity: "psi",
				Shape: gp.Shape, Rate: gp.Rate,
			}
		}

		c.psi[k] = distuv.Gamma{Alpha: gp.Shape, Beta: gp.Rate, Src: c.gen}.Rand()
		if !positive(c.psi[k]) {
			return &model.NumericDegeneracyError{
				Iteration: c.iteration, Bin: k, Quantity: "psi",
				Shape: gp.Shape, Rate: gp.Rate,
			}
		}
	}

	// One random-walk move on log(alpha). The auxiliary variables were
	// refreshed above, so evaluating the marginalized likelihood here
	// keeps the move a valid partially collapsed update.
	z := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: c.gen}.Rand()
	proposal := c.alpha * math.Exp(c.cfg.Tau*z)
	logA := c.gmc.LogPosteriorRatioAlpha(proposal, c.alpha, c.psi)
	if math.Log(c.gen.Float64()) < logA {
		c.alpha = proposal
		c.accepted++
		c.accWindow.Add(1.0)
	} else {
		c.accWindow.Add(0.0)
	}

	if c.cfg.EmpiricalBayes {
		b, err := prior.EmpiricalBayesBetaInd(c.psi, c.cfg.AlphaInd)
		if err != nil {
			return errors.Wrapf(err, "Empirical Bayes update failed at iteration %d", c.iteration)
		}
		c.betaInd = b
	}

	return nil
}

// Psi returns a copy of the current coefficient vector.
func (c *Chain) Psi() []float64 {
	out := make([]float64, len(c.psi))
	copy(out, c.psi)
	return out
}

// Alpha returns the current coupling hyperparameter.
func (c *Chain) Alpha() float64 {
	return c.alpha
}

// BetaInd returns the current independent-Gamma rate.
func (c *Chain) BetaInd() float64 {
	return c.betaInd
}

// Iteration returns how many iterations have completed.
func (c *Chain) Iteration() int {
	return c.iteration
}

// Grid returns the grid the chain runs on.
func (c *Chain) Grid() *model.Grid {
	return c.grid
}

// Counts returns the per-bin event counts the chain conditions on.
func (c *Chain) Counts() []int {
	out := make([]int, len(c.counts))
	copy(out, c.counts)
	return out
}

// AcceptRate returns the cumulative Metropolis-Hastings acceptance rate
// for the coupling hyperparameter.
func (c *Chain) AcceptRate() float64 {
	if c.iteration < 1 {
		return 0.0
	}
	return float64(c.accepted) / float64(c.iteration)
}

// WindowAcceptRate returns the acceptance rate over the trailing
// window, which reacts to tau problems much faster than the cumulative
// rate.
func (c *Chain) WindowAcceptRate() float64 {
	return c.accWindow.Mean()
}

// AcceptDrift returns the change in acceptance rate between the older
// and newer halves of the trailing window. Near zero once the move has
// settled; ok is false until the window has filled.
func (c *Chain) AcceptDrift() (float64, bool) {
	first, second, ok := c.accWindow.HalfMeans()
	if !ok {
		return 0.0, false
	}
	return second - first, true
}

// positive is the degeneracy guard: strictly positive and finite.
// NaN fails the comparison on its own.
func positive(v float64) bool {
	return v > 0.0 && !math.IsInf(v, 1)
}
