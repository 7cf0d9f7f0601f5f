// Package prior implements the Gamma Markov chain (GMC) smoothing prior
// over the piecewise-constant intensity coefficients psi of a Poisson
// point process.
//
// Adjacent coefficients are tied together through latent auxiliary
// variables zeta, one between each pair of neighbors:
//
//	psi_0            ~ Gamma(alpha1, beta1)
//	zeta_j | psi_j   ~ InvGamma(alpha, alpha*psi_j)
//	psi_j+1 | zeta_j ~ Gamma(alpha, alpha/zeta_j)
//
// Gamma distributions are written shape/rate and inverse-gamma
// distributions shape/scale throughout. The construction keeps every
// full conditional conjugate: given the zetas the psis are independent
// Gammas, and given the psis the zetas are independent inverse-Gammas.
// The single hyperparameter alpha controls how strongly neighbors are
// pulled together and gets its own prior (see AlphaPrior).
package prior

import (
	"math"

	"github.com/pkg/errors"
)

// GammaParams is a Gamma distribution in shape/rate form.
type GammaParams struct {
	Shape float64
	Rate  float64
}

// InvGammaParams is an inverse-gamma distribution in shape/scale form.
type InvGammaParams struct {
	Shape float64
	Scale float64
}

// GMC bundles the fixed hyperparameters of the smoothing prior. Alpha1
// and Beta1 parameterize the Gamma prior on the first coefficient.
// AlphaInd is the shape of the independent-Gamma baseline used when the
// grid has a single bin and when initializing a run. Pi is the prior on
// the coupling hyperparameter alpha.
type GMC struct {
	Alpha1   float64
	Beta1    float64
	AlphaInd float64
	Pi       AlphaPrior
}

// Check insures the hyperparameters define a proper prior.
func (p *GMC) Check() error {
	if !(p.Alpha1 > 0.0) || !(p.Beta1 > 0.0) {
		return errors.Errorf("First-bin prior must have positive shape and rate (%v, %v)", p.Alpha1, p.Beta1)
	}
	if !(p.AlphaInd > 0.0) {
		return errors.Errorf("Independent-Gamma shape must be positive (%v)", p.AlphaInd)
	}
	if p.Pi == nil {
		return errors.Errorf("No prior given for the coupling hyperparameter")
	}
	return nil
}

// ZetaFullConditional returns the inverse-gamma full conditional of the
// auxiliary variable sitting between two neighboring coefficients:
//
//	zeta | psiLeft, psiRight ~ InvGamma(2*alpha, alpha*(psiLeft+psiRight))
func (p *GMC) ZetaFullConditional(psiLeft, psiRight, alpha float64) InvGammaParams {
	return InvGammaParams{
		Shape: 2.0 * alpha,
		Scale: alpha * (psiLeft + psiRight),
	}
}

// PsiFullConditional returns the Gamma full conditional of coefficient
// k on a grid of bins bins, given the current auxiliary variables. The
// Poisson likelihood contributes (count, nAgg*width) to the shape and
// rate; the prior terms depend on which neighbors bin k has:
//
//	only bin:  Gamma(alphaInd + H, betaInd + n*w)
//	first bin: Gamma(alpha1 + alpha + H, beta1 + alpha/zeta_0 + n*w)
//	last bin:  Gamma(alpha + H, alpha/zeta_last + n*w)
//	interior:  Gamma(2*alpha + H, alpha/zeta_left + alpha/zeta_right + n*w)
//
// zeta must hold bins-1 entries, zeta[j] coupling coefficients j and
// j+1. betaInd is passed per call because empirical Bayes re-estimates
// it between iterations.
func (p *GMC) PsiFullConditional(k, bins, count int, width, nAgg, alpha, betaInd float64, zeta []float64) (GammaParams, error) {
	if bins < 1 || k < 0 || k >= bins {
		return GammaParams{}, errors.Errorf("Coefficient index %d out of range for %d bins", k, bins)
	}
	if len(zeta) != bins-1 {
		return GammaParams{}, errors.Errorf("Need %d auxiliary variables for %d bins, have %d", bins-1, bins, len(zeta))
	}

	h := float64(count)
	lw := nAgg * width

	switch {
	case bins == 1:
		return GammaParams{
			Shape: p.AlphaInd + h,
			Rate:  betaInd + lw,
		}, nil
	case k == 0:
		return GammaParams{
			Shape: p.Alpha1 + alpha + h,
			Rate:  p.Beta1 + alpha/zeta[0] + lw,
		}, nil
	case k == bins-1:
		return GammaParams{
			Shape: alpha + h,
			Rate:  alpha/zeta[k-1] + lw,
		}, nil
	default:
		return GammaParams{
			Shape: 2.0*alpha + h,
			Rate:  alpha/zeta[k-1] + alpha/zeta[k] + lw,
		}, nil
	}
}

// CouplingLogLik returns the log likelihood of alpha given the current
// coefficient chain, with the auxiliary variables integrated out. Each
// neighbor pair contributes the log of the marginal transition density
//
//	p(to | from) = Gamma(2a)/Gamma(a)^2 * from^a * to^(a-1) / (from+to)^2a
//
// A single-bin grid has no pairs and contributes zero, making alpha a
// draw from its prior in that degenerate case.
func (p *GMC) CouplingLogLik(alpha float64, psi []float64) float64 {
	ll := 0.0
	for j := 0; j+1 < len(psi); j++ {
		ll += pairLogProb(psi[j], psi[j+1], alpha)
	}
	return ll
}

// LogPosteriorRatioAlpha returns the log Metropolis-Hastings acceptance
// ratio for a proposed alpha against the current one. Proposals are
// made by a Gaussian random walk on log(alpha), so the ratio carries
// the Jacobian term log(alphaProp) - log(alpha) in addition to the
// likelihood and prior terms.
func (p *GMC) LogPosteriorRatioAlpha(alphaProp, alpha float64, psi []float64) float64 {
	return p.CouplingLogLik(alphaProp, psi) - p.CouplingLogLik(alpha, psi) +
		p.Pi.LogProb(alphaProp) - p.Pi.LogProb(alpha) +
		math.Log(alphaProp) - math.Log(alpha)
}

// pairLogProb is the log of the zeta-marginalized transition density of
// one neighbor pair.
func pairLogProb(from, to, alpha float64) float64 {
	return lgamma(2.0*alpha) - 2.0*lgamma(alpha) +
		alpha*math.Log(from) + (alpha-1.0)*math.Log(to) -
		2.0*alpha*math.Log(from+to)
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// EmpiricalBayesBetaInd re-estimates the independent-Gamma rate from
// the current coefficients by matching the prior mean alphaInd/betaInd
// to the mean of psi.
func EmpiricalBayesBetaInd(psi []float64, alphaInd float64) (float64, error) {
	if len(psi) < 1 {
		return 0.0, errors.Errorf("Can not estimate a rate from an empty coefficient vector")
	}

	total := 0.0
	for _, v := range psi {
		if !(v > 0.0) || math.IsInf(v, 0) {
			return 0.0, errors.Errorf("Coefficient %v is not a positive finite number", v)
		}
		total += v
	}

	return alphaInd * float64(len(psi)) / total, nil
}

// InitialBetaInd picks the independent-Gamma rate used before any
// coefficients exist, by matching the prior mean to the crude overall
// intensity totalCount/(nAgg*window). With no events there is nothing
// to match and the configured fallback is kept.
func InitialBetaInd(totalCount int, nAgg, window, alphaInd, fallback float64) float64 {
	if totalCount < 1 {
		return fallback
	}
	return alphaInd * nAgg * window / float64(totalCount)
}
