package prior

import "gonum.org/v1/gonum/stat/distuv"

// An AlphaPrior scores candidate values of the chain-coupling
// hyperparameter alpha. Any gonum distuv distribution with support on
// the positive reals satisfies the interface directly.
type AlphaPrior interface {
	LogProb(alpha float64) float64
}

// ExponentialAlphaPrior returns an exponential prior on alpha with the
// given mean.
func ExponentialAlphaPrior(mean float64) AlphaPrior {
	return distuv.Exponential{Rate: 1.0 / mean}
}

// DefaultAlphaPrior is an exponential prior with mean 10: weakly
// informative, but keeping alpha away from the huge values that would
// freeze the chain into a single flat level.
func DefaultAlphaPrior() AlphaPrior {
	return ExponentialAlphaPrior(10.0)
}
