package posterior

import (
	"math"

	"github.com/pkg/errors"
)

// Scores against a known reference intensity, mostly useful on
// synthetic data where the truth is available. The reference gives one
// value per bin, the true intensity at that bin.

// Coverage returns the fraction of bins whose reference value falls
// inside the credible band (endpoints included). For a well calibrated
// 95% band on repeated synthetic draws this should hover near 0.95.
func Coverage(s *Summary, reference []float64) (float64, error) {
	if err := checkReference(s, reference); err != nil {
		return 0.0, err
	}

	hit := 0
	for k, ref := range reference {
		if ref >= s.Lower[k] && ref <= s.Upper[k] {
			hit++
		}
	}

	return float64(hit) / float64(len(reference)), nil
}

// MeanAbsError returns the mean absolute difference between the
// posterior means and the reference.
func MeanAbsError(s *Summary, reference []float64) (float64, error) {
	if err := checkReference(s, reference); err != nil {
		return 0.0, err
	}

	errSum := 0.0
	for k, ref := range reference {
		errSum += math.Abs(s.Mean[k] - ref)
	}

	return errSum / float64(len(reference)), nil
}

// MaxAbsError returns the largest absolute difference between the
// posterior means and the reference.
func MaxAbsError(s *Summary, reference []float64) (float64, error) {
	if err := checkReference(s, reference); err != nil {
		return 0.0, err
	}

	maxErr := 0.0
	for k, ref := range reference {
		d := math.Abs(s.Mean[k] - ref)
		if k == 0 || d > maxErr {
			maxErr = d
		}
	}

	return maxErr, nil
}

func checkReference(s *Summary, reference []float64) error {
	if len(reference) != len(s.Mean) {
		return errors.Errorf("Reference count mismatch %d != %d", len(reference), len(s.Mean))
	}
	if len(reference) < 1 {
		return errors.Errorf("No bins to score")
	}
	return nil
}
