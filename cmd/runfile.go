package cmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// runFile mirrors the infer flags in YAML form so a whole run can be
// captured in one shareable file. Pointer fields distinguish "absent"
// from a genuine zero; explicit command line flags still win over the
// file.
type runFile struct {
	Title     string `yaml:"title"`
	Dataset   string `yaml:"dataset"`
	TimesFile string `yaml:"times_file"`

	T0   *float64 `yaml:"t0"`
	T    *float64 `yaml:"t"`
	NAgg *int     `yaml:"nagg"`
	Bins *int     `yaml:"bins"`

	Iterations *int `yaml:"iterations"`
	Thin       *int `yaml:"thin"`
	Chains     *int `yaml:"chains"`

	Alpha1    *float64 `yaml:"alpha1"`
	Beta1     *float64 `yaml:"beta1"`
	AlphaInd  *float64 `yaml:"alpha_ind"`
	BetaInd   *float64 `yaml:"beta_ind"`
	Tau       *float64 `yaml:"tau"`
	PriorMean *float64 `yaml:"prior_mean"`

	EmpiricalBayes *bool `yaml:"empirical_bayes"`

	SummaryFile string `yaml:"summary_file"`
}

// loadRunFile reads and parses a YAML run file.
func loadRunFile(path string) (*runFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read run file %s", path)
	}

	rf := &runFile{}
	if err := yaml.Unmarshal(data, rf); err != nil {
		return nil, errors.Wrapf(err, "Could not parse run file %s", path)
	}

	return rf, nil
}
