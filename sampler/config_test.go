package sampler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ppistat/poisample/model"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	obs := model.Observations{0.5, 1.2, 1.9, 2.3, 2.8}
	cfg := DefaultConfig(obs)

	assert.Equal(0.0, cfg.T0)
	assert.Equal(2.8, cfg.T)
	assert.Equal(1, cfg.NAgg)
	assert.Equal(1, cfg.Bins) // 5/4 = 1
	assert.Equal(EveryIteration(1, 30000), cfg.Samples)
	assert.Equal(0.1, cfg.Alpha1)
	assert.Equal(0.1, cfg.Beta1)
	assert.Equal(0.1, cfg.AlphaInd)
	assert.Equal(0.1, cfg.BetaInd)
	assert.Equal(0.7, cfg.Tau)
	assert.NotNil(cfg.Pi)
	assert.True(cfg.KeepAlpha)
	assert.True(cfg.Verbose)
	assert.False(cfg.EmpiricalBayes)
	assert.NoError(cfg.Check())
}

func TestDefaultConfigBins(t *testing.T) {
	assert := assert.New(t)

	// One bin per four events, floored at 1 and capped at 50.
	obs := make(model.Observations, 0, 300)
	for i := 0; i < 300; i++ {
		obs = append(obs, float64(i))
	}

	assert.Equal(50, DefaultConfig(obs).Bins)
	assert.Equal(10, DefaultConfig(obs[:40]).Bins)
	assert.Equal(1, DefaultConfig(obs[:2]).Bins)
	assert.Equal(1, DefaultConfig(nil).Bins)
}

func TestConfigCheck(t *testing.T) {
	assert := assert.New(t)

	base := func() Config {
		return DefaultConfig(model.Observations{1.0, 2.0, 3.0, 4.0})
	}

	expectParam := func(cfg Config, name string) {
		err := cfg.Check()
		assert.Error(err)
		var pe *model.InvalidParameterError
		assert.True(errors.As(err, &pe))
		assert.Equal(name, pe.Name)
	}

	cfg := base()
	cfg.NAgg = 0
	expectParam(cfg, "nAgg")

	cfg = base()
	cfg.Bins = 0
	expectParam(cfg, "N")

	cfg = base()
	cfg.Alpha1 = 0.0
	expectParam(cfg, "alpha1")

	cfg = base()
	cfg.Beta1 = -1.0
	expectParam(cfg, "beta1")

	cfg = base()
	cfg.AlphaInd = 0.0
	expectParam(cfg, "alphaInd")

	cfg = base()
	cfg.BetaInd = 0.0
	expectParam(cfg, "betaInd")

	cfg = base()
	cfg.Tau = 0.0
	expectParam(cfg, "tau")

	cfg = base()
	cfg.Samples.Stride = -1
	expectParam(cfg, "samples.stride")
}

func TestConfigWithDefaults(t *testing.T) {
	assert := assert.New(t)

	var cfg Config
	filled := cfg.withDefaults()

	assert.NotNil(filled.Pi)
	assert.NotNil(filled.Logger)
	assert.Equal(500, filled.AcceptWindow)
	assert.Equal(5000, filled.LogEvery)

	// Explicit settings survive.
	cfg.AcceptWindow = 64
	cfg.LogEvery = 100
	filled = cfg.withDefaults()
	assert.Equal(64, filled.AcceptWindow)
	assert.Equal(100, filled.LogEvery)
}
