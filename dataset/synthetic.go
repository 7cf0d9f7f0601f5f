package dataset

import (
	"math"

	"github.com/ppistat/poisample/model"
	"github.com/ppistat/poisample/rand"
)

// The generators below draw from fixed seeds and a fixed draw order, so
// the canned datasets never change between loads or releases.

const (
	constantSeed = 101
	rampSeed     = 202
)

// genConstant draws a homogeneous Poisson process of rate 10 on [0,10]
// through exponential gaps.
func genConstant() (model.Observations, Params) {
	gen := rand.NewGenerator(constantSeed)

	obs := model.Observations{}
	t := 0.0
	for {
		t += -math.Log(1.0-gen.Float64()) / 10.0
		if t > 10.0 {
			break
		}
		obs = append(obs, t)
	}

	return obs, Params{T0: 0.0, T: 10.0, NAgg: 1, Bins: 10}
}

// genRamp draws an inhomogeneous Poisson process with intensity
// 2 + 1.6t on [0,10] by thinning a rate-18 homogeneous candidate
// stream. Each candidate consumes exactly two uniforms (gap, keep) to
// pin down the draw order.
func genRamp() (model.Observations, Params) {
	gen := rand.NewGenerator(rampSeed)

	const bound = 18.0
	rate := func(t float64) float64 { return 2.0 + 1.6*t }

	obs := model.Observations{}
	t := 0.0
	for {
		t += -math.Log(1.0-gen.Float64()) / bound
		if t > 10.0 {
			break
		}
		if gen.Float64()*bound < rate(t) {
			obs = append(obs, t)
		}
	}

	return obs, Params{T0: 0.0, T: 10.0, NAgg: 1, Bins: 10}
}
