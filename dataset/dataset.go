// Package dataset supplies canned example observation sets and a plain
// text loader for user data. The canned sets are generated on demand
// from fixed seeds, so repeated loads always return identical times and
// any run over them is fully reproducible.
package dataset

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ppistat/poisample/model"
)

// Params are the suggested run settings bundled with a dataset.
type Params struct {
	T0   float64
	T    float64
	NAgg int
	Bins int
}

// Meta describes a canned dataset for listings.
type Meta struct {
	Name  string
	Title string
	Note  string
}

type entry struct {
	meta Meta
	gen  func() (model.Observations, Params)
}

var registry = map[string]entry{
	"constant": {
		meta: Meta{
			Name:  "constant",
			Title: "Synthetic constant-rate process",
			Note:  "Homogeneous Poisson process, rate 10 on [0,10], fixed seed",
		},
		gen: genConstant,
	},
	"ramp": {
		meta: Meta{
			Name:  "ramp",
			Title: "Synthetic ramp process",
			Note:  "Inhomogeneous Poisson process, rate 2+1.6t on [0,10], fixed seed",
		},
		gen: genRamp,
	},
}

// Names returns the canned dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Describe returns the metadata for one canned dataset.
func Describe(name string) (Meta, error) {
	e, ok := registry[name]
	if !ok {
		return Meta{}, errors.Errorf("Unknown dataset %s (know about %v)", name, Names())
	}
	return e.meta, nil
}

// Load materializes a canned dataset with its suggested parameters.
func Load(name string) (model.Observations, Params, error) {
	e, ok := registry[name]
	if !ok {
		return nil, Params{}, errors.Errorf("Unknown dataset %s (know about %v)", name, Names())
	}

	obs, p := e.gen()
	return obs, p, nil
}

// TrueIntensity returns the generating intensity of a canned dataset
// evaluated at the midpoint of every bin of a grid, for scoring
// summaries against the known truth.
func TrueIntensity(name string, g *model.Grid) ([]float64, error) {
	var f func(t float64) float64
	switch name {
	case "constant":
		f = func(t float64) float64 { return 10.0 }
	case "ramp":
		f = func(t float64) float64 { return 2.0 + 1.6*t }
	default:
		return nil, errors.Errorf("No known intensity for dataset %s", name)
	}

	out := make([]float64, g.Bins())
	for k := range out {
		mid := 0.5 * (g.Bound(k) + g.Bound(k+1))
		out[k] = f(mid)
	}
	return out, nil
}
