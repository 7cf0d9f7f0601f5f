package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBinCounts(t *testing.T) {
	assert := assert.New(t)

	g, err := UniformGrid(0.0, 3.0, 3)
	assert.NoError(err)

	// Bins are [0,1), [1,2), [2,3]: two, two, and one event.
	counts, err := BinCounts(Observations{0.5, 1.2, 1.9, 2.3, 2.8}, g)
	assert.NoError(err)
	assert.Equal([]int{2, 2, 1}, counts)
	assert.Equal(5, TotalEvents(counts))
}

func TestBinCountsBoundaries(t *testing.T) {
	assert := assert.New(t)

	g, err := UniformGrid(0.0, 3.0, 3)
	assert.NoError(err)

	// An interior boundary belongs to the bin on its right; the top of
	// the window belongs to the last bin.
	counts, err := BinCounts(Observations{0.0, 1.0, 2.0, 3.0}, g)
	assert.NoError(err)
	assert.Equal([]int{1, 1, 2}, counts)
}

func TestBinCountsEmpty(t *testing.T) {
	assert := assert.New(t)

	g, err := UniformGrid(0.0, 2.0, 4)
	assert.NoError(err)

	counts, err := BinCounts(Observations{}, g)
	assert.NoError(err)
	assert.Equal([]int{0, 0, 0, 0}, counts)
}

func TestBinCountsTotal(t *testing.T) {
	assert := assert.New(t)

	g, err := UniformGrid(0.0, 10.0, 7)
	assert.NoError(err)

	obs := Observations{0.01, 0.02, 1.5, 1.5, 4.0, 7.77, 9.999, 10.0}
	counts, err := BinCounts(obs, g)
	assert.NoError(err)
	assert.Equal(len(obs), TotalEvents(counts))
}

func TestBinCountsRejectsBadInput(t *testing.T) {
	assert := assert.New(t)

	g, err := UniformGrid(0.0, 3.0, 3)
	assert.NoError(err)

	var oe *InvalidObservationError

	counts, err := BinCounts(Observations{1.0, 0.5}, g)
	assert.Nil(counts)
	assert.True(errors.As(err, &oe))
	assert.Equal(1, oe.Index)

	counts, err = BinCounts(Observations{-0.1, 0.5}, g)
	assert.Nil(counts)
	assert.True(errors.As(err, &oe))
	assert.Equal(0, oe.Index)

	counts, err = BinCounts(Observations{0.5, 3.5}, g)
	assert.Nil(counts)
	assert.True(errors.As(err, &oe))
	assert.Equal(3.5, oe.Value)
}

func TestObservationsMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.0, Observations{}.Max())
	assert.Equal(3.5, Observations{0.1, 3.5, 2.0}.Max())
	assert.Equal(-1.0, Observations{-4.0, -1.0}.Max())
}
