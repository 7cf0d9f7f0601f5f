package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularFloat(t *testing.T) {
	assert := assert.New(t)

	cf := NewCircularFloat(6)
	assert.Equal(6, cf.BufSize)
	assert.Equal(0, cf.Count)

	cf.Add(1)
	cf.Add(2)
	cf.Add(3)
	cf.Add(4)
	cf.Add(5)
	assert.Equal(6, cf.BufSize)
	assert.Equal(5, cf.Count)
	assert.Nil(cf.FirstHalf())
	assert.Nil(cf.SecondHalf())

	cf.Add(6)
	assert.Equal(6, cf.BufSize)
	assert.Equal(6, cf.Count)

	exp := 0.0
	for iter := cf.FirstHalf(); iter.Next(); {
		val := iter.Value()
		exp++
		assert.Equal(exp, val)
	}
	for iter := cf.SecondHalf(); iter.Next(); {
		val := iter.Value()
		exp++
		assert.Equal(exp, val)
	}

	// 1 2 3 4 5 6 add 8 add 8 => 8 8 3 4 5 6
	// So first=3,4,5 second=6,8,8
	cf.Add(8)
	cf.Add(8)
	expVals := []float64{3, 4, 5, 6, 8, 8}
	idx := 0
	for iter := cf.FirstHalf(); iter.Next(); {
		val := iter.Value()
		exp := expVals[idx]
		idx++
		assert.Equal(exp, val)
	}
	for iter := cf.SecondHalf(); iter.Next(); {
		val := iter.Value()
		exp := expVals[idx]
		idx++
		assert.Equal(exp, val)
	}
}

func TestCircularFloatMean(t *testing.T) {
	assert := assert.New(t)

	cf := NewCircularFloat(4)
	assert.Equal(0.0, cf.Mean())

	// Partial fill averages only what is present.
	cf.Add(1)
	cf.Add(0)
	assert.InEpsilon(0.5, cf.Mean(), 1e-12)

	cf.Add(1)
	cf.Add(1)
	assert.InEpsilon(0.75, cf.Mean(), 1e-12)

	// Wrapping: 1 0 1 1 add 0 add 0 => window is 1 1 0 0
	cf.Add(0)
	cf.Add(0)
	assert.InEpsilon(0.5, cf.Mean(), 1e-12)
	assert.Equal(int64(6), cf.TotalSeen)
}

func TestCircularFloatHalfMeans(t *testing.T) {
	assert := assert.New(t)

	cf := NewCircularFloat(4)
	cf.Add(1)
	cf.Add(1)
	_, _, ok := cf.HalfMeans()
	assert.False(ok)

	cf.Add(0)
	cf.Add(1)
	first, second, ok := cf.HalfMeans()
	assert.True(ok)
	assert.InEpsilon(1.0, first, 1e-12)
	assert.InEpsilon(0.5, second, 1e-12)
}
