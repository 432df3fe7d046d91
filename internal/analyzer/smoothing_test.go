package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleMovingAverage(t *testing.T) {
	out := SimpleMovingAverage([]float64{2, 4, 6, 8}, 2)

	require.Len(t, out, 4)
	assert.Equal(t, 2.0, out[0])
	assert.Equal(t, 3.0, out[1])
	assert.Equal(t, 5.0, out[2])
	assert.Equal(t, 7.0, out[3])
}

func TestSimpleMovingAverageBadInput(t *testing.T) {
	assert.Nil(t, SimpleMovingAverage(nil, 3))
	assert.Nil(t, SimpleMovingAverage([]float64{1, 2}, 0))
}

func TestExponentialMovingAverage(t *testing.T) {
	out := ExponentialMovingAverage([]float64{10, 20, 30}, 0.5)

	require.Len(t, out, 3)
	assert.Equal(t, 10.0, out[0])
	assert.Equal(t, 15.0, out[1])
	assert.Equal(t, 22.5, out[2])
}

func TestExponentialMovingAverageBadAlpha(t *testing.T) {
	assert.Nil(t, ExponentialMovingAverage([]float64{1, 2}, 0))
	assert.Nil(t, ExponentialMovingAverage([]float64{1, 2}, 1.5))
}

func TestDetectOutliersIQR(t *testing.T) {
	values := []float64{10, 11, 9, 10, 12, 10, 11, 100}
	outliers := DetectOutliersIQR(values)

	require.Len(t, outliers, 1)
	assert.Equal(t, 7, outliers[0])
}

func TestDetectOutliersIQRCleanSeries(t *testing.T) {
	assert.Empty(t, DetectOutliersIQR([]float64{10, 10, 11, 9, 10, 11}))
	assert.Nil(t, DetectOutliersIQR([]float64{1, 2, 3}))
}
