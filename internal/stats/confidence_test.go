package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZScore(t *testing.T) {
	assert.InDelta(t, 1.645, ZScore(0.90), 1e-9)
	assert.InDelta(t, 1.96, ZScore(0.95), 1e-9)
	assert.InDelta(t, 2.576, ZScore(0.99), 1e-9)

	// unrecognized levels fall back to 95%
	assert.InDelta(t, 1.96, ZScore(0.42), 1e-9)
}

func TestConfidenceInterval(t *testing.T) {
	lower, upper := ConfidenceInterval(100, 10, 0.95)
	assert.InDelta(t, 80.4, lower, 1e-9)
	assert.InDelta(t, 119.6, upper, 1e-9)

	lower, upper = ConfidenceInterval(100, 10, 0.90)
	assert.InDelta(t, 83.55, lower, 1e-9)
	assert.InDelta(t, 116.45, upper, 1e-9)
}

func TestConfidenceInterval_LowerClampedAtZero(t *testing.T) {
	lower, upper := ConfidenceInterval(5, 10, 0.95)
	assert.Zero(t, lower)
	assert.InDelta(t, 24.6, upper, 1e-9)
}

func TestStandardError(t *testing.T) {
	se := StandardError([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.138, se, 0.001)
}

func TestStandardError_DegenerateInputs(t *testing.T) {
	assert.Zero(t, StandardError(nil))
	assert.Zero(t, StandardError([]float64{3}))
	assert.Zero(t, StandardError([]float64{3, 3, 3}))
}
