package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWarmUpDropsEvent(t *testing.T) {
	var (
		norm  *Normalizer = NewNormalizer(NormalizerConfig{IGN: 2}, []uint16{0})
		ok    bool
	)

	_, ok = norm.Normalize(0, 400, 0, 1000)
	assert.False(t, ok)

	_, ok = norm.Normalize(0, 400, 0, 1000)
	assert.False(t, ok)

	_, ok = norm.Normalize(0, 400, 0, 1000)
	assert.True(t, ok)
}

func TestNormalizeRescaleAfterCoverage(t *testing.T) {
	var (
		norm  *Normalizer = NewNormalizer(NormalizerConfig{RNG: 5}, []uint16{0})
		value int32
		ok    bool
	)

	value, ok = norm.Normalize(0, 400, 0, 1000)
	assert.True(t, ok)
	assert.Equal(t, int32(400), value)

	value, ok = norm.Normalize(0, 600, 0, 1000)
	assert.True(t, ok)
	assert.Equal(t, int32(600), value)

	value, ok = norm.Normalize(0, 500, 0, 1000)
	assert.True(t, ok)
	assert.Equal(t, int32(500), value)
}

func TestNormalizeIdempotenceOnceReady(t *testing.T) {
	var (
		norm   *Normalizer = NewNormalizer(NormalizerConfig{}, []uint16{0})
		first  int32
		second int32
	)

	norm.Normalize(0, 400, 0, 1000)
	norm.Normalize(0, 600, 0, 1000)
	first, _ = norm.Normalize(0, 600, 0, 1000)

	second, _ = norm.Normalize(0, 600, 0, 1000)
	assert.Equal(t, first, second)
}

func TestNormalizeSpikeGateRejects(t *testing.T) {
	var (
		norm *Normalizer = NewNormalizer(NormalizerConfig{SPK: 2, SPKMIN: 0}, []uint16{0})
		ok   bool
	)

	norm.Normalize(0, 400, 0, 1000)
	norm.Normalize(0, 420, 0, 1000)

	_, ok = norm.Normalize(0, 2000, 0, 1000)
	assert.False(t, ok)
}

func TestNormalizeMonotoneRangeWidening(t *testing.T) {
	var (
		norm *Normalizer = NewNormalizer(NormalizerConfig{}, []uint16{0})
		axis *axisState
	)

	norm.Normalize(0, 400, 0, 1000)
	norm.Normalize(0, 600, 0, 1000)

	axis = norm.axes[0]
	assert.Equal(t, int32(400), axis.rmin)
	assert.Equal(t, int32(600), axis.rmax)

	norm.Normalize(0, 500, 0, 1000)
	assert.Equal(t, int32(400), axis.rmin)
	assert.Equal(t, int32(600), axis.rmax)

	norm.Normalize(0, 300, 0, 1000)
	assert.Equal(t, int32(300), axis.rmin)
}
