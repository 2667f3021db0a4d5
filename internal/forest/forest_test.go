package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableData() ([][]float64, []int) {
	var x [][]float64
	var y []int
	for i := 0; i < 20; i++ {
		x = append(x, []float64{float64(i), float64(i % 3)})
		if i < 10 {
			y = append(y, 0)
		} else {
			y = append(y, 1)
		}
	}
	return x, y
}

func TestClassifier_LearnsSeparableSplit(t *testing.T) {
	x, y := separableData()
	c := NewClassifier(DefaultConfig())
	require.NoError(t, c.Fit(x, y))

	assert.Equal(t, []int{0, 1}, c.Classes())

	low, err := c.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, low)

	high, err := c.Predict([]float64{18, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, high)

	proba, err := c.PredictProba([]float64{18, 0})
	require.NoError(t, err)
	require.Len(t, proba, 2)
	assert.InDelta(t, 1.0, proba[0]+proba[1], 1e-9)
	assert.Greater(t, proba[1], proba[0])
}

func TestClassifier_Deterministic(t *testing.T) {
	x, y := separableData()
	y[4], y[15] = 1, 0 // add noise so trees disagree

	a := NewClassifier(DefaultConfig())
	b := NewClassifier(DefaultConfig())
	require.NoError(t, a.Fit(x, y))
	require.NoError(t, b.Fit(x, y))

	for _, q := range [][]float64{{4, 1}, {15, 0}, {9.5, 2}} {
		pa, err := a.PredictProba(q)
		require.NoError(t, err)
		pb, err := b.PredictProba(q)
		require.NoError(t, err)
		assert.Equal(t, pa, pb, "same seed must give the same forest")
	}
}

func TestClassifier_SingleClass(t *testing.T) {
	c := NewClassifier(Config{Trees: 5})
	require.NoError(t, c.Fit([][]float64{{1}, {2}, {3}}, []int{-1, -1, -1}))
	got, err := c.Predict([]float64{10})
	require.NoError(t, err)
	assert.Equal(t, -1, got)
}

func TestClassifier_Errors(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	_, err := c.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, c.Fit(nil, nil), ErrNoData)
	assert.ErrorIs(t, c.Fit([][]float64{{1}}, []int{1, 2}), ErrNoData)
	assert.ErrorIs(t, c.Fit([][]float64{{1}, {1, 2}}, []int{1, 2}), ErrDimension)

	require.NoError(t, c.Fit([][]float64{{1}, {2}}, []int{0, 1}))
	_, err = c.Predict([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestRegressor_FitsStepFunction(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 30; i++ {
		x = append(x, []float64{float64(i)})
		if i < 15 {
			y = append(y, 1.0)
		} else {
			y = append(y, 5.0)
		}
	}
	r := NewRegressor(DefaultConfig())
	require.NoError(t, r.Fit(x, y))

	low, err := r.Predict([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, low, 0.5)

	high, err := r.Predict([]float64{28})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, high, 0.5)
}

func TestRegressor_ConstantTarget(t *testing.T) {
	r := NewRegressor(Config{Trees: 10, Seed: 7})
	require.NoError(t, r.Fit([][]float64{{1, 2}, {3, 4}, {5, 6}}, []float64{2, 2, 2}))
	got, err := r.Predict([]float64{100, 100})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}
