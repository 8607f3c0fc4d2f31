package features

import (
	"math"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

const symmetryTolerance = 1e-12

// Weights is a symmetric weighting window of odd length. Position Center()
// is the center token; the other positions weigh its association with the
// tokens around it.
type Weights struct {
	values []float64
}

func NewWeights(values ...float64) (Weights, error) {
	n := len(values)
	if n == 0 || n%2 == 0 {
		return Weights{}, apperrors.Newf(apperrors.ErrConfiguration, "weighting window needs an odd length, got %d", n)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, apperrors.Newf(apperrors.ErrConfiguration, "weight %d is not finite", i)
		}
		if math.Abs(v-values[n-1-i]) > symmetryTolerance {
			return Weights{}, apperrors.Newf(apperrors.ErrConfiguration,
				"weighting window is not symmetric: w[%d]=%g, w[%d]=%g", i, v, n-1-i, values[n-1-i])
		}
	}
	return Weights{values: slices.Clone(values)}, nil
}

// UniformWeights gives every position of a window of size n the weight 1/n.
func UniformWeights(n int) (Weights, error) {
	if n <= 0 {
		return Weights{}, apperrors.Newf(apperrors.ErrConfiguration, "window size must be positive, got %d", n)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = 1 / float64(n)
	}
	return NewWeights(values...)
}

// TriangularWeights rises linearly towards the center and falls back
// symmetrically, normalised to sum 1.
func TriangularWeights(n int) (Weights, error) {
	if n <= 0 {
		return Weights{}, apperrors.Newf(apperrors.ErrConfiguration, "window size must be positive, got %d", n)
	}
	values := make([]float64, n)
	var sum float64
	for i := range values {
		values[i] = float64(min(i, n-1-i) + 1)
		sum += values[i]
	}
	for i := range values {
		values[i] /= sum
	}
	return NewWeights(values...)
}

func (w Weights) Len() int { return len(w.values) }

func (w Weights) Center() int { return len(w.values) / 2 }

func (w Weights) At(i int) float64 { return w.values[i] }

func (w Weights) Values() []float64 { return slices.Clone(w.values) }

func (w Weights) String() string {
	parts := make([]string, len(w.values))
	for i, v := range w.values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
