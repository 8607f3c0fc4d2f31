// Package classify plugs encoded feature matrices into authorship models
// and runs train/test experiments.
package classify

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/encoder"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Model is a supervised classifier over matrix rows. Labels are dense
// author ids as produced by encoder.AuthorEncoder.
type Model interface {
	Fit(x *encoder.Matrix, y []int) error
	Predict(x *encoder.Matrix) ([]int, error)
}

// NearestCentroid assigns each row the label whose mean training row is
// most cosine-similar. Ties go to the lowest label.
type NearestCentroid struct {
	centroids []*mat.VecDense
	norms     []float64
	cols      int
}

func NewNearestCentroid() *NearestCentroid { return &NearestCentroid{} }

func (nc *NearestCentroid) Fit(x *encoder.Matrix, y []int) error {
	if x.Rows() == 0 {
		return apperrors.New(apperrors.ErrEmptyInput, "no training rows")
	}
	if len(y) != x.Rows() {
		return apperrors.Newf(apperrors.ErrInvalidInput, "%d labels for %d rows", len(y), x.Rows())
	}
	if x.Cols() == 0 {
		return apperrors.New(apperrors.ErrInvalidInput, "training matrix has no columns")
	}

	classes := 0
	for _, label := range y {
		if label < 0 {
			return apperrors.Newf(apperrors.ErrInvalidInput, "negative label %d", label)
		}
		classes = max(classes, label+1)
	}
	sums := make([]*mat.VecDense, classes)
	counts := make([]int, classes)
	for c := range sums {
		sums[c] = mat.NewVecDense(x.Cols(), nil)
	}
	for i, label := range y {
		row, err := x.RowVector(i)
		if err != nil {
			return err
		}
		sums[label].AddVec(sums[label], row)
		counts[label]++
	}

	nc.centroids = sums
	nc.norms = make([]float64, classes)
	for c, v := range sums {
		if counts[c] > 0 {
			v.ScaleVec(1/float64(counts[c]), v)
		}
		nc.norms[c] = mat.Norm(v, 2)
	}
	nc.cols = x.Cols()
	return nil
}

func (nc *NearestCentroid) Predict(x *encoder.Matrix) ([]int, error) {
	if nc.centroids == nil {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "model is not fitted")
	}
	if x.Cols() != nc.cols {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "matrix has %d columns, model expects %d", x.Cols(), nc.cols)
	}
	labels := make([]int, x.Rows())
	for i := range labels {
		row, err := x.RowVector(i)
		if err != nil {
			return nil, err
		}
		rowNorm := mat.Norm(row, 2)
		best, bestSim := 0, -2.0
		for c, centroid := range nc.centroids {
			sim := 0.0
			if rowNorm > 0 && nc.norms[c] > 0 {
				sim = mat.Dot(row, centroid) / (rowNorm * nc.norms[c])
			}
			if sim > bestSim {
				best, bestSim = c, sim
			}
		}
		labels[i] = best
	}
	return labels, nil
}
