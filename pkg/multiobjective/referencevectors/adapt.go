package referencevectors

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

// Adapt rescales the original lattice by the objective ranges observed in
// points and renormalises it, then recomputes the neighbour angles.
//
// The adaptation is skipped, and false returned, when points is empty, an
// objective has a zero or non-finite range, or the rescaled vectors would be
// closer than minNeighborAngle to each other. The set is left unchanged then.
func (s *Set) Adapt(points []framework.ObjectiveSpacePoint) (bool, error) {
	if len(points) == 0 {
		return false, nil
	}
	zmin, zmax, err := Extremes(points, s.Dim())
	if err != nil {
		return false, err
	}

	scale := make([]float64, len(zmin))
	floats.SubTo(scale, zmax, zmin)
	for _, r := range scale {
		if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
			return false, nil
		}
	}

	values := make([][]float64, len(s.planar))
	for i, w := range s.planar {
		v := make([]float64, len(w))
		floats.MulTo(v, w, scale)
		values[i] = Normalize(v)
	}
	angles := NeighborAngles(values)
	for _, a := range angles {
		if a < minNeighborAngle {
			return false, nil
		}
	}
	s.Values = values
	s.NeighborAngles = angles
	return true, nil
}

// Extremes returns the component-wise minimum and maximum of points.
func Extremes(points []framework.ObjectiveSpacePoint, dim int) (zmin, zmax []float64, err error) {
	zmin = make([]float64, dim)
	zmax = make([]float64, dim)
	for j := range dim {
		zmin[j] = math.Inf(1)
		zmax[j] = math.Inf(-1)
	}
	for i, p := range points {
		if len(p) != dim {
			return nil, nil, fmt.Errorf("point %d has %d objectives, want %d", i, len(p), dim)
		}
		for j, v := range p {
			zmin[j] = math.Min(zmin[j], v)
			zmax[j] = math.Max(zmax[j], v)
		}
	}
	return zmin, zmax, nil
}
