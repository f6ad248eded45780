package indicators

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/referencevectors"
)

// IGD is the inverted generational distance: the mean Euclidean distance from
// every reference point to its closest point of front. It returns +Inf for an
// empty front.
func IGD(front, reference []framework.ObjectiveSpacePoint) float64 {
	if len(front) == 0 {
		return math.Inf(1)
	}
	if len(reference) == 0 {
		return 0
	}

	distances := make([]float64, len(reference))
	for i, r := range reference {
		best := math.Inf(1)
		for _, p := range front {
			best = math.Min(best, floats.Distance(r, p, 2))
		}
		distances[i] = best
	}
	return stat.Mean(distances, nil)
}

// NearestNeighborAngle returns the mean, over the points, of the angle
// between a point's direction and the closest direction of any other point.
// Directions are taken relative to the component-wise minimum of the points.
// Larger values mean the points are spread more evenly over the directions.
func NearestNeighborAngle(points []framework.ObjectiveSpacePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	dim := len(points[0])
	zmin, _, err := referencevectors.Extremes(points, dim)
	if err != nil {
		return math.NaN()
	}

	directions := make([][]float64, len(points))
	for i, p := range points {
		d := make([]float64, dim)
		floats.SubTo(d, p, zmin)
		directions[i] = referencevectors.Normalize(d)
	}

	cos := referencevectors.Cosines(directions, directions)
	angles := make([]float64, len(points))
	row := make([]float64, len(points))
	for i := range points {
		mat.Row(row, i, cos)
		row[i] = math.Inf(-1)
		angles[i] = math.Acos(referencevectors.ClampCosine(floats.Max(row)))
	}
	return stat.Mean(angles, nil)
}
