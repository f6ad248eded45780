package rvea

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/referencevectors"
)

// Select performs the angle-penalized distance environmental selection.
//
// Every candidate is translated by the per-objective minimum of the pool and
// assigned to the reference vector it is closest to in angle. Within each
// region the candidate with the lowest APD survives. progress is the
// fraction of the run elapsed, in [0, 1], and alpha the penalty exponent.
//
// The returned indices refer to points and are ordered by the reference
// vector they survived in. Candidates with non-finite objectives or the
// wrong number of objectives never survive.
func Select(points []framework.ObjectiveSpacePoint, vectors *referencevectors.Set, progress, alpha float64) []int {
	numObjectives := vectors.Dim()

	valid := make([]int, 0, len(points))
	for i, p := range points {
		if len(p) == numObjectives && finitePoint(p) {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	candidates := make([]framework.ObjectiveSpacePoint, len(valid))
	for k, i := range valid {
		candidates[k] = points[i]
	}
	translated := translate(candidates, numObjectives)
	assignment, cosine := Assign(translated, vectors.Values)

	best := make([]int, vectors.Len())
	bestAPD := make([]float64, vectors.Len())
	for i := range best {
		best[i] = -1
	}

	for k, region := range assignment {
		angle := math.Acos(cosine[k])
		apd := APD(floats.Norm(translated[k], 2), angle, vectors.NeighborAngles[region], numObjectives, progress, alpha)
		if best[region] == -1 || apd < bestAPD[region] {
			best[region] = k
			bestAPD[region] = apd
		}
	}

	survivors := make([]int, 0, vectors.Len())
	for _, k := range best {
		if k != -1 {
			survivors = append(survivors, valid[k])
		}
	}
	return survivors
}

// Assign returns, for every translated point, the index of the reference
// vector with the largest cosine and that cosine clamped to [-1, 1]. Ties go
// to the lowest vector index. The assignment depends only on the direction
// of each point; a point at the origin has cosine 0 with every vector and is
// assigned to vector 0.
func Assign(points []framework.ObjectiveSpacePoint, vectors [][]float64) ([]int, []float64) {
	assignment := make([]int, len(points))
	cosine := make([]float64, len(points))
	if len(points) == 0 {
		return assignment, cosine
	}

	directions := make([][]float64, len(points))
	for k, p := range points {
		directions[k] = referencevectors.Normalize(p)
	}
	cos := referencevectors.Cosines(directions, vectors)

	row := make([]float64, len(vectors))
	for k := range points {
		mat.Row(row, k, cos)
		region := floats.MaxIdx(row)
		assignment[k] = region
		cosine[k] = referencevectors.ClampCosine(row[region])
	}
	return assignment, cosine
}

// APD computes the angle-penalized distance of a candidate at distance norm
// from the ideal point and angle radians away from a reference vector whose
// closest neighbour is neighborAngle radians away.
func APD(norm, angle, neighborAngle float64, numObjectives int, progress, alpha float64) float64 {
	penalty := float64(numObjectives) * math.Pow(progress, alpha) * (angle / neighborAngle)
	return (1 + penalty) * norm
}

// translate subtracts the component-wise minimum of points from each point.
func translate(points []framework.ObjectiveSpacePoint, numObjectives int) []framework.ObjectiveSpacePoint {
	zmin := make([]float64, numObjectives)
	for j := range zmin {
		zmin[j] = math.Inf(1)
	}
	for _, p := range points {
		for j, v := range p {
			zmin[j] = math.Min(zmin[j], v)
		}
	}

	translated := make([]framework.ObjectiveSpacePoint, len(points))
	for k, p := range points {
		t := make(framework.ObjectiveSpacePoint, numObjectives)
		floats.SubTo(t, p, zmin)
		translated[k] = t
	}
	return translated
}

func finitePoint(p framework.ObjectiveSpacePoint) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
