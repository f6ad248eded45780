package benchmarks

import (
	"math"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/referencevectors"
)

const (
	DTLZ1Name = "DTLZ1"
	DTLZ2Name = "DTLZ2"
)

// DTLZ1 has a linear Pareto front on the simplex sum(f_i) = 0.5 and
// 11^k - 1 local fronts.
type DTLZ1 struct {
	numVars       int
	numObjectives int
}

// NewDTLZ1 creates the problem; numVars = numObjectives + k - 1 with k = 5
// is the usual setting.
func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	return &DTLZ1{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ1) Name() string {
	return DTLZ1Name
}

func (p *DTLZ1) Variables() []framework.Variable {
	return framework.UniformVariables(p.numVars, 0, 1)
}

func (p *DTLZ1) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := 0; i < p.numObjectives; i++ {
		funcs[i] = func(x []float64) float64 {
			return p.objective(x, i)
		}
	}
	return funcs
}

func (p *DTLZ1) g(x []float64) float64 {
	k := float64(p.numVars - p.numObjectives + 1)
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		d := x[i] - 0.5
		sum += d*d - math.Cos(20*math.Pi*d)
	}
	return 100 * (k + sum)
}

func (p *DTLZ1) objective(x []float64, objIdx int) float64 {
	f := 0.5 * (1 + p.g(x))
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= x[i]
	}
	if objIdx > 0 {
		f *= 1 - x[p.numObjectives-objIdx-1]
	}
	return f
}

// TrueParetoFront samples the simplex sum(f_i) = 0.5 on a lattice with at
// least numPoints points.
func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	lattice := referencevectors.SimplexLattice(p.numObjectives, latticeDivisionsFor(p.numObjectives, numPoints))
	points := make([]framework.ObjectiveSpacePoint, len(lattice))
	for i, w := range lattice {
		point := make(framework.ObjectiveSpacePoint, len(w))
		for j := range w {
			point[j] = 0.5 * w[j]
		}
		points[i] = point
	}
	return points
}

// DTLZ2 has a spherical Pareto front
// It's easier than DTLZ1 as it has no local fronts
type DTLZ2 struct {
	numVars       int
	numObjectives int
}

func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	// Recommended: numVars = numObjectives + k - 1, where k = 10 for DTLZ2
	return &DTLZ2{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ2) Name() string {
	return DTLZ2Name
}

func (p *DTLZ2) Variables() []framework.Variable {
	return framework.UniformVariables(p.numVars, 0, 1)
}

func (p *DTLZ2) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := 0; i < p.numObjectives; i++ {
		funcs[i] = func(x []float64) float64 {
			return p.objective(x, i)
		}
	}
	return funcs
}

func (p *DTLZ2) g(x []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2)
	}
	return sum
}

func (p *DTLZ2) objective(x []float64, objIdx int) float64 {
	f := 1 + p.g(x)

	// Product of cos terms
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= math.Cos(x[i] * math.Pi / 2)
	}

	// Last term is sin for all objectives except the first
	if objIdx > 0 {
		f *= math.Sin(x[p.numObjectives-objIdx-1] * math.Pi / 2)
	}

	return f
}

// TrueParetoFront samples the positive part of the unit sphere by projecting
// a simplex lattice with at least numPoints points onto it.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	lattice := referencevectors.SimplexLattice(p.numObjectives, latticeDivisionsFor(p.numObjectives, numPoints))
	points := make([]framework.ObjectiveSpacePoint, len(lattice))
	for i, w := range lattice {
		points[i] = referencevectors.Normalize(w)
	}
	return points
}

// latticeDivisionsFor returns the smallest division whose simplex lattice
// holds at least numPoints points.
func latticeDivisionsFor(numObjectives, numPoints int) int {
	divisions := 1
	for referencevectors.Count(numObjectives, divisions, 0) < numPoints {
		divisions++
	}
	return divisions
}
