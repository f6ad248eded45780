package benchmarks

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

func evaluate(p framework.Problem, x []float64) []float64 {
	funcs := p.ObjectiveFuncs()
	objs := make([]float64, len(funcs))
	for i, f := range funcs {
		objs[i] = f(x)
	}
	return objs
}

// optimal returns a random decision vector whose distance variables are at
// their optimum of 0.5.
func optimal(rng *rand.Rand, numVars, numObjectives int) []float64 {
	x := make([]float64, numVars)
	for i := range x {
		if i < numObjectives-1 {
			x[i] = rng.Float64()
		} else {
			x[i] = 0.5
		}
	}
	return x
}

func TestZDT1(t *testing.T) {
	p := NewZDT1(30)
	assert.Equal(t, ZDT1Name, p.Name())
	assert.Len(t, p.Variables(), 30)

	x := make([]float64, 30)
	x[0] = 0.25
	objs := evaluate(p, x)
	assert.InDelta(t, 0.25, objs[0], 1e-12)
	assert.InDelta(t, 0.5, objs[1], 1e-12)

	front := p.TrueParetoFront(11)
	require.Len(t, front, 11)
	assert.Equal(t, framework.ObjectiveSpacePoint{0, 1}, front[0])
	assert.InDelta(t, 0.0, front[10][1], 1e-12)
}

func TestDTLZ1OptimalFrontIsSimplex(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	p := NewDTLZ1(7, 3)
	for range 20 {
		objs := evaluate(p, optimal(rng, 7, 3))
		assert.InDelta(t, 0.5, floats.Sum(objs), 1e-9)
	}

	front := p.TrueParetoFront(20)
	assert.GreaterOrEqual(t, len(front), 20)
	for _, f := range front {
		assert.InDelta(t, 0.5, floats.Sum(f), 1e-12)
	}
}

func TestDTLZ1LocalFronts(t *testing.T) {
	p := NewDTLZ1(7, 3)
	x := []float64{0.3, 0.6, 0.1, 0.1, 0.1, 0.1, 0.1}
	objs := evaluate(p, x)
	assert.Greater(t, floats.Sum(objs), 0.5)
}

func TestDTLZ2OptimalFrontIsSphere(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	p := NewDTLZ2(12, 3)
	assert.Equal(t, DTLZ2Name, p.Name())
	for range 20 {
		objs := evaluate(p, optimal(rng, 12, 3))
		assert.InDelta(t, 1.0, floats.Norm(objs, 2), 1e-9)
		for _, f := range objs {
			assert.GreaterOrEqual(t, f, 0.0)
		}
	}

	for _, f := range p.TrueParetoFront(50) {
		assert.InDelta(t, 1.0, floats.Norm(f, 2), 1e-12)
	}
}

func TestDTLZ2Extremes(t *testing.T) {
	p := NewDTLZ2(4, 2)
	objs := evaluate(p, []float64{0, 0.5, 0.5, 0.5})
	assert.InDelta(t, 1.0, objs[0], 1e-12)
	assert.InDelta(t, 0.0, objs[1], 1e-12)

	objs = evaluate(p, []float64{1, 0.5, 0.5, 0.5})
	assert.InDelta(t, 0.0, objs[0], 1e-12)
	assert.InDelta(t, 1.0, objs[1], 1e-12)
	assert.False(t, math.IsNaN(objs[0]))
}
