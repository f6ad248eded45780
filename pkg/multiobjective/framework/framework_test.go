package framework

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableClamp(t *testing.T) {
	free := FreeVariable("x", -1, 2)
	assert.Equal(t, -1.0, free.Clamp(-5))
	assert.Equal(t, 2.0, free.Clamp(7))
	assert.Equal(t, 0.5, free.Clamp(0.5))

	fixed := FixedVariable("k", 3)
	assert.Equal(t, 3.0, fixed.Clamp(-5))
	assert.Equal(t, 3.0, fixed.Clamp(3.5))
	assert.False(t, fixed.IsFree())
	assert.Zero(t, fixed.Width())
}

func TestVariableSample(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	free := FreeVariable("x", 10, 20)
	fixed := FixedVariable("k", 0.25)
	for range 1000 {
		v := free.Sample(rng)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 20.0)
		assert.Equal(t, 0.25, fixed.Sample(rng))
	}
}

func TestFreeCount(t *testing.T) {
	vars := append(UniformVariables(4, 0, 1), FixedVariable("a", 1), FixedVariable("b", 2))
	assert.Equal(t, 4, FreeCount(vars))
}
