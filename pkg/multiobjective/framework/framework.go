package framework

import (
	"math"
	"math/rand/v2"
)

type Bounds struct {
	L float64
	H float64
}

// Variable declares one slot of a decision vector. A free slot moves within
// Bounds, a fixed slot always holds Value.
type Variable struct {
	Name   string
	Bounds Bounds
	Fixed  bool
	Value  float64
}

// FreeVariable returns a slot that may take any value in [l, h].
func FreeVariable(name string, l, h float64) Variable {
	return Variable{
		Name:   name,
		Bounds: Bounds{L: l, H: h},
	}
}

// FixedVariable returns a slot pinned to value.
func FixedVariable(name string, value float64) Variable {
	return Variable{
		Name:   name,
		Bounds: Bounds{L: value, H: value},
		Fixed:  true,
		Value:  value,
	}
}

func (v Variable) IsFree() bool {
	return !v.Fixed
}

// Clamp returns x restricted to the slot. Fixed slots always return Value.
func (v Variable) Clamp(x float64) float64 {
	if v.Fixed {
		return v.Value
	}
	return math.Max(v.Bounds.L, math.Min(v.Bounds.H, x))
}

// Sample draws a value uniformly within the bounds of a free slot.
func (v Variable) Sample(rng *rand.Rand) float64 {
	if v.Fixed {
		return v.Value
	}
	return v.Bounds.L + rng.Float64()*(v.Bounds.H-v.Bounds.L)
}

// Width is the extent of the slot, zero for fixed slots.
func (v Variable) Width() float64 {
	if v.Fixed {
		return 0
	}
	return v.Bounds.H - v.Bounds.L
}

// UniformVariables returns n free slots sharing the same bounds.
func UniformVariables(n int, l, h float64) []Variable {
	vars := make([]Variable, n)
	for i := range n {
		vars[i] = FreeVariable("", l, h)
	}
	return vars
}

// FreeCount returns the number of free slots.
func FreeCount(vars []Variable) int {
	n := 0
	for _, v := range vars {
		if v.IsFree() {
			n++
		}
	}
	return n
}
