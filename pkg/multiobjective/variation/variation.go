package variation

import (
	"math"
	"math/rand/v2"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

const (
	DefaultCrossoverProbability       = 1.0
	DefaultCrossoverDistributionIndex = 30.0
	DefaultMutationDistributionIndex  = 20.0
)

// Operator builds mating pools by random pairing and produces offspring with
// simulated binary crossover followed by polynomial mutation. Offspring
// always respect the variable bounds and fixed slots.
type Operator struct {
	CrossoverProbability       float64
	CrossoverDistributionIndex float64
	// MutationProbability is the per-variable mutation probability.
	MutationProbability       float64
	MutationDistributionIndex float64

	variables []framework.Variable
	rng       *rand.Rand
}

// New creates an operator for the given variables with the default
// parameters; the mutation probability defaults to one over the number of
// free variables.
func New(variables []framework.Variable, rng *rand.Rand) *Operator {
	o := &Operator{
		CrossoverProbability:       DefaultCrossoverProbability,
		CrossoverDistributionIndex: DefaultCrossoverDistributionIndex,
		MutationDistributionIndex:  DefaultMutationDistributionIndex,
		variables:                  variables,
		rng:                        rng,
	}
	if n := framework.FreeCount(variables); n > 0 {
		o.MutationProbability = 1 / float64(n)
	}
	return o
}

// MatingPool returns a random permutation of the population indices. When the
// population size is odd, one randomly chosen index is appended again so that
// every entry has a partner.
func (o *Operator) MatingPool(population []framework.Individual) []int {
	n := len(population)
	if n == 0 {
		return nil
	}
	pool := o.rng.Perm(n)
	if n%2 == 1 {
		pool = append(pool, o.rng.IntN(n))
	}
	return pool
}

// Reproduce mates consecutive entries of pool and returns two offspring per
// pair. A trailing unpaired entry is ignored.
func (o *Operator) Reproduce(pool []int, population []framework.Individual) [][]float64 {
	offspring := make([][]float64, 0, len(pool))
	for k := 0; k+1 < len(pool); k += 2 {
		child1, child2 := o.Crossover(population[pool[k]].Variables, population[pool[k+1]].Variables)
		o.Mutate(child1)
		o.Mutate(child2)
		offspring = append(offspring, child1, child2)
	}
	return offspring
}

// Crossover performs bounded SBX (Simulated Binary Crossover) on copies of
// the parents.
func (o *Operator) Crossover(parent1, parent2 []float64) ([]float64, []float64) {
	child1 := o.fix(append([]float64(nil), parent1...))
	child2 := o.fix(append([]float64(nil), parent2...))

	if o.rng.Float64() >= o.CrossoverProbability {
		return child1, child2
	}

	eta := o.CrossoverDistributionIndex
	for i, v := range o.variables {
		if !v.IsFree() || o.rng.Float64() > 0.5 {
			continue
		}
		if math.Abs(parent1[i]-parent2[i]) <= 1e-14 {
			continue
		}

		y1, y2 := math.Min(parent1[i], parent2[i]), math.Max(parent1[i], parent2[i])
		yl, yu := v.Bounds.L, v.Bounds.H
		u := o.rng.Float64()

		beta := 1 + 2*(y1-yl)/(y2-y1)
		c1 := 0.5 * ((y1 + y2) - sbxSpread(u, beta, eta)*(y2-y1))
		beta = 1 + 2*(yu-y2)/(y2-y1)
		c2 := 0.5 * ((y1 + y2) + sbxSpread(u, beta, eta)*(y2-y1))

		c1, c2 = v.Clamp(c1), v.Clamp(c2)
		if o.rng.Float64() <= 0.5 {
			c1, c2 = c2, c1
		}
		child1[i], child2[i] = c1, c2
	}
	return child1, child2
}

// Mutate applies bounded polynomial mutation in place.
func (o *Operator) Mutate(x []float64) {
	eta := o.MutationDistributionIndex
	power := 1 / (eta + 1)
	for i, v := range o.variables {
		if !v.IsFree() {
			x[i] = v.Value
			continue
		}
		if o.rng.Float64() >= o.MutationProbability {
			continue
		}
		width := v.Width()
		if width <= 0 {
			continue
		}

		delta1 := (x[i] - v.Bounds.L) / width
		delta2 := (v.Bounds.H - x[i]) / width
		r := o.rng.Float64()

		var deltaq float64
		if r < 0.5 {
			val := 2*r + (1-2*r)*math.Pow(1-delta1, eta+1)
			deltaq = math.Pow(val, power) - 1
		} else {
			val := 2*(1-r) + 2*(r-0.5)*math.Pow(1-delta2, eta+1)
			deltaq = 1 - math.Pow(val, power)
		}
		x[i] = v.Clamp(x[i] + deltaq*width)
	}
}

// fix forces fixed slots to their values.
func (o *Operator) fix(x []float64) []float64 {
	for i, v := range o.variables {
		if !v.IsFree() {
			x[i] = v.Value
		}
	}
	return x
}

// sbxSpread returns the spread factor for a uniform draw u, bounded by how far
// the parents are from the variable bound (beta).
func sbxSpread(u, beta, eta float64) float64 {
	alpha := 2 - math.Pow(beta, -(eta + 1))
	if u <= 1/alpha {
		return math.Pow(u*alpha, 1/(eta+1))
	}
	return math.Pow(1/(2-u*alpha), 1/(eta+1))
}
