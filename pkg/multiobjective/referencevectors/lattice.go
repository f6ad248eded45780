package referencevectors

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// Count returns the number of vectors a two-layer simplex lattice holds for
// numObjectives objectives, an outer layer of division outer and an optional
// inner layer of division inner (0 disables it).
func Count(numObjectives, outer, inner int) int {
	if numObjectives < 1 || outer < 1 {
		return 0
	}
	n := combin.Binomial(outer+numObjectives-1, numObjectives-1)
	if inner > 0 {
		n += combin.Binomial(inner+numObjectives-1, numObjectives-1)
	}
	return n
}

// SimplexLattice enumerates every weight vector w with w_i = k_i/divisions,
// k_i >= 0 integers and sum(k_i) = divisions.
//
// Each lattice point corresponds to choosing numObjectives-1 "bar" positions
// among divisions+numObjectives-1 slots; the gaps between bars are the k_i.
func SimplexLattice(numObjectives, divisions int) [][]float64 {
	if numObjectives == 1 {
		return [][]float64{{1}}
	}
	slots := divisions + numObjectives - 1
	bars := combin.Combinations(slots, numObjectives-1)

	lattice := make([][]float64, len(bars))
	for i, c := range bars {
		w := make([]float64, numObjectives)
		prev := -1
		for j, bar := range c {
			w[j] = float64(bar-prev-1) / float64(divisions)
			prev = bar
		}
		w[numObjectives-1] = float64(slots-prev-1) / float64(divisions)
		lattice[i] = w
	}
	return lattice
}

// TwoLayerLattice builds the planar (sum-to-one) lattice: the outer layer
// followed by the inner layer shrunk halfway towards the simplex centroid.
func TwoLayerLattice(numObjectives, outer, inner int) ([][]float64, error) {
	if numObjectives < 2 {
		return nil, fmt.Errorf("need at least 2 objectives, got %d", numObjectives)
	}
	if outer < 1 {
		return nil, fmt.Errorf("outer lattice division must be positive, got %d", outer)
	}
	if inner < 0 {
		return nil, fmt.Errorf("inner lattice division must not be negative, got %d", inner)
	}

	lattice := SimplexLattice(numObjectives, outer)
	if inner == 0 {
		return lattice, nil
	}

	shift := 1 / (2 * float64(numObjectives))
	for _, w := range SimplexLattice(numObjectives, inner) {
		for j := range w {
			w[j] = w[j]/2 + shift
		}
		lattice = append(lattice, w)
	}
	return lattice, nil
}

// DefaultDivisions returns the lattice divisions commonly used for a given
// number of objectives.
func DefaultDivisions(numObjectives int) (outer, inner int) {
	switch {
	case numObjectives <= 2:
		return 99, 0
	case numObjectives == 3:
		return 13, 0
	case numObjectives == 4:
		return 7, 0
	case numObjectives == 5:
		return 5, 0
	case numObjectives == 6:
		return 4, 1
	default:
		return 3, 2
	}
}
