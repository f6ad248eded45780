package referencevectors

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrTooFewVectors is returned when a lattice produces fewer than two vectors,
// in which case angles between neighbours are undefined.
var ErrTooFewVectors = errors.New("at least two reference vectors are required")

// ErrDuplicateVectors is returned when two reference vectors share a direction.
var ErrDuplicateVectors = errors.New("reference vectors contain duplicate directions")

// minNeighborAngle is the smallest neighbour angle, in radians, that is not
// treated as a duplicate direction.
const minNeighborAngle = 1e-6

// Set holds the working reference vectors together with the original planar
// lattice they were derived from. Adapt always rescales the original lattice,
// never the current vectors.
type Set struct {
	// Values are the current unit-length reference vectors.
	Values [][]float64
	// NeighborAngles[i] is the angle in radians between Values[i] and its
	// closest other vector.
	NeighborAngles []float64

	planar [][]float64
}

// New builds the reference vector set for a two-layer lattice.
func New(numObjectives, outer, inner int) (*Set, error) {
	lattice, err := TwoLayerLattice(numObjectives, outer, inner)
	if err != nil {
		return nil, err
	}
	return FromLattice(lattice)
}

// FromLattice builds a set from arbitrary planar vectors with non-negative
// components. The input is copied.
func FromLattice(lattice [][]float64) (*Set, error) {
	if len(lattice) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVectors, len(lattice))
	}

	planar := make([][]float64, len(lattice))
	for i, w := range lattice {
		planar[i] = append([]float64(nil), w...)
	}

	s := &Set{planar: planar}
	s.Reset()

	for i, a := range s.NeighborAngles {
		if a < minNeighborAngle {
			return nil, fmt.Errorf("%w: vector %d", ErrDuplicateVectors, i)
		}
	}
	return s, nil
}

// Len returns the number of reference vectors.
func (s *Set) Len() int {
	return len(s.Values)
}

// Dim returns the number of objectives the vectors span.
func (s *Set) Dim() int {
	if len(s.Values) == 0 {
		return 0
	}
	return len(s.Values[0])
}

// Reset restores the unit vectors of the original lattice, undoing every
// adaptation.
func (s *Set) Reset() {
	s.Values = make([][]float64, len(s.planar))
	for i, w := range s.planar {
		s.Values[i] = Normalize(w)
	}
	s.NeighborAngles = NeighborAngles(s.Values)
}

// Original returns a copy of the planar lattice the set was built from.
func (s *Set) Original() [][]float64 {
	out := make([][]float64, len(s.planar))
	for i, w := range s.planar {
		out[i] = append([]float64(nil), w...)
	}
	return out
}

// Normalize returns v scaled to unit Euclidean length. A zero vector is
// returned unchanged.
func Normalize(v []float64) []float64 {
	out := append([]float64(nil), v...)
	norm := floats.Norm(out, 2)
	if norm == 0 {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}

// Cosines returns the matrix of dot products between the rows of a and the
// rows of b. When both are unit vectors these are the cosines of the angles
// between them.
func Cosines(a, b [][]float64) *mat.Dense {
	am := rowsToDense(a)
	bm := rowsToDense(b)
	var c mat.Dense
	c.Mul(am, bm.T())
	return &c
}

// NeighborAngles returns, for every unit vector, the angle to its closest
// other vector: the arccos of the second highest cosine of its row, the
// highest being the self-similarity.
func NeighborAngles(vectors [][]float64) []float64 {
	angles := make([]float64, len(vectors))
	if len(vectors) < 2 {
		return angles
	}

	cos := Cosines(vectors, vectors)
	for i := range vectors {
		row := mat.Row(nil, i, cos)
		row[i] = math.Inf(-1)
		angles[i] = math.Acos(ClampCosine(floats.Max(row)))
	}
	return angles
}

// ClampCosine restricts c to [-1, 1] so that floating-point overshoot does not
// turn arccos into NaN.
func ClampCosine(c float64) float64 {
	return math.Max(-1, math.Min(1, c))
}

func rowsToDense(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data)
}
