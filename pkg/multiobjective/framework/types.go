package framework

import (
	"context"
	"errors"
)

var (
	// ErrNonFiniteObjective marks an evaluation that produced NaN or Inf.
	ErrNonFiniteObjective = errors.New("non-finite objective value")
	// ErrObjectiveCount marks an evaluation whose length differs from the
	// number of objectives the problem declares.
	ErrObjectiveCount = errors.New("objective count mismatch")
)

// Individual pairs a decision vector with its objective vector.
type Individual struct {
	Variables  []float64
	Objectives ObjectiveSpacePoint

	// Feasible is passed through from the evaluation, selection does not use it.
	Feasible bool
}

// ObjectiveFunc defines the interface for objective functions
type ObjectiveFunc func([]float64) float64

// Constraint returns true if the constraint is satisfied and false otherwise.
type Constraint func([]float64) bool

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Evaluation is the outcome of evaluating a single decision vector. Err is
// set when the candidate could not be scored, in which case Objectives must
// not be used.
type Evaluation struct {
	Objectives ObjectiveSpacePoint
	Feasible   bool
	Err        error
}

// Problem describes the contract a specific multi-objective problem needs to implement.
type Problem interface {
	Name() string

	// Variables declares every slot of the decision vector.
	Variables() []Variable
	// ObjectiveFuncs returns one function per objective, all minimised.
	ObjectiveFuncs() []ObjectiveFunc

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// ConstrainedProblem is implemented by problems that report feasibility.
type ConstrainedProblem interface {
	Problem
	Constraints() []Constraint
}

// FallibleProblem is implemented by problems whose evaluation can fail, for
// example when objectives come from an external simulator. When present it is
// used instead of ObjectiveFuncs.
type FallibleProblem interface {
	Problem
	NumObjectives() int
	EvaluateObjectives(ctx context.Context, x []float64) ([]float64, error)
}

// NumObjectives returns the number of objectives of p.
func NumObjectives(p Problem) int {
	if fp, ok := p.(FallibleProblem); ok {
		return fp.NumObjectives()
	}
	return len(p.ObjectiveFuncs())
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
}

// Points extracts the objective vectors of a population.
func Points(population []Individual) []ObjectiveSpacePoint {
	points := make([]ObjectiveSpacePoint, len(population))
	for i := range population {
		points[i] = population[i].Objectives
	}
	return points
}
