package evaluator

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

// Evaluator samples and scores decision vectors.
type Evaluator interface {
	Sample(count int) [][]float64
	Evaluate(ctx context.Context, xs [][]float64) []framework.Evaluation
}

// ProblemEvaluator evaluates decision vectors against a framework.Problem,
// running up to Parallelism evaluations at a time.
type ProblemEvaluator struct {
	Parallelism int

	problem       framework.Problem
	variables     []framework.Variable
	objectives    []framework.ObjectiveFunc
	constraints   []framework.Constraint
	numObjectives int
	rng           *rand.Rand
}

var _ Evaluator = &ProblemEvaluator{}

// New creates an evaluator for problem. rng is used for sampling only.
func New(problem framework.Problem, rng *rand.Rand, parallelism int) *ProblemEvaluator {
	e := &ProblemEvaluator{
		Parallelism:   max(1, parallelism),
		problem:       problem,
		variables:     problem.Variables(),
		objectives:    problem.ObjectiveFuncs(),
		numObjectives: framework.NumObjectives(problem),
		rng:           rng,
	}
	if cp, ok := problem.(framework.ConstrainedProblem); ok {
		e.constraints = cp.Constraints()
	}
	return e
}

// NumObjectives returns the number of objectives of the problem.
func (e *ProblemEvaluator) NumObjectives() int {
	return e.numObjectives
}

// Sample draws count decision vectors uniformly within the variable bounds.
// Fixed slots always hold their value.
func (e *ProblemEvaluator) Sample(count int) [][]float64 {
	xs := make([][]float64, count)
	for i := range count {
		x := make([]float64, len(e.variables))
		for j, v := range e.variables {
			x[j] = v.Sample(e.rng)
		}
		xs[i] = x
	}
	return xs
}

// Evaluate scores every decision vector. Failures, including non-finite
// objective values, are reported on the corresponding element.
func (e *ProblemEvaluator) Evaluate(ctx context.Context, xs [][]float64) []framework.Evaluation {
	results := make([]framework.Evaluation, len(xs))

	var g errgroup.Group
	g.SetLimit(e.Parallelism)
	for i, x := range xs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = framework.Evaluation{Err: err}
				return nil
			}
			results[i] = e.evaluate(ctx, x)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (e *ProblemEvaluator) evaluate(ctx context.Context, x []float64) framework.Evaluation {
	var objs []float64
	if fp, ok := e.problem.(framework.FallibleProblem); ok {
		var err error
		objs, err = fp.EvaluateObjectives(ctx, x)
		if err != nil {
			return framework.Evaluation{Err: err}
		}
	} else {
		objs = make([]float64, len(e.objectives))
		for j, f := range e.objectives {
			objs[j] = f(x)
		}
	}

	if len(objs) != e.numObjectives {
		return framework.Evaluation{Err: fmt.Errorf("%w: got %d, want %d", framework.ErrObjectiveCount, len(objs), e.numObjectives)}
	}
	for j, v := range objs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return framework.Evaluation{Err: fmt.Errorf("objective %d: %w", j, framework.ErrNonFiniteObjective)}
		}
	}

	feasible := true
	for _, c := range e.constraints {
		if !c(x) {
			feasible = false
			break
		}
	}
	return framework.Evaluation{
		Objectives: objs,
		Feasible:   feasible,
	}
}
