package rvea

import (
	"context"
	"errors"
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rvea/apis/rvea/v1alpha1"
	"github.com/mihai-snyk/rvea/apis/rvea/validation"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/referencevectors"
)

const (
	Name = "RVEA"
)

// Evaluator samples and scores decision vectors.
type Evaluator interface {
	// Sample draws count decision vectors from the problem domain.
	Sample(count int) [][]float64
	// Evaluate scores every decision vector. A failure is reported on the
	// corresponding element and never fails the whole batch.
	Evaluate(ctx context.Context, xs [][]float64) []framework.Evaluation
}

// Variation produces offspring decision vectors from a population. The
// population passed in must not be modified.
type Variation interface {
	// MatingPool returns an even number of population indices; consecutive
	// entries form a mating pair.
	MatingPool(population []framework.Individual) []int
	// Reproduce returns the offspring of the pairs in pool.
	Reproduce(pool []int, population []framework.Individual) [][]float64
}

// FrontExtractor returns the indices of the non-dominated points.
type FrontExtractor func([]framework.ObjectiveSpacePoint) []int

// GenerationStats summarises a completed generation.
type GenerationStats struct {
	Generation     int
	Progress       float64
	PopulationSize int
	Offspring      int
	Failures       int
	Evaluations    int
	Adapted        bool
}

// Result is the outcome of a run. When Run returns an error, Population holds
// the last valid population and Front its non-dominated subset. Evaluations
// counts the candidates passed to the Evaluator, including any it served
// without evaluating the problem.
type Result struct {
	Population  []framework.Individual
	Front       []framework.Individual
	Generations int
	Evaluations int
}

type Option func(*RVEA)

// WithFrontExtractor replaces the non-dominated filter applied to the final
// population.
func WithFrontExtractor(extract FrontExtractor) Option {
	return func(r *RVEA) {
		r.extract = extract
	}
}

// WithObserver registers a function called after every generation.
func WithObserver(observe func(GenerationStats)) Option {
	return func(r *RVEA) {
		r.observe = observe
	}
}

// RVEA is the reference-vector-guided evolutionary algorithm.
type RVEA struct {
	NumObjectives      int
	Generations        int
	Alpha              float64
	AdaptationInterval int

	vectors   *referencevectors.Set
	evaluator Evaluator
	variation Variation
	extract   FrontExtractor
	observe   func(GenerationStats)

	evaluations int
}

var _ framework.Algorithm = &RVEA{}

// New validates args and builds the algorithm for a problem with
// numObjectives objectives. args is defaulted on a copy; the caller's value
// is not modified.
func New(args *v1alpha1.RVEAArgs, numObjectives int, evaluator Evaluator, variation Variation, opts ...Option) (*RVEA, error) {
	if args == nil {
		args = &v1alpha1.RVEAArgs{}
	}
	a := *args
	v1alpha1.SetDefaults_RVEAArgs(&a)
	if err := validation.ValidateRVEAArgs(field.NewPath("args"), &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if numObjectives < 2 {
		return nil, configError("need at least 2 objectives, got %d", numObjectives)
	}

	outer, inner := a.LatticeDivisions, a.InnerLatticeDivisions
	if outer == 0 {
		outer, inner = referencevectors.DefaultDivisions(numObjectives)
	}
	vectors, err := referencevectors.New(numObjectives, outer, inner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	generations := a.Generations
	if generations == 0 {
		generations = a.EvaluationBudget / vectors.Len()
	}
	if generations < 1 {
		return nil, configError("evaluation budget %d is smaller than the %d reference vectors", a.EvaluationBudget, vectors.Len())
	}

	fr := *a.AdaptationFrequency
	r := &RVEA{
		NumObjectives:      numObjectives,
		Generations:        generations,
		Alpha:              *a.Alpha,
		AdaptationInterval: max(1, int(math.Ceil(float64(generations)*fr))),
		vectors:            vectors,
		evaluator:          evaluator,
		variation:          variation,
		extract:            framework.NonDominatedSubset,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *RVEA) Name() string {
	return Name
}

// PopulationSize is the number of reference vectors, which bounds the
// population after every selection.
func (r *RVEA) PopulationSize() int {
	return r.vectors.Len()
}

// ReferenceVectors returns the current reference vector set.
func (r *RVEA) ReferenceVectors() *referencevectors.Set {
	return r.vectors
}

// Run executes the algorithm until the generation budget is exhausted, the
// context is cancelled or a fatal error occurs. Cancellation is observed
// between generations. Every run starts from the original reference vectors,
// so an engine may be run more than once.
func (r *RVEA) Run(ctx context.Context) (*Result, error) {
	logger := klog.FromContext(ctx)
	logger.V(2).Info("Starting run", "algorithm", Name, "referenceVectors", r.vectors.Len(),
		"generations", r.Generations, "alpha", r.Alpha, "adaptationInterval", r.AdaptationInterval)

	r.evaluations = 0
	r.vectors.Reset()
	population, failures, err := r.evaluate(ctx, r.evaluator.Sample(r.vectors.Len()))
	if err != nil {
		return r.abort(ctx, nil, -1, 0, err)
	}
	if len(population) == 0 {
		return r.abort(ctx, nil, -1, 0, fmt.Errorf("%w: all %d initial candidates failed evaluation", ErrDegenerateSelection, failures))
	}

	for gen := 0; gen < r.Generations; gen++ {
		progress := float64(gen) / float64(r.Generations)

		pool := r.variation.MatingPool(population)
		xs := r.variation.Reproduce(pool, population)
		offspring, failures, err := r.evaluate(ctx, xs)
		if err != nil {
			return r.abort(ctx, population, gen, gen, err)
		}
		if len(xs) > 0 && len(offspring) == 0 {
			return r.abort(ctx, population, gen, gen, fmt.Errorf("%w: all %d offspring failed evaluation", ErrDegenerateSelection, len(xs)))
		}

		candidates := make([]framework.Individual, 0, len(population)+len(offspring))
		candidates = append(candidates, population...)
		candidates = append(candidates, offspring...)

		survivors := Select(framework.Points(candidates), r.vectors, progress, r.Alpha)
		if len(survivors) == 0 {
			return r.abort(ctx, population, gen, gen, fmt.Errorf("%w: no survivor among %d candidates", ErrDegenerateSelection, len(candidates)))
		}
		population = make([]framework.Individual, len(survivors))
		for i, idx := range survivors {
			population[i] = candidates[idx]
		}

		if err := ctx.Err(); err != nil {
			return r.abort(ctx, population, gen, gen+1, err)
		}

		adapted := false
		if gen%r.AdaptationInterval == 0 {
			adapted, err = r.vectors.Adapt(framework.Points(population))
			if err != nil {
				return r.abort(ctx, population, gen, gen+1, err)
			}
			if !adapted {
				logger.V(4).Info("Skipped reference vector adaptation, degenerate objective range or collapsed vectors", "generation", gen)
			}
		}

		stats := GenerationStats{
			Generation:     gen,
			Progress:       progress,
			PopulationSize: len(population),
			Offspring:      len(xs),
			Failures:       failures,
			Evaluations:    r.evaluations,
			Adapted:        adapted,
		}
		logger.V(4).Info("Generation completed", "generation", gen, "progress", progress,
			"population", len(population), "failures", failures, "adapted", adapted)
		if r.observe != nil {
			r.observe(stats)
		}
	}

	result := r.result(population, r.Generations)
	logger.V(2).Info("Run completed", "algorithm", Name, "evaluations", r.evaluations,
		"population", len(result.Population), "front", len(result.Front))
	return result, nil
}

// evaluate scores xs and returns the individuals that evaluated successfully
// together with the number of failures. Only failures that make the run
// meaningless are returned as errors.
func (r *RVEA) evaluate(ctx context.Context, xs [][]float64) ([]framework.Individual, int, error) {
	if len(xs) == 0 {
		return nil, 0, nil
	}
	logger := klog.FromContext(ctx)

	results := r.evaluator.Evaluate(ctx, xs)
	r.evaluations += len(xs)
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if len(results) != len(xs) {
		return nil, 0, fmt.Errorf("evaluator returned %d results for %d candidates", len(results), len(xs))
	}

	individuals := make([]framework.Individual, 0, len(xs))
	failures := 0
	for i, res := range results {
		if res.Err == nil && len(res.Objectives) != r.NumObjectives {
			res.Err = fmt.Errorf("%w: got %d, want %d", framework.ErrObjectiveCount, len(res.Objectives), r.NumObjectives)
		}
		if res.Err == nil && !finitePoint(res.Objectives) {
			res.Err = framework.ErrNonFiniteObjective
		}
		if res.Err != nil {
			if errors.Is(res.Err, framework.ErrObjectiveCount) {
				return nil, failures, fmt.Errorf("%w: candidate %d: %w", ErrConfiguration, i, res.Err)
			}
			failures++
			logger.V(5).Info("Excluding candidate", "candidate", i, "err", res.Err)
			continue
		}
		individuals = append(individuals, framework.Individual{
			Variables:  xs[i],
			Objectives: res.Objectives,
			Feasible:   res.Feasible,
		})
	}
	return individuals, failures, nil
}

func (r *RVEA) abort(ctx context.Context, population []framework.Individual, gen, completed int, err error) (*Result, error) {
	runErr := &RunError{Generation: gen, Err: err}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		klog.FromContext(ctx).Error(err, "Run aborted", "algorithm", Name, "generation", gen)
	}
	return r.result(population, completed), runErr
}

func (r *RVEA) result(population []framework.Individual, completed int) *Result {
	result := &Result{
		Population:  population,
		Generations: completed,
		Evaluations: r.evaluations,
	}
	for _, idx := range r.extract(framework.Points(population)) {
		result.Front = append(result.Front, population[idx])
	}
	return result
}
