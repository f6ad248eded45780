package multiobjective

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/rvea/apis/rvea/v1alpha1"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/algorithms/rvea"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/evaluator"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/variation"
)

// Optimize runs RVEA on problem and reports the non-dominated solutions it
// found. The run is reproducible for a given seed.
//
// Configuration errors are returned without a report. When the run itself
// fails or is cancelled, the report describes the last valid population and
// the run error is returned alongside it.
func Optimize(ctx context.Context, problem framework.Problem, args *v1alpha1.RVEAArgs, seed uint64) (*v1alpha1.ParetoFrontReport, error) {
	logger := klog.FromContext(ctx)

	a := v1alpha1.RVEAArgs{}
	if args != nil {
		a = *args
	}
	v1alpha1.SetDefaults_RVEAArgs(&a)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pe := evaluator.New(problem, rng, a.Parallelism)
	var ev rvea.Evaluator = pe
	var cached *evaluator.CachedEvaluator
	if a.CacheTTL != nil {
		cached = evaluator.NewCached(pe, a.CacheTTL.Duration)
		ev = cached
	}

	op := variation.New(problem.Variables(), rng)
	op.CrossoverProbability = *a.CrossoverProbability
	op.CrossoverDistributionIndex = *a.CrossoverDistributionIndex
	op.MutationDistributionIndex = *a.MutationDistributionIndex
	if a.MutationProbability != nil {
		op.MutationProbability = *a.MutationProbability
	} else {
		a.MutationProbability = ptr.To(op.MutationProbability)
	}

	alg, err := rvea.New(&a, pe.NumObjectives(), ev, op)
	if err != nil {
		return nil, err
	}
	logger.V(2).Info("Optimizing", "problem", problem.Name(), "algorithm", alg.Name(), "seed", seed)

	result, runErr := alg.Run(ctx)

	report := &v1alpha1.ParetoFrontReport{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.APIVersion,
			Kind:       v1alpha1.ParetoFrontReportKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: strings.ToLower(problem.Name()) + "-" + strconv.FormatUint(seed, 10),
		},
		Spec: v1alpha1.ParetoFrontReportSpec{
			Problem:   problem.Name(),
			Algorithm: alg.Name(),
			Args:      a,
			Seed:      seed,
		},
		Status: v1alpha1.ParetoFrontReportStatus{
			Phase:            v1alpha1.ReportPhaseCompleted,
			ReferenceVectors: alg.PopulationSize(),
			Generations:      result.Generations,
			Evaluations:      result.Evaluations,
			Solutions:        make([]v1alpha1.Solution, 0, len(result.Front)),
			CompletionTime:   ptr.To(metav1.Now()),
		},
	}
	if cached != nil {
		report.Status.Evaluations = int(cached.Evaluated())
		logger.V(4).Info("Evaluation cache", "hits", cached.Hits(), "evaluated", cached.Evaluated())
	}
	for _, ind := range result.Front {
		report.Status.Solutions = append(report.Status.Solutions, v1alpha1.Solution{
			Variables:  ind.Variables,
			Objectives: ind.Objectives,
			Feasible:   ind.Feasible,
		})
	}

	if runErr != nil {
		report.Status.Phase = v1alpha1.ReportPhaseFailed
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			report.Status.Phase = v1alpha1.ReportPhaseCancelled
		}
		report.Status.Message = runErr.Error()
	}
	logger.V(2).Info("Optimization finished", "problem", problem.Name(), "phase", report.Status.Phase,
		"solutions", len(report.Status.Solutions), "evaluations", report.Status.Evaluations)
	return report, runErr
}
