package multiobjective

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2/ktesting"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/rvea/apis/rvea/v1alpha1"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/algorithms/rvea"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/benchmarks"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

var errUnavailable = errors.New("backend unavailable")

// unavailableProblem fails every evaluation.
type unavailableProblem struct {
	*benchmarks.ZDT1
}

func (p *unavailableProblem) NumObjectives() int {
	return 2
}

func (p *unavailableProblem) EvaluateObjectives(context.Context, []float64) ([]float64, error) {
	return nil, errUnavailable
}

func TestOptimizeZDT1(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	args := &v1alpha1.RVEAArgs{LatticeDivisions: 19, Generations: 40}

	report, err := Optimize(ctx, benchmarks.NewZDT1(10), args, 1)
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.ParetoFrontReportKind, report.Kind)
	assert.Equal(t, v1alpha1.APIVersion, report.APIVersion)
	assert.Equal(t, "zdt1-1", report.Name)
	assert.Equal(t, benchmarks.ZDT1Name, report.Spec.Problem)
	assert.Equal(t, rvea.Name, report.Spec.Algorithm)
	assert.Equal(t, uint64(1), report.Spec.Seed)
	assert.Equal(t, ptr.To(0.1), report.Spec.Args.MutationProbability)

	status := report.Status
	assert.Equal(t, v1alpha1.ReportPhaseCompleted, status.Phase)
	assert.Empty(t, status.Message)
	assert.Equal(t, 20, status.ReferenceVectors)
	assert.Equal(t, 40, status.Generations)
	assert.Greater(t, status.Evaluations, 40)
	assert.LessOrEqual(t, status.Evaluations, 20+40*20)
	require.NotEmpty(t, status.Solutions)
	assert.LessOrEqual(t, len(status.Solutions), 20)
	assert.NotNil(t, status.CompletionTime)

	for i, a := range status.Solutions {
		assert.Len(t, a.Variables, 10)
		assert.True(t, a.Feasible)
		for j, b := range status.Solutions {
			assert.False(t, i != j && framework.Dominates(a.Objectives, b.Objectives))
		}
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	args := &v1alpha1.RVEAArgs{LatticeDivisions: 3, Generations: 10, Parallelism: 4}

	first, err := Optimize(ctx, benchmarks.NewDTLZ2(12, 3), args, 5)
	require.NoError(t, err)
	second, err := Optimize(ctx, benchmarks.NewDTLZ2(12, 3), args, 5)
	require.NoError(t, err)

	ignoreTime := cmpopts.IgnoreFields(v1alpha1.ParetoFrontReportStatus{}, "CompletionTime")
	if diff := cmp.Diff(first, second, ignoreTime); diff != "" {
		t.Errorf("reports differ between runs with the same seed (-first +second):\n%s", diff)
	}
}

func TestOptimizeWithCache(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	args := &v1alpha1.RVEAArgs{
		LatticeDivisions:     3,
		Generations:          10,
		CrossoverProbability: ptr.To(0.0),
		MutationProbability:  ptr.To(0.0),
		CacheTTL:             &metav1.Duration{Duration: time.Minute},
	}

	report, err := Optimize(ctx, benchmarks.NewDTLZ2(12, 3), args, 3)
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.ReportPhaseCompleted, report.Status.Phase)
	assert.Equal(t, &metav1.Duration{Duration: time.Minute}, report.Spec.Args.CacheTTL)

	// Offspring are copies of their parents, so only the initial population
	// reaches the problem.
	assert.Equal(t, 10, report.Status.Evaluations)
	assert.Equal(t, 10, report.Status.ReferenceVectors)
}

func TestOptimizeConfigurationError(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)

	report, err := Optimize(ctx, benchmarks.NewDTLZ2(12, 3), &v1alpha1.RVEAArgs{Alpha: ptr.To(-1.0)}, 1)
	assert.ErrorIs(t, err, rvea.ErrConfiguration)
	assert.Nil(t, report)
}

func TestOptimizeFailedRun(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)

	report, err := Optimize(ctx, &unavailableProblem{benchmarks.NewZDT1(5)}, &v1alpha1.RVEAArgs{LatticeDivisions: 5, Generations: 5}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, rvea.ErrDegenerateSelection)
	require.NotNil(t, report)
	assert.Equal(t, v1alpha1.ReportPhaseFailed, report.Status.Phase)
	assert.Equal(t, err.Error(), report.Status.Message)
	assert.Empty(t, report.Status.Solutions)
}

func TestOptimizeCancelled(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	report, err := Optimize(ctx, benchmarks.NewZDT1(5), &v1alpha1.RVEAArgs{LatticeDivisions: 5, Generations: 5}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, v1alpha1.ReportPhaseCancelled, report.Status.Phase)
}
