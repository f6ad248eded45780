package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/benchmarks"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

func TestPlotResults2D(t *testing.T) {
	dir := t.TempDir()
	problem := benchmarks.NewZDT1(30)

	path, err := PlotResults([]framework.ObjectiveSpacePoint{{0, 1}, {0.25, 0.5}, {1, 0}}, problem, "RVEA", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ZDT1_RVEA_results.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "True Pareto Front")
	assert.Contains(t, string(content), "RVEA Solutions")
}

func TestPlotResults3D(t *testing.T) {
	dir := t.TempDir()
	problem := benchmarks.NewDTLZ2(12, 3)

	path, err := PlotResults(problem.TrueParetoFront(10), problem, "RVEA", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "RVEA Results for DTLZ2 Benchmark")
}

func TestPlotResultsRejectsUnsupportedFronts(t *testing.T) {
	dir := t.TempDir()

	_, err := PlotResults(nil, benchmarks.NewZDT1(30), "RVEA", dir)
	assert.Error(t, err)

	problem := benchmarks.NewDTLZ2(12, 4)
	_, err = PlotResults(problem.TrueParetoFront(10), problem, "RVEA", dir)
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
