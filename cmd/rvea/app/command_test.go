package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2/ktesting"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/rvea/apis/rvea/v1alpha1"
)

const testConfig = `apiVersion: rvea.optimization.io/v1alpha1
kind: RVEAArgs
latticeDivisions: 3
generations: 5
`

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "args.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func TestCommandWritesReportAndPlot(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "report.yaml")

	cmd := NewCommand()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"--config", writeConfig(t, dir),
		"--problem", "dtlz2",
		"--objectives", "3",
		"--seed", "4",
		"--output", output,
		"--plot-dir", dir,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	report := &v1alpha1.ParetoFrontReport{}
	require.NoError(t, yaml.Unmarshal(data, report))
	assert.Equal(t, v1alpha1.ParetoFrontReportKind, report.Kind)
	assert.Equal(t, v1alpha1.ReportPhaseCompleted, report.Status.Phase)
	assert.Equal(t, 5, report.Status.Generations)
	assert.Equal(t, uint64(4), report.Spec.Seed)
	assert.NotEmpty(t, report.Status.Solutions)

	assert.FileExists(t, filepath.Join(dir, "DTLZ2_RVEA_results.html"))
	assert.Contains(t, stderr.String(), "Completed")
}

func TestRunJSONToWriter(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	dir := t.TempDir()

	opts := NewOptions()
	opts.ConfigFile = writeConfig(t, dir)
	opts.Problem = "zdt1"
	opts.Variables = 6
	opts.Format = formatJSON

	var out, summary bytes.Buffer
	require.NoError(t, Run(ctx, opts, &out, &summary))

	report := &v1alpha1.ParetoFrontReport{}
	require.NoError(t, json.Unmarshal(out.Bytes(), report))
	assert.Equal(t, "ZDT1", report.Spec.Problem)
	for _, s := range report.Status.Solutions {
		assert.Len(t, s.Variables, 6)
		assert.Len(t, s.Objectives, 2)
	}
	assert.NotEmpty(t, summary.String())
}

func TestRunRejectsUnknownConfigFields(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	path := filepath.Join(t.TempDir(), "args.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latticeDivision: 3\n"), 0o644))

	opts := NewOptions()
	opts.ConfigFile = path
	var out, summary bytes.Buffer
	assert.Error(t, Run(ctx, opts, &out, &summary))
	assert.Empty(t, out.String())
}

func TestCommandRejectsTooFewVariables(t *testing.T) {
	cmd := NewCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--problem", "dtlz2", "--objectives", "3", "--variables", "1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 variables")
	assert.Empty(t, stdout.String())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Options) {}},
		{name: "zdt1", modify: func(o *Options) { o.Problem = "zdt1" }},
		{name: "unknown problem", modify: func(o *Options) { o.Problem = "wfg1" }, wantErr: true},
		{name: "one objective", modify: func(o *Options) { o.Objectives = 1 }, wantErr: true},
		{name: "unknown format", modify: func(o *Options) { o.Format = "xml" }, wantErr: true},
		{name: "negative variables", modify: func(o *Options) { o.Variables = -1 }, wantErr: true},
		{name: "dtlz2 fewer variables than objectives", modify: func(o *Options) { o.Variables = 1 }, wantErr: true},
		{name: "dtlz1 fewer variables than objectives", modify: func(o *Options) { o.Problem, o.Variables = "dtlz1", 2 }, wantErr: true},
		{name: "dtlz2 one variable per objective", modify: func(o *Options) { o.Variables = 3 }},
		{name: "zdt1 single variable", modify: func(o *Options) { o.Problem, o.Variables = "zdt1", 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.modify(opts)
			err := opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
