package app

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/rvea/apis/rvea/v1alpha1"
	"github.com/mihai-snyk/rvea/pkg/multiobjective"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/util"
)

// NewCommand creates the rvea command with default options.
func NewCommand() *cobra.Command {
	opts := NewOptions()

	cmd := &cobra.Command{
		Use:   "rvea",
		Short: "Approximate the Pareto front of a benchmark problem with RVEA",
		Long: `rvea runs the reference-vector-guided evolutionary algorithm on a
benchmark problem and writes a ParetoFrontReport with the non-dominated
solutions it found.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return Run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	opts.AddFlags(fs)

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	return cmd
}

// Run optimizes the problem selected by opts, writes the report to out, or
// to opts.Output when set, and a one-line summary to summary. The report is
// written even when the run fails.
func Run(ctx context.Context, opts *Options, out, summary io.Writer) error {
	logger := klog.FromContext(ctx)

	problem, err := opts.NewProblem()
	if err != nil {
		return err
	}

	args := &v1alpha1.RVEAArgs{}
	if opts.ConfigFile != "" {
		args, err = v1alpha1.LoadRVEAArgs(opts.ConfigFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", opts.ConfigFile, err)
		}
	}

	start := time.Now()
	report, runErr := multiobjective.Optimize(ctx, problem, args, opts.Seed)
	if report == nil {
		return runErr
	}

	if err := writeReport(report, opts, out); err != nil {
		return err
	}

	fmt.Fprintf(summary, "%s: %s solutions, %s generations, %s evaluations, %s\n",
		report.Status.Phase,
		humanize.Comma(int64(len(report.Status.Solutions))),
		humanize.Comma(int64(report.Status.Generations)),
		humanize.Comma(int64(report.Status.Evaluations)),
		humanize.RelTime(start, time.Now(), "elapsed", ""))

	if opts.PlotDir != "" && len(report.Status.Solutions) > 0 {
		front := make([]framework.ObjectiveSpacePoint, len(report.Status.Solutions))
		for i, s := range report.Status.Solutions {
			front[i] = s.Objectives
		}
		path, err := util.PlotResults(front, problem, report.Spec.Algorithm, opts.PlotDir)
		if err != nil {
			logger.Error(err, "Could not plot the front", "problem", problem.Name())
		} else {
			logger.V(2).Info("Wrote plot", "path", path)
		}
	}

	return runErr
}

func writeReport(report *v1alpha1.ParetoFrontReport, opts *Options, out io.Writer) error {
	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case formatJSON:
		data, err = json.MarshalIndent(report, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if opts.Output == "" {
		_, err = out.Write(data)
		return err
	}
	return os.WriteFile(opts.Output, data, 0o644)
}
