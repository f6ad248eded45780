package app

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/benchmarks"
	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// Options holds the command line options of the rvea command.
type Options struct {
	ConfigFile string
	Problem    string
	Objectives int
	Variables  int
	Seed       uint64
	Output     string
	Format     string
	PlotDir    string
}

// NewOptions returns the default options.
func NewOptions() *Options {
	return &Options{
		Problem:    "dtlz2",
		Objectives: 3,
		Seed:       1,
		Format:     formatYAML,
	}
}

// AddFlags adds the flags of the options to fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to an RVEAArgs YAML or JSON file. Defaults are used when empty.")
	fs.StringVar(&o.Problem, "problem", o.Problem, "Benchmark problem to optimize: zdt1, dtlz1 or dtlz2.")
	fs.IntVar(&o.Objectives, "objectives", o.Objectives, "Number of objectives of the DTLZ problems.")
	fs.IntVar(&o.Variables, "variables", o.Variables, "Number of decision variables. The usual setting for the problem is used when 0.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Seed of the pseudo-random source.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "File the report is written to. Standard output is used when empty.")
	fs.StringVar(&o.Format, "format", o.Format, "Report format: yaml or json.")
	fs.StringVar(&o.PlotDir, "plot-dir", o.PlotDir, "Directory an HTML plot of the front is written to, for 2 or 3 objectives.")
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.Format != formatYAML && o.Format != formatJSON {
		return fmt.Errorf("unknown format %q, want %s or %s", o.Format, formatYAML, formatJSON)
	}
	if o.Variables < 0 {
		return fmt.Errorf("--variables must not be negative, got %d", o.Variables)
	}
	_, err := o.NewProblem()
	return err
}

// NewProblem builds the benchmark problem selected by the options.
func (o *Options) NewProblem() (framework.Problem, error) {
	switch o.Problem {
	case "zdt1":
		n := o.variables(30)
		if n < 1 {
			return nil, fmt.Errorf("zdt1 needs at least 1 variable, got %d", n)
		}
		return benchmarks.NewZDT1(n), nil
	case "dtlz1", "dtlz2":
		if o.Objectives < 2 {
			return nil, fmt.Errorf("--objectives must be at least 2, got %d", o.Objectives)
		}
		usual := o.Objectives + 9
		if o.Problem == "dtlz1" {
			usual = o.Objectives + 4
		}
		n := o.variables(usual)
		if n < o.Objectives {
			return nil, fmt.Errorf("%s with %d objectives needs at least %d variables, got %d", o.Problem, o.Objectives, o.Objectives, n)
		}
		if o.Problem == "dtlz1" {
			return benchmarks.NewDTLZ1(n, o.Objectives), nil
		}
		return benchmarks.NewDTLZ2(n, o.Objectives), nil
	default:
		return nil, fmt.Errorf("unknown problem %q", o.Problem)
	}
}

func (o *Options) variables(usual int) int {
	if o.Variables == 0 {
		return usual
	}
	return o.Variables
}
