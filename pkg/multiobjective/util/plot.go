package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/rvea/pkg/multiobjective/framework"
)

// trueFrontPoints is the number of points sampled from the true Pareto front.
const trueFrontPoints = 100

// PlotResults writes an HTML scatter plot comparing the true Pareto front of
// the given Problem with the solutions found by the algorithm into dir and
// returns the path of the file. Two- and three-objective fronts are
// supported.
func PlotResults(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName, dir string) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("results are empty for %s Benchmark", problem.Name())
	}

	var render func(io.Writer) error
	switch dim := len(results[0]); dim {
	case 2:
		render = scatter2D(results, problem, algorithmName).Render
	case 3:
		render = scatter3D(results, problem, algorithmName).Render
	default:
		return "", fmt.Errorf("can only plot 2D or 3D for %s Benchmark, got %d objectives", problem.Name(), dim)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithmName))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := render(f); err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	return path, nil
}

func title(problem framework.Problem, algorithmName string) opts.Title {
	return opts.Title{
		Title: fmt.Sprintf("%s Results for %s Benchmark", algorithmName, problem.Name()),
	}
}

func scatter2D(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(title(problem, algorithmName)),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	trueParetoFront := problem.TrueParetoFront(trueFrontPoints)
	trueX := make([]opts.ScatterData, len(trueParetoFront))
	for i, p := range trueParetoFront {
		trueX[i] = opts.ScatterData{
			Value:      []float64(p),
			Symbol:     "circle",
			SymbolSize: 10,
		}
	}

	foundX := make([]opts.ScatterData, len(results))
	for i, res := range results {
		foundX[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}

	scatter.AddSeries("True Pareto Front", trueX).
		AddSeries(fmt.Sprintf("%s Solutions", algorithmName), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)
	return scatter
}

func scatter3D(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string) *charts.Scatter3D {
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(title(problem, algorithmName)),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "f1(x)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "f2(x)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "f3(x)"}),
	)

	scatter.AddSeries("True Pareto Front", chart3DData(problem.TrueParetoFront(trueFrontPoints))).
		AddSeries(fmt.Sprintf("%s Solutions", algorithmName), chart3DData(results))
	return scatter
}

func chart3DData(points []framework.ObjectiveSpacePoint) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(points))
	for i, p := range points {
		data[i] = opts.Chart3DData{
			Value: []interface{}{p[0], p[1], p[2]},
		}
	}
	return data
}
