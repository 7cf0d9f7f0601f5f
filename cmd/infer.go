package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ppistat/poisample/dataset"
	"github.com/ppistat/poisample/model"
	"github.com/ppistat/poisample/posterior"
	"github.com/ppistat/poisample/prior"
	"github.com/ppistat/poisample/sampler"
)

var inferDataset string
var inferTimesFile string
var inferTitle string
var inferT0 float64
var inferT float64
var inferNAgg int
var inferBins int
var inferIters int
var inferThin int
var inferChains int
var inferAlpha1 float64
var inferBeta1 float64
var inferAlphaInd float64
var inferBetaInd float64
var inferTau float64
var inferPriorMean float64
var inferEB bool
var inferSummaryFile string
var inferMonitorAddr string

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Run the posterior sampler over a dataset or a times file",
	Long: `infer estimates the intensity of a Poisson point process from event
times. Input comes from a built-in dataset (--dataset, see 'poisample
datasets') or a plain text file of event times (--times-file). Every
run is reproducible from its seed.

Flags left at their defaults can be supplied by a YAML run file given
with --config; explicit flags always win over the file.
`,
	RunE: runInfer,
}

func addInferFlags(c *cobra.Command) {
	f := c.Flags()

	f.StringVarP(&inferDataset, "dataset", "d", "", "Built-in dataset to analyze (see 'poisample datasets')")
	f.StringVarP(&inferTimesFile, "times-file", "f", "", "Plain text file of event times ('#' comments allowed)")
	f.StringVar(&inferTitle, "title", "", "Title for logs and result files (default is the data name)")

	f.Float64Var(&inferT0, "t0", 0.0, "Left edge of the observation window")
	f.Float64Var(&inferT, "t", 0.0, "Right edge of the observation window (default is the last event)")
	f.IntVar(&inferNAgg, "nagg", 1, "Number of pooled realizations in the input")
	f.IntVarP(&inferBins, "bins", "N", 0, "Number of grid bins (default is events/4 capped at 50)")

	f.IntVarP(&inferIters, "iterations", "i", 30000, "Number of MCMC iterations")
	f.IntVar(&inferThin, "thin", 1, "Retain every thin-th iteration")
	f.IntVar(&inferChains, "chains", 1, "Independent chains to run in parallel")

	f.Float64Var(&inferAlpha1, "alpha1", 0.1, "Shape of the Gamma prior on the first bin")
	f.Float64Var(&inferBeta1, "beta1", 0.1, "Rate of the Gamma prior on the first bin")
	f.Float64Var(&inferAlphaInd, "alpha-ind", 0.1, "Shape of the independent-Gamma baseline")
	f.Float64Var(&inferBetaInd, "beta-ind", 0.1, "Rate of the independent-Gamma baseline")
	f.Float64Var(&inferTau, "tau", 0.7, "Std dev of the log-scale random walk on alpha")
	f.Float64Var(&inferPriorMean, "prior-mean", 10.0, "Mean of the exponential prior on alpha")
	f.BoolVar(&inferEB, "empirical-bayes", false, "Re-estimate the baseline rate from the data each iteration")

	f.StringVarP(&inferSummaryFile, "summary-file", "s", "", "Write the summary to this file (.json or .csv)")
	f.StringVar(&inferMonitorAddr, "monitor", "", "Serve live progress over HTTP at this address (e.g. :8000)")
}

// pick helpers implement the precedence explicit flag > run file >
// default for one option each.

func pickString(cmd *cobra.Command, name, flagVal, fileVal string) string {
	if !cmd.Flags().Changed(name) && len(fileVal) > 0 {
		return fileVal
	}
	return flagVal
}

func pickInt(cmd *cobra.Command, name string, flagVal int, fileVal *int, def int) int {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return def
}

func pickFloat(cmd *cobra.Command, name string, flagVal float64, fileVal *float64, def float64) float64 {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return def
}

func pickBool(cmd *cobra.Command, name string, flagVal bool, fileVal *bool, def bool) bool {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return def
}

func runInfer(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger()
	if err != nil {
		return errors.Wrap(err, "Could not build logger")
	}
	defer logger.Sync()

	rf := &runFile{}
	if len(cfgFile) > 0 {
		rf, err = loadRunFile(cfgFile)
		if err != nil {
			return err
		}
	}

	dsName := pickString(cmd, "dataset", inferDataset, rf.Dataset)
	timesFile := pickString(cmd, "times-file", inferTimesFile, rf.TimesFile)

	var obs model.Observations
	var sugg dataset.Params
	haveSugg := false
	title := ""

	switch {
	case len(dsName) > 0 && len(timesFile) > 0:
		return errors.Errorf("Give either --dataset or --times-file, not both")
	case len(dsName) > 0:
		obs, sugg, err = dataset.Load(dsName)
		if err != nil {
			return err
		}
		haveSugg = true
		title = dsName
	case len(timesFile) > 0:
		obs, err = dataset.ReadTimesFile(timesFile)
		if err != nil {
			return err
		}
		title = strings.TrimSuffix(filepath.Base(timesFile), filepath.Ext(timesFile))
	default:
		return errors.Errorf("Need a data source: --dataset or --times-file")
	}

	cfg := sampler.DefaultConfig(obs)
	cfg.Title = title
	if haveSugg {
		cfg.T0 = sugg.T0
		cfg.T = sugg.T
		cfg.NAgg = sugg.NAgg
		cfg.Bins = sugg.Bins
	}

	if t := pickString(cmd, "title", inferTitle, rf.Title); len(t) > 0 {
		cfg.Title = t
	}
	cfg.T0 = pickFloat(cmd, "t0", inferT0, rf.T0, cfg.T0)
	cfg.T = pickFloat(cmd, "t", inferT, rf.T, cfg.T)
	cfg.NAgg = pickInt(cmd, "nagg", inferNAgg, rf.NAgg, cfg.NAgg)
	cfg.Bins = pickInt(cmd, "bins", inferBins, rf.Bins, cfg.Bins)

	iters := pickInt(cmd, "iterations", inferIters, rf.Iterations, 30000)
	thin := pickInt(cmd, "thin", inferThin, rf.Thin, 1)
	cfg.Samples = sampler.Schedule{Start: 1, Stop: iters, Stride: thin}

	cfg.Alpha1 = pickFloat(cmd, "alpha1", inferAlpha1, rf.Alpha1, 0.1)
	cfg.Beta1 = pickFloat(cmd, "beta1", inferBeta1, rf.Beta1, 0.1)
	cfg.AlphaInd = pickFloat(cmd, "alpha-ind", inferAlphaInd, rf.AlphaInd, 0.1)
	cfg.BetaInd = pickFloat(cmd, "beta-ind", inferBetaInd, rf.BetaInd, 0.1)
	cfg.Tau = pickFloat(cmd, "tau", inferTau, rf.Tau, 0.7)
	cfg.EmpiricalBayes = pickBool(cmd, "empirical-bayes", inferEB, rf.EmpiricalBayes, false)

	priorMean := pickFloat(cmd, "prior-mean", inferPriorMean, rf.PriorMean, 10.0)
	if !(priorMean > 0.0) {
		return errors.Errorf("Prior mean for alpha must be positive (have %v)", priorMean)
	}
	cfg.Pi = prior.ExponentialAlphaPrior(priorMean)

	chains := pickInt(cmd, "chains", inferChains, rf.Chains, 1)
	outPath := pickString(cmd, "summary-file", inferSummaryFile, rf.SummaryFile)

	cfg.Seed = randomSeed
	cfg.Verbose = verbose
	cfg.Logger = logger

	if len(inferMonitorAddr) > 0 {
		mon := &monitor{}
		if err := mon.Start(inferMonitorAddr); err != nil {
			return err
		}
		defer mon.Stop()
		mon.Chains.Set(int64(chains))
		cfg.Progress = mon.Update
	}

	// Ctrl-C stops the sampler at the next iteration boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Analyzing %d events on [%g, %g] with %d bins\n", len(obs), cfg.T0, cfg.T, cfg.Bins)
	fmt.Printf("Iterations: %d (thin %d), chains: %d, seed: %d\n", iters, thin, chains, cfg.Seed)

	results, err := sampler.RunChains(ctx, obs, cfg, chains)
	if err != nil {
		return err
	}
	res := results[0]

	summary, err := posterior.Summarize(res)
	if err != nil {
		return err
	}

	printSummary(summary, res)

	if chains > 1 {
		rhat, err := sampler.GelmanRubin(results)
		if err != nil {
			return err
		}
		worst := 0.0
		for _, r := range rhat {
			if r > worst {
				worst = r
			}
		}
		fmt.Printf("\nGelman-Rubin R-hat (worst bin): %.4f\n", worst)
		if worst > 1.1 {
			fmt.Printf("WARNING: R-hat above 1.1 - the chains disagree, consider more iterations\n")
		}
	}

	if haveSugg {
		if ref, err := dataset.TrueIntensity(dsName, summary.Grid); err == nil {
			cov, cerr := posterior.Coverage(summary, ref)
			mae, merr := posterior.MeanAbsError(summary, ref)
			if cerr == nil && merr == nil {
				fmt.Printf("\nTruth check: band coverage %.2f, mean abs error %.3f\n", cov, mae)
			}
		}
	}

	if len(outPath) > 0 {
		if err := posterior.WriteFile(outPath, summary); err != nil {
			return err
		}
		fmt.Printf("\nWrote summary to %s\n", outPath)
	}

	return nil
}

func printSummary(s *posterior.Summary, res *sampler.Result) {
	fmt.Printf("\n%s\n", s.Title)
	fmt.Printf("Retained %d samples (%d burned), accept rate %.3f, elapsed %v\n",
		s.RowsUsed+s.BurnIn, s.BurnIn, res.AcceptRate, res.Elapsed)

	lo := fmt.Sprintf("lo%g%%", s.LowerProb*100.0)
	hi := fmt.Sprintf("hi%g%%", s.UpperProb*100.0)
	fmt.Printf("%4s %10s %10s %7s %10s %10s %10s\n", "bin", "left", "right", "count", "mean", lo, hi)

	for k := range s.Mean {
		fmt.Printf("%4d %10.4f %10.4f %7d %10.4f %10.4f %10.4f\n",
			k, s.Grid.Bound(k), s.Grid.Bound(k+1), res.Counts[k], s.Mean[k], s.Lower[k], s.Upper[k])
	}
}
