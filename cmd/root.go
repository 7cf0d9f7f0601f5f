package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string
var verbose bool
var randomSeed int64

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "poisample",
	Short: "Bayesian intensity estimation for Poisson point processes",
	Long: `poisample estimates the intensity function of a Poisson point process
without assuming a parametric shape. Among other features:

  - A piecewise-constant intensity on a configurable grid
  - A Gamma Markov chain smoothing prior with fully conjugate Gibbs updates
  - Metropolis-within-Gibbs sampling of the smoothing hyperparameter
  - Parallel chains with a Gelman-Rubin convergence check
  - Posterior means and credible bands ready for plotting
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("poisample\n")
		fmt.Printf("Verbose:  %v\n", verbose)
		fmt.Printf("Run file: %s\n", cfgFile)
		fmt.Printf("Rnd Seed: %d\n", randomSeed)
		fmt.Printf("\nSee 'poisample infer --help' to run the sampler\n")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML run file supplying defaults for the infer flags")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")

	rootCmd.AddCommand(inferCmd)
	addInferFlags(inferCmd)

	rootCmd.AddCommand(datasetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildLogger returns the logger behind --verbose: human-readable
// development output when logging is on, a no-op logger when it is not.
func buildLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
