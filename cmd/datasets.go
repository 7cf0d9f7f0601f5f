package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppistat/poisample/dataset"
)

// datasetsCmd lists the canned example datasets with enough detail to
// pick one for infer --dataset.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the built-in example datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range dataset.Names() {
			meta, err := dataset.Describe(name)
			if err != nil {
				return err
			}
			obs, p, err := dataset.Load(name)
			if err != nil {
				return err
			}

			fmt.Printf("%-10s %s\n", meta.Name, meta.Title)
			fmt.Printf("           %s\n", meta.Note)
			fmt.Printf("           %d events on [%g, %g], suggested bins: %d\n\n",
				len(obs), p.T0, p.T, p.Bins)
		}
		return nil
	},
}
