package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordprob/wordprob/dataset"
)

var generateFlags struct {
	config string
	out    string
	seed   int64
	count  int
	smt    bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate a dataset of verified problems",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := dataset.DefaultConfig()
		if generateFlags.config != "" {
			var err error
			if cfg, err = dataset.LoadConfig(generateFlags.config); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = generateFlags.seed
		}
		if cmd.Flags().Changed("count") {
			cfg.Count = generateFlags.count
		}
		if cmd.Flags().Changed("smt") {
			cfg.Verification.SMT = generateFlags.smt
		}
		if generateFlags.out != "" {
			cfg.Output.Path = generateFlags.out
		}

		w, err := dataset.Open(cfg.Output.Path, cfg.Output.Format)
		if err != nil {
			return err
		}

		stats, err := dataset.New(cfg).Run(cmd.Context(), w)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"accepted %d/%d candidates (unsolvable %d, not unique %d, inconclusive %d, divergent %d, exhausted %d) -> %s\n",
			stats.Accepted.Load(), stats.Candidates.Load(),
			stats.RejectedUnsolvable.Load(), stats.RejectedNotUnique.Load(),
			stats.Inconclusive.Load(), stats.Divergent.Load(), stats.Exhausted.Load(),
			cfg.Output.Path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlags.config, "config", "c", "", "YAML configuration file")
	generateCmd.Flags().StringVarP(&generateFlags.out, "out", "o", "", "output path (overrides config)")
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 0, "generation seed (overrides config)")
	generateCmd.Flags().IntVarP(&generateFlags.count, "count", "n", 0, "number of problems (overrides config)")
	generateCmd.Flags().BoolVar(&generateFlags.smt, "smt", false, "cross-check every candidate with the SAT backend")
}
