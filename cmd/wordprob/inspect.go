package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wordprob/wordprob/dataset"
)

var inspectFlags struct {
	in string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "summarize a stored dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(inspectFlags.in)
		if err != nil {
			return err
		}
		defer f.Close()
		problems, err := dataset.ReadJSONL(f)
		if err != nil {
			return err
		}

		byKind := map[string]int{}
		byDifficulty := map[string]int{}
		var complexity float64
		for _, p := range problems {
			byKind[string(p.Kind)]++
			byDifficulty[p.Difficulty]++
			complexity += p.Complexity
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d problems\n", len(problems))
		if len(problems) > 0 {
			fmt.Fprintf(out, "mean complexity %.2f\n", complexity/float64(len(problems)))
		}
		for _, section := range []struct {
			name   string
			counts map[string]int
		}{
			{"kind", byKind},
			{"difficulty", byDifficulty},
		} {
			keys := make([]string, 0, len(section.counts))
			for k := range section.counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s %-16s %d\n", section.name, k, section.counts[k])
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFlags.in, "in", "i", "", "dataset file (jsonl)")
	_ = inspectCmd.MarkFlagRequired("in")
}
