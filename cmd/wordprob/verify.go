package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordprob/wordprob/compare"
	"github.com/wordprob/wordprob/constraint"
	"github.com/wordprob/wordprob/dataset"
	"github.com/wordprob/wordprob/smt"
	"github.com/wordprob/wordprob/verify"
)

var verifyFlags struct {
	in  string
	smt bool
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "re-verify a stored dataset and report divergences",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(verifyFlags.in)
		if err != nil {
			return err
		}
		defer f.Close()
		problems, err := dataset.ReadJSONL(f)
		if err != nil {
			return err
		}

		smtVerifier := smt.Unavailable("disabled by flag")
		if verifyFlags.smt {
			smtVerifier = smt.New(smt.Config{})
		}
		comparator := compare.New(verify.New(verify.Config{}), smtVerifier)

		var checked, failed, divergent, skipped int
		for _, p := range problems {
			if p.Scenario == nil {
				skipped++
				continue
			}
			sys, err := constraint.Build(p.Scenario, p.Mask)
			if err != nil {
				return fmt.Errorf("problem %s: %w", p.ID, err)
			}
			checked++
			report := comparator.Compare(sys)
			if !report.LinearAlgebra.Solvable || !report.LinearAlgebra.Unique {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", p.ID, report.LinearAlgebra.Message)
			}
			if report.Agreement != nil && !report.Agreement.Ok() {
				divergent++
				fmt.Fprintf(cmd.OutOrStdout(), "DIVERGENCE %s: la=%+v smt.status=%s smt.unique=%t\n",
					p.ID, report.LinearAlgebra, report.SMT.Status, report.SMT.Unique)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "checked %d problems: %d failed, %d divergent, %d without ground truth\n",
			checked, failed, divergent, skipped)
		if failed > 0 || divergent > 0 {
			return fmt.Errorf("dataset failed re-verification")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyFlags.in, "in", "i", "", "dataset file (jsonl)")
	verifyCmd.Flags().BoolVar(&verifyFlags.smt, "smt", false, "also run the SAT cross-check")
	_ = verifyCmd.MarkFlagRequired("in")
}
