// Command wordprob generates, re-verifies and inspects datasets of
// arithmetic word problems with formally verified unique answers.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	wordprob "github.com/wordprob/wordprob"
	"github.com/wordprob/wordprob/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wordprob",
	Short: "verified arithmetic word problem generation",
	Long: `wordprob simulates agents exchanging countable objects, hides selected
quantities and emits only problems whose hidden quantities are proven to
have exactly one valid answer.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			logger.Set(logger.Logger().Level(zerolog.DebugLevel))
		} else {
			logger.Set(logger.Logger().Level(zerolog.InfoLevel))
		}
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the wordprob version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(wordprob.Version.String())
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(versionCmd, generateCmd, verifyCmd, inspectCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
