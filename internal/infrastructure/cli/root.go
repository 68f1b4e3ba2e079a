package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "estrack",
	Version: Version,
	Short:   "Earned Schedule analysis and schedule forecasting",
	Long: `Estrack computes Earned Schedule metrics over cumulative Planned Value
and Earned Value series. It answers:
1. How far ahead or behind schedule is the project?
2. When will the tracked milestone actually complete?
3. What happens if performance recovers, slips or holds?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
