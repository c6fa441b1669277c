package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "appgen",
	Short: "Compile domain specifications into relational schemas",
	Long: `appgen reads an OpenAPI-style specification whose component schemas carry
x-persistence annotations and compiles it into dependency-ordered SQL DDL,
plus an optional Go source scaffold.

Pipeline: load spec -> extract entities -> resolve foreign keys
          -> order tables -> emit DDL

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (missing or invalid flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or policy values
  11 - Database connection failed
  12 - Apply was declined
  13 - SQL execution failed
  20 - Specification could not be parsed
  21 - Compilation reported errors
  22 - Output could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
