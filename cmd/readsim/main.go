// readsim simulates sequencing reads with realistic error profiles:
// quality scores and substitution errors come from either a parametric
// model or an empirical profile recorded from a real sequencing run.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const VERSION = "0.1.0"

// Define color functions
var (
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func getColorizedLogo() string {
	return cyan("⠿⠭⣿ readsim")
}

func main() {
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "readsim",
		Short: bold("Simulate sequencing reads with realistic error profiles"),
		Run: func(cmd *cobra.Command, args []string) {
			if showVersion {
				fmt.Printf("readsim %s\n", VERSION)
				return
			}
			helpFunc(cmd, args)
		},
	}

	rootCmd.SetHelpFunc(helpFunc)
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(GenerateCommand())
	rootCmd.AddCommand(ProfileCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		fmt.Fprintln(os.Stderr, red("Try 'readsim --help' for more information"))
		os.Exit(1)
	}
}
