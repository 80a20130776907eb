// Subcommand (`readsim profile`) for validating and summarizing error
// profile archives.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"readsim/errmodel"
)

// ProfileCommand creates the `profile` subcommand, which loads a profile
// archive, validates its structure and prints a summary. Useful for
// checking an archive before a long simulation run.
func ProfileCommand() *cobra.Command {
	var profileFile string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect an error profile archive",
		Long: `Load an error profile archive, validate its structure (required keys, table
lengths consistent with the read length) and print a summary of its contents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(profileFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&profileFile, "profile", "p", "", "Error profile archive (required)")

	cmd.MarkFlagRequired("profile")

	return cmd
}

func runProfile(path string) error {
	p, err := errmodel.LoadProfile(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", bold(cyan("Error profile: "))+path)
	fmt.Printf("  %s %d\n", yellow("read length:        "), p.ReadLength)
	fmt.Printf("  %s %d\n", yellow("insert size:        "), p.InsertSize)
	fmt.Printf("  %s %d forward, %d reverse\n", yellow("quality histograms: "),
		len(p.QualityHistForward), len(p.QualityHistReverse))
	fmt.Printf("  %s %d forward, %d reverse\n", yellow("substitution rows:  "),
		len(p.SubstMatrixForward), len(p.SubstMatrixReverse))
	return nil
}
