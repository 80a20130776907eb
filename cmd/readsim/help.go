package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Custom help function
// It provides nicely formatted help messages for the root command and subcommands
func helpFunc(cmd *cobra.Command, args []string) {

	// Specialized help for subcommands
	switch cmd.Name() {
	case "generate":
		fmt.Printf(`
%s

%s
  Sample paired-end fragments from a reference genome and run both mates
  through the selected error model: quality scores are generated first,
  then bases are substituted consistently with those scores.

%s
  %s
  %s
  %s
  %s
  %s
  %s
  %s

%s
  %s
  %s

`,
			bold(getColorizedLogo()+" readsim generate - Simulates paired-end reads from a genome"),
			bold(yellow("Description:")),
			bold(yellow("Flags:")),
			cyan("-g, --genome")+" <string>  : Input genome FASTA file (required)",
			cyan("-o, --output")+" <string>  : Output prefix for <prefix>_R1.fastq and <prefix>_R2.fastq (default, 'readsim')",
			cyan("-m, --model")+" <string>   : Error model, 'basic' or 'kde' (default, 'basic')",
			cyan("-p, --profile")+" <string> : Error profile archive (required for the kde model)",
			cyan("-n, --n-reads")+" <int>    : Number of read pairs to simulate (default, 1000)",
			cyan("-s, --seed")+" <int>       : Random seed, 0 = time-based (default, 0)",
			cyan("-z, --gzip")+" <bool>      : Gzip-compress the output FASTQ files (default, false)",
			bold(yellow("Examples:")),
			cyan("readsim generate -g genome.fasta -o sim -n 10000 --seed 42"),
			cyan("readsim generate -g genome.fasta -m kde -p hiseq.json.zst -o sim"),
		)
		return
	case "profile":
		fmt.Printf(`
%s

%s
  Load an error profile archive, validate its structure and print a
  summary of its contents.

%s
  %s

%s
  %s

`,
			bold(getColorizedLogo()+" readsim profile - Inspects an error profile archive"),
			bold(yellow("Description:")),
			bold(yellow("Flags:")),
			cyan("-p, --profile")+" <string> : Error profile archive (required)",
			bold(yellow("Examples:")),
			cyan("readsim profile -p hiseq.json.zst"),
		)
		return
	}

	// Default: root command help
	fmt.Printf(`
%s

%s
  %s
  %s

%s
  %s
  %s

%s
  # Simulate 10k read pairs with the parametric model
  %s

  # Simulate reads with an empirical error profile
  %s

  # Inspect a profile archive
  %s

`,
		bold(getColorizedLogo()+" readsim v."+VERSION+" - Simulates sequencing reads with realistic error profiles"),
		bold(yellow("Error models:")),
		cyan("basic")+" : phred scores from a normal distribution (mean 30); uniform substitutions",
		cyan("kde")+"   : per-position quality histograms and substitution counts from a profile archive",
		bold(yellow("Subcommands:")),
		cyan("generate")+" : Simulate paired-end reads from a genome",
		cyan("profile")+"  : Inspect an error profile archive",
		bold(yellow("Usage examples:")),
		cyan("readsim generate -g genome.fasta -o sim -n 10000 --seed 42"),
		cyan("readsim generate -g genome.fasta -m kde -p hiseq.json.zst -o sim"),
		cyan("readsim profile -p hiseq.json.zst"),
	)
}
