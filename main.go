package main

import (
	"os"

	"github.com/loomlang/loom/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "loom [subcommand]",
	Short:        "loom 🧵\n the structural checker for the loom language",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SelfcheckCmd)
}
