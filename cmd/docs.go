// Copyright © 2026 The LISPE authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luthersystems/lispe/docs"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print the language reference",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), docs.LangGuide)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
