// Copyright © 2026 The LISPE authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lispe",
	Short: "LISPE, a small Scheme interpreter with a fixed-size heap",
	Long: `LISPE is a small Scheme dialect with a real and complex numeric tower.
Every interpreter owns a fixed-size heap of cells, numbers and symbols which
is reclaimed by a mark-sweep collector when an arena runs out.

Getting started:
  lispe run file.scm            Run a source file
  lispe run -p -e '(+ 1 2i)'    Evaluate an expression and print it
  lispe repl                    Start an interactive REPL
  lispe builtins car            Show documentation for a builtin

Heap and stack limits are set with flags, with LISPE_* environment variables
(e.g. LISPE_CELLS=100000) or in $HOME/.lispe.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lispe.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	addInterpreterFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lispe" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lispe")
	}

	viper.SetEnvPrefix("lispe")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
