package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/boko-runner/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the runner configuration",
	Long: `Print the built-in runner configuration as YAML, ready to be copied to
~/.boko-runner/configs/runner.yaml and edited. With --effective the
configuration actually loaded (after overrides) is printed instead.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !flagEffective {
			os.Stdout.Write(config.DefaultYAML())
			return
		}
		cfg, err := config.LoadRunner(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fail("%v", err)
		}
		os.Stdout.Write(out)
	},
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a runner YAML config")
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded configuration")
	rootCmd.AddCommand(configCmd)
}
