package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/storefront/internal/config"
	"github.com/storefront/internal/logging"
)

var (
	cfg     config.AppConfig
	verbose bool
)

// rootCmd 未指定子命令时直接启动服务
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront content service: product search, about page and contact info",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logging.Setup(logging.Options{Level: level, Format: cfg.LogFormat})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute 由 main.main 调用
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
