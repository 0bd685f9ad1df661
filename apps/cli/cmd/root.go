package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag   string
	envFileFlag  string
	noColorFlag  bool
	logLevelFlag string
	outputFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "restclient",
	Short: "A small REST client that shows you the raw response.",
	Long: `restclient sends HTTP requests built from key=value parameters and
prints the parsed response: every status line (including 1xx interim
responses), normalized headers and the body.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("RESTCLIENT_CONFIG", ""), "Path to config file (env: RESTCLIENT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", getEnvString("RESTCLIENT_ENV_FILE", ""), "Path to .env file (env: RESTCLIENT_ENV_FILE)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("RESTCLIENT_NO_COLOR", false), "Disable colored output (env: RESTCLIENT_NO_COLOR)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (env: RESTCLIENT_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", getEnvString("RESTCLIENT_OUTPUT", "console"), "Output format: console, json (env: RESTCLIENT_OUTPUT)")

	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
