package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/restclient/packages/logger"
	"github.com/abdul-hamid-achik/restclient/packages/output"
	"github.com/abdul-hamid-achik/restclient/packages/response"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a raw HTTP response",
	Long: `Parse a raw HTTP response (as captured from a socket or "curl -i")
and print its status lines, normalized headers and body.

Examples:
  restclient parse response.txt
  curl -si https://httpbin.org/get | restclient parse -o json
  restclient parse response.txt --decode`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseCommand,
}

var (
	parseDecodeFlag bool
	parseFormatFlag string
)

func init() {
	parseCmd.Flags().BoolVar(&parseDecodeFlag, "decode", false, "Decode the body (json, yaml) before printing")
	parseCmd.Flags().StringVar(&parseFormatFlag, "format", "", "Body format for --decode (default: from Content-Type)")
}

func parseCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer logger.Sync(s.logger)

	var raw []byte
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return withExitCode(ExitParseError, fmt.Errorf("reading response: %w", err))
	}

	res := response.Parse(string(raw))

	var decoded any
	if parseDecodeFlag {
		format := parseFormatFlag
		if format == "" {
			format = s.config.Format
		}
		decoded, err = res.Decode(response.NewRegistry(), format)
		if err != nil {
			return withExitCode(ExitParseError, err)
		}
	}

	return printResult(cmd, s, res, decoded)
}

func printResult(cmd *cobra.Command, s *settings, res *response.Result, decoded any) error {
	if outputFlag == "" || outputFlag == "console" {
		f := output.NewConsoleFormatter(
			output.WithWriter(cmd.OutOrStdout()),
			output.WithNoColor(s.config.GetNoColor()),
			output.WithHeadersOnly(headersOnlyFlag),
		)
		return f.Format(res, decoded)
	}

	f, err := s.formatter(cmd)
	if err != nil {
		return err
	}
	return f.Format(res, decoded)
}
