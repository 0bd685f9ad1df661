package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/restclient/packages/logger"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <key=value>...",
	Short: "Print the form encoding of parameters",
	Long: `Print the query string / form body restclient would send for the
given parameters. Keys ending in [] build array parameters.

Examples:
  restclient encode foo=" bar" baz=1 bat[]=foo bat[]=bar
  restclient encode --indexed bat[]=foo bat[]=bar`,
	Args: cobra.MinimumNArgs(1),
	RunE: encodeCommand,
}

var encodeIndexedFlag bool

func init() {
	encodeCmd.Flags().BoolVar(&encodeIndexedFlag, "indexed", false, "Encode arrays as key[0]=..&key[1]=.. instead of key[]=..")
}

func encodeCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer logger.Sync(s.logger)

	params, err := parseParams(args, s.resolver)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	indexed := encodeIndexedFlag || s.config.GetIndexedQueries()
	fmt.Fprintln(cmd.OutOrStdout(), params.Encode(indexed))
	return nil
}
