package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/restclient/packages/capture"
	"github.com/abdul-hamid-achik/restclient/packages/http"
	"github.com/abdul-hamid-achik/restclient/packages/logger"
	"github.com/abdul-hamid-achik/restclient/packages/response"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:   "request <method> <url>",
	Short: "Send a request and print the parsed response",
	Long: `Send an HTTP request and print every status line, the normalized
headers and the body of the response.

Parameters go into the query string for GET and HEAD and into a
form-encoded body otherwise. Keys ending in [] build array parameters.
Values, headers and the URL may reference {{VARIABLES}} from the env file
or the environment.

Examples:
  restclient request GET https://httpbin.org/get -p q="a b" -p tags[]=x -p tags[]=y
  restclient request POST /users --base-url http://localhost:8080 -p name=ann
  restclient request PATCH /users/1 -d '{"name":"ann"}' -H "Content-Type: application/json"
  restclient request GET /items --format json --decode -o json
  restclient request GET /items/1 -c id=body:data.id -c type=header:content_type`,
	Args: cobra.ExactArgs(2),
	RunE: requestCommand,
}

var (
	paramFlags      []string
	headerFlags     []string
	dataFlag        string
	indexedFlag     bool
	formatFlag      string
	baseURLFlag     string
	userAgentFlag   string
	decodeFlag      bool
	failFlag        bool
	headersOnlyFlag bool
	timeoutFlag     string
	transportFlag   string
	insecureFlag    bool
	proxyFlag       string
	captureFlags    []string
)

func init() {
	requestCmd.Flags().StringArrayVarP(&paramFlags, "param", "p", nil, "Parameter as key=value (repeatable, key[]=value for arrays)")
	requestCmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, `Header as "Name: value" (repeatable)`)
	requestCmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Raw request body, sent as-is (parameters are ignored)")
	requestCmd.Flags().BoolVar(&indexedFlag, "indexed", false, "Encode arrays as key[0]=..&key[1]=.. instead of key[]=..")
	requestCmd.Flags().StringVar(&formatFlag, "format", "", "Format extension appended to the URL and used for decoding")
	requestCmd.Flags().StringVar(&baseURLFlag, "base-url", "", "Base URL for relative request URLs (env: RESTCLIENT_BASE_URL)")
	requestCmd.Flags().StringVar(&userAgentFlag, "user-agent", "", "User-Agent header")
	requestCmd.Flags().BoolVar(&decodeFlag, "decode", false, "Decode the body (json, yaml) before printing")
	requestCmd.Flags().BoolVar(&failFlag, "fail", false, "Exit with status 1 on non-2xx responses")
	requestCmd.Flags().BoolVarP(&headersOnlyFlag, "headers-only", "I", false, "Print status lines and headers only (console output)")
	requestCmd.Flags().StringVar(&timeoutFlag, "timeout", "", "Request timeout (e.g., 5s, 500ms)")
	requestCmd.Flags().StringVar(&transportFlag, "transport", "", "Transport: http or resty (env: RESTCLIENT_TRANSPORT)")
	requestCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", false, "Skip SSL certificate validation")
	requestCmd.Flags().StringVar(&proxyFlag, "proxy", "", "Proxy URL for requests (env: RESTCLIENT_PROXY)")
	requestCmd.Flags().StringArrayVarP(&captureFlags, "capture", "c", nil, "Print a value as name=source[:path] (body:<gjson path>, header:<name>, status, lines)")
}

func requestCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	defer logger.Sync(s.logger)

	cfg := s.config
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if formatFlag != "" {
		cfg.Format = formatFlag
	}
	if userAgentFlag != "" {
		cfg.UserAgent = userAgentFlag
	}
	if transportFlag != "" {
		cfg.Transport = transportFlag
	}
	if proxyFlag != "" {
		cfg.Proxy = proxyFlag
	}
	if indexedFlag {
		cfg.IndexedQueries = &indexedFlag
	}
	if insecureFlag {
		validate := false
		cfg.ValidateSSL = &validate
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return withExitCode(ExitUsageError, fmt.Errorf("invalid timeout: %w", err))
		}
		cfg.Timeout = int(d.Milliseconds())
	}
	cfg.BaseURL = s.resolver.Resolve(cfg.BaseURL)
	cfg.Headers = s.resolver.ResolveMap(cfg.Headers)

	opts, err := cfg.ClientOptions()
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	client := http.NewClient(append(opts, http.WithLogger(s.logger))...)

	captures, err := parseCaptures(captureFlags)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	headers, err := parseHeaders(headerFlags, s.resolver)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	body := http.Raw(s.resolver.Resolve(dataFlag))
	if !cmd.Flags().Changed("data") {
		params, err := parseParams(paramFlags, s.resolver)
		if err != nil {
			return withExitCode(ExitParseError, err)
		}
		body = http.Form(params)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := client.Execute(ctx, args[0], s.resolver.Resolve(args[1]), body, headers)
	if err != nil {
		return withExitCode(ExitNetworkError, err)
	}

	var decoded any
	if decodeFlag {
		decoded, err = client.Decode()
		if err != nil {
			return withExitCode(ExitParseError, err)
		}
	}

	if err := printResult(cmd, s, res, decoded); err != nil {
		return err
	}
	if err := printCaptures(cmd, res, captures); err != nil {
		return err
	}

	if failFlag && !res.IsSuccess() {
		return withExitCode(ExitRequestFailure, fmt.Errorf("request failed: %s", res.StatusLine()))
	}
	return nil
}

func parseCaptures(defs []string) ([]*capture.Capture, error) {
	captures := make([]*capture.Capture, 0, len(defs))
	for _, def := range defs {
		c, err := capture.Parse(def)
		if err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}
	return captures, nil
}

// printCaptures writes one name=value line per capture, values JSON encoded.
// Captures that found nothing are skipped.
func printCaptures(cmd *cobra.Command, res *response.Result, captures []*capture.Capture) error {
	if len(captures) == 0 {
		return nil
	}
	values := capture.ExtractAll(res, captures)
	for _, c := range captures {
		v, ok := values[c.Name]
		if !ok {
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", c.Name, data)
	}
	return nil
}
