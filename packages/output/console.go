package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/restclient/packages/response"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer      io.Writer
	noColor     bool
	headersOnly bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithHeadersOnly skips the body.
func WithHeadersOnly(h bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.headersOnly = h
	}
}

func (f *ConsoleFormatter) Format(res *response.Result, decoded any) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if len(res.StatusLines) == 0 {
		fmt.Fprintf(f.writer, "%s\n", yellow("(no status line)"))
	}
	for i, line := range res.StatusLines {
		switch {
		case i < len(res.StatusLines)-1:
			fmt.Fprintf(f.writer, "%s\n", cyan(line))
		case res.IsSuccess():
			fmt.Fprintf(f.writer, "%s\n", bold(green(line)))
		case res.StatusCode() >= 400:
			fmt.Fprintf(f.writer, "%s\n", bold(red(line)))
		default:
			fmt.Fprintf(f.writer, "%s\n", bold(yellow(line)))
		}
	}

	for _, name := range res.Headers.Names() {
		value := res.Headers.Get(name)
		if value.IsMulti() {
			fmt.Fprintf(f.writer, "%s: [%s]\n", bold(name), strings.Join(value.Values(), ", "))
			continue
		}
		fmt.Fprintf(f.writer, "%s: %s\n", bold(name), value.First())
	}

	if f.headersOnly {
		return nil
	}

	fmt.Fprintln(f.writer)
	if decoded != nil {
		data, err := json.MarshalIndent(decoded, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(f.writer, string(data))
		return nil
	}
	if res.Body != "" {
		fmt.Fprintln(f.writer, res.Body)
	}
	return nil
}
