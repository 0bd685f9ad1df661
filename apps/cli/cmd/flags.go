package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/restclient/packages/core/env"
	"github.com/abdul-hamid-achik/restclient/packages/query"
)

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// parseParams turns key=value arguments into ordered parameters. Keys ending
// in "[]" are collected into a single list parameter, in argument order.
func parseParams(args []string, resolver *env.Resolver) (query.Params, error) {
	var params query.Params
	lists := make(map[string]int)

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", arg)
		}
		value = resolver.Resolve(value)

		name, isList := strings.CutSuffix(key, "[]")
		if !isList {
			params = append(params, query.Param{Key: key, Value: query.String(value)})
			continue
		}
		if i, seen := lists[name]; seen {
			params[i].Value = query.Strings(append(params[i].Value.Items(), value)...)
			continue
		}
		lists[name] = len(params)
		params = append(params, query.Param{Key: name, Value: query.Strings(value)})
	}

	return params, nil
}

// parseHeaders turns "Name: value" arguments into a header map.
func parseHeaders(args []string, resolver *env.Resolver) (map[string]string, error) {
	headers := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q (expected \"Name: value\")", arg)
		}
		headers[name] = resolver.Resolve(strings.TrimSpace(value))
	}
	return headers, nil
}
