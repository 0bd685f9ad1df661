// Package cmd implements the restclient CLI commands using Cobra.
//
// Available commands:
//   - request: Send a request and print the parsed response
//   - encode: Print the form encoding of key=value parameters
//   - parse: Parse a raw HTTP response from a file or stdin
//   - completion: Generate shell completion scripts
//   - version: Show restclient version information
//
// Settings come from a .restclient.json/.yaml file, a .env file,
// RESTCLIENT_* environment variables and flags, in increasing precedence.
package cmd
