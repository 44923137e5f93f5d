// Package cli provides the command-line interface for readlai. It handles
// flag parsing, command creation and configuration management using cobra
// and viper, and wires the translator to the configured store and endpoint.
package cli
