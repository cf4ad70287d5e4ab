// Package commands defines the drumkit CLI and wires dependencies for subcommands.
//
// Commands
//
//   - (none)         Run the terminal load board
//   - loads list     Print one page of loads
//   - loads create   Validate a load payload file and create it
//   - config path    Print the config file location
//   - config init    Write the default config file
//   - cache clear    Delete the cached list pages
//
// # Implementation
//
// The root command loads configuration and builds the API client before any
// subcommand runs. The board logs to a file because it owns the terminal;
// the other commands log to stderr.
package commands
