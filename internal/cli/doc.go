// Package cli implements the command-line interface for statscrape.
//
// The cli package provides the Cobra-based CLI with the touchdowns, superbowl,
// stock, convert and inspect commands. It loads configuration, installs the
// logger, and coordinates the fetch and scraper packages. Results are written
// to standard output as comma-separated lines; failures map to distinct exit
// codes so scripts can tell a missing table from a network failure.
package cli
