// Package config provides configuration loading, merging, and validation
// for the notesync client and the reference backend.
//
// Configuration is assembled from these sources; a field set by an earlier
// source is kept:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the backend and
// [GetClientConfig] for the CLI.
package config
