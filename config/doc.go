// Package config loads and validates the YAML run configuration shared by
// the CLI and the batch runner: solver tolerances, the linear backend
// selection, batch parallelism and the case file list.
package config
