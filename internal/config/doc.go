// Package config loads and validates the reify.json configuration file
// consumed by the reify CLI.
package config
