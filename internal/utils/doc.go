// Package utils contains small internal helpers shared across the
// firmenrich packages: string truncation for log output, JSON
// stringification, and resource-cleanup helpers.
//
// Nothing in this package is part of the public API.
package utils
