// Package importers builds the read-only reference dictionary store
// from external wordlist files.
package importers
