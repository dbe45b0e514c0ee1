// Package types holds the shared data model for the sync engine and the
// build pipeline: source roots, the destination manifest and the sync
// report.
package types
