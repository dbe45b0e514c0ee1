// Package sync implements the directory-mirroring engine: it merges N
// prioritized source trees into one destination tree and prunes the
// destination against the merged manifest, honoring the compiled
// exclusion matcher throughout.
//
// A run is strictly sequential: Mirror must complete (producing the full
// manifest) before Prune starts, because pruning decisions depend on the
// complete manifest. Per-entry copy and delete failures are never fatal;
// they are collected in a types.Report and the run continues.
package sync
