// Package exclude compiles the exclusion rule set that makes entries
// invisible to both the copy and the prune phases of a sync.
//
// Rules come from four provenances: the built-in dotfile/underscore
// patterns, the built-in cvs-default table (gated by extended exclusion),
// a user ignore file of shell globs, and a whitespace-separated glob list
// from the environment. Each rule is an independently compiled regular
// expression fragment; the fragments are combined by alternation into a
// single matcher with one predicate, Matches(name, isDir).
package exclude
