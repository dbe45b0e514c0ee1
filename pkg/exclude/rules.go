package exclude

// Provenance records where an exclusion rule came from. Rules are never
// individually toggled at match time; provenance exists so rule sets can
// be inspected and tested per source.
type Provenance string

const (
	ProvenanceBuiltinDotfile Provenance = "builtin-dotfile"
	ProvenanceBuiltinCVS     Provenance = "builtin-cvs-default"
	ProvenanceIgnoreFile     Provenance = "user-ignore-file"
	ProvenanceEnvironment    Provenance = "environment"
)

// Rule is one compiled pattern fragment plus its provenance.
type Rule struct {
	// Fragment is a regular expression fragment. The matcher anchors the
	// alternation of all fragments as ^(?:f1|f2|...)$.
	Fragment string

	// Provenance names the source of the rule.
	Provenance Provenance
}

// builtinRules always apply: any name beginning with "." or "_" is
// excluded. The one exception, .htaccess, is handled by the copy phase.
var builtinRules = []Rule{
	{Fragment: `\..*`, Provenance: ProvenanceBuiltinDotfile},
	{Fragment: `\_.*`, Provenance: ProvenanceBuiltinDotfile},
}

// cvsDefaultRules reproduces rsync's --cvs-exclude default patterns:
// revision-control directories, backup and object suffixes, lock and temp
// markers. Directory-only patterns carry a trailing separator alternate.
var cvsDefaultRules = []Rule{
	{Fragment: `RCS`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `SCCS`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `CVS(?:\.adm)?`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `RCSLOG`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `cvslog\..*`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `tags`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `TAGS`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.make\.state`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.nse_depinfo`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*~`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `#.*`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.#.*`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `,.*`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `_\$.*`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\$`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.(?:bak|BAK)`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.orig`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.rej`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.del-.*`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.a`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `core`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.svn(?:/|\\)`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.o(?:bj|lb|ld)?`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.so`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.e(?:xe|lc)`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.Z`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `.*\.ln`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.git(?:/|\\)`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.hg(?:/|\\)`, Provenance: ProvenanceBuiltinCVS},
	{Fragment: `\.bzr(?:/|\\)`, Provenance: ProvenanceBuiltinCVS},
}

// BuiltinRules returns a copy of the always-on rule set.
func BuiltinRules() []Rule {
	rules := make([]Rule, len(builtinRules))
	copy(rules, builtinRules)
	return rules
}

// CVSDefaultRules returns a copy of the extended-exclusion rule set.
func CVSDefaultRules() []Rule {
	rules := make([]Rule, len(cvsDefaultRules))
	copy(rules, cvsDefaultRules)
	return rules
}
