package exclude

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/wikimill/wikimill/pkg/errors"
	"github.com/wikimill/wikimill/pkg/logging"
)

// Options are the inputs to Compile. Compilation is a pure function of
// these values; no compiler state is retained between calls.
type Options struct {
	// ExtendedExclude appends the cvs-default rule table.
	ExtendedExclude bool

	// IgnoreFile is the path of a user ignore file holding whitespace
	// separated glob patterns. Empty or unreadable means no user rules.
	IgnoreFile string

	// EnvPatterns is a raw whitespace-separated glob list, conventionally
	// the value of the CVSIGNORE environment variable.
	EnvPatterns string

	// CaseInsensitive selects case-insensitive matching, used on
	// platforms with case-insensitive filesystems.
	CaseInsensitive bool
}

// Matcher is the single compiled exclusion predicate. An entry that
// matches is invisible to both the copy and the prune phase.
type Matcher struct {
	re    *regexp.Regexp
	rules []Rule
}

// Matches reports whether a name is excluded. Directory names are also
// tried with an implicit trailing separator so that directory-only
// patterns behave as expected; a bare-name pattern still matches a
// directory of that name.
func (m *Matcher) Matches(name string, isDir bool) bool {
	if m.re.MatchString(name) {
		return true
	}
	if isDir {
		return m.re.MatchString(name + "/")
	}
	return false
}

// Rules returns the compiled rule set with provenance, in match order.
func (m *Matcher) Rules() []Rule {
	rules := make([]Rule, len(m.rules))
	copy(rules, m.rules)
	return rules
}

// CaseInsensitiveDefault reports whether the host platform calls for
// case-insensitive matching.
func CaseInsensitiveDefault() bool {
	return runtime.GOOS == "windows"
}

// Compile builds one exclusion matcher from the built-in rules, the
// optional extended table, the optional user ignore file and the optional
// environment pattern list. A missing or unreadable ignore file is not an
// error; malformed globs degrade to never-matching rules.
func Compile(fsys afero.Fs, opts Options) (*Matcher, error) {
	logger := logging.GetLogger("exclude")

	rules := BuiltinRules()
	if opts.ExtendedExclude {
		rules = append(rules, CVSDefaultRules()...)
	}

	if opts.IgnoreFile != "" {
		data, err := afero.ReadFile(fsys, opts.IgnoreFile)
		if err != nil {
			logger.Debug().Err(err).Str("path", opts.IgnoreFile).
				Msg("could not read ignore file (might not exist)")
		} else {
			rules = append(rules, globRules(string(data), ProvenanceIgnoreFile, logger)...)
		}
	}

	if opts.EnvPatterns != "" {
		rules = append(rules, globRules(opts.EnvPatterns, ProvenanceEnvironment, logger)...)
	}

	fragments := make([]string, len(rules))
	for i, rule := range rules {
		fragments[i] = rule.Fragment
	}

	expr := "^(?:" + strings.Join(fragments, "|") + ")$"
	if opts.CaseInsensitive {
		expr = "(?i)" + expr
	}
	logger.Debug().Str("regex", expr).Msg("compiled exclusion matcher")

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to compile exclusion matcher")
	}

	return &Matcher{re: re, rules: rules}, nil
}

// globRules translates a whitespace-separated glob list into rules.
func globRules(patterns string, provenance Provenance, logger zerolog.Logger) []Rule {
	var rules []Rule
	for _, glob := range strings.Fields(patterns) {
		fragment, ok := globFragment(glob)
		if !ok {
			logger.Warn().Str("glob", glob).Str("provenance", string(provenance)).
				Msg("unparseable glob pattern, treating as never-matching")
		}
		rules = append(rules, Rule{Fragment: fragment, Provenance: provenance})
	}
	return rules
}
