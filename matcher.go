package main

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// buildMatcher compiles a case-insensitive alternation over literals.
// Every literal is quoted, so none of them can act as pattern syntax.
// Alternatives are tried in the order given (leftmost-first), which means a
// shorter literal listed before a longer one sharing its prefix wins.
func buildMatcher(literals []string) (*regexp.Regexp, error) {
	if len(literals) == 0 {
		return nil, ErrEmptyMatcher
	}

	quoted := make([]string, len(literals))
	for i, lit := range literals {
		quoted[i] = regexp.QuoteMeta(lit)
	}

	re, err := regexp.Compile(`(?i)(` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling matcher for %d literals", len(literals))
	}
	return re, nil
}
