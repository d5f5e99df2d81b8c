package main

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Classify returns the first instrument, in catalog order, whose keyword
// alternation occurs in name. Later instruments are never consulted once one
// matches, even if they would match too.
func Classify(name string, catalog Catalog) (*Instrument, error) {
	for i := range catalog {
		inst := &catalog[i]
		terms := inst.KeywordTerms()
		if len(terms) == 0 {
			continue
		}
		re, err := buildMatcher(terms)
		if err != nil {
			return nil, errors.Wrapf(err, "instrument %q", inst.Prefix)
		}
		if re.MatchString(name) {
			return inst, nil
		}
	}
	return nil, ErrNoMatch
}

// Synthesize builds "<prefix> - <keywords> <descriptors> <rest>" from a
// sanitized name. Keyword tokens are canonical names in first-occurrence
// order, descriptors follow in the order they appear, and whatever text is
// left over becomes the final token.
func Synthesize(name string, inst *Instrument) (string, error) {
	keywordRe, err := buildMatcher(inst.KeywordTerms())
	if err != nil {
		return "", errors.Wrapf(err, "instrument %q", inst.Prefix)
	}

	matches := keywordRe.FindAllString(name, -1)
	if len(matches) == 0 {
		return "", errors.Wrapf(ErrNoSynthesis, "instrument %q", inst.Prefix)
	}

	rest := strings.ReplaceAll(keywordRe.ReplaceAllLiteralString(name, ""), "  ", " ")

	var parts []string
	seen := make(map[string]bool)
	for _, m := range matches {
		if m == "" || inst.isInvalid(m) {
			continue
		}
		canonical, ok := inst.canonicalFor(m)
		if !ok {
			// unreachable while the matcher and the alias table come from the same instrument
			return "", errors.Wrapf(ErrAliasInconsistency, "match %q in instrument %q", m, inst.Prefix)
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		parts = append(parts, canonical)
	}

	if len(inst.Descriptors) > 0 {
		descRe, err := buildMatcher(inst.Descriptors)
		if err != nil {
			return "", errors.Wrapf(err, "instrument %q descriptors", inst.Prefix)
		}
		for _, d := range descRe.FindAllString(rest, -1) {
			if d != "" {
				parts = append(parts, d)
			}
		}
		rest = descRe.ReplaceAllLiteralString(rest, "")
	}

	if leftover := strings.TrimSpace(rest); leftover != "" {
		parts = append(parts, leftover)
	}

	return strings.TrimSpace(inst.Prefix + " - " + strings.Join(parts, " ")), nil
}

// RenameStem sanitizes a raw file stem, classifies it and synthesizes its
// canonical form. The matched instrument is returned alongside the name.
func RenameStem(raw string, catalog Catalog) (string, *Instrument, error) {
	name := sanitizeName(raw)

	inst, err := Classify(name, catalog)
	if err != nil {
		return "", nil, err
	}

	newName, err := Synthesize(name, inst)
	if err != nil {
		return "", inst, err
	}
	return newName, inst, nil
}
