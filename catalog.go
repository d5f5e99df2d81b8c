package main

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Keyword is a canonical term plus the alternate spellings that resolve to it.
type Keyword struct {
	Name    string   `mapstructure:"name" yaml:"name" json:"name"`
	Aliases []string `mapstructure:"aliases" yaml:"aliases" json:"aliases"`
}

// Terms returns the aliases followed by the name. This is the order the
// keyword contributes to an alternation.
func (k Keyword) Terms() []string {
	terms := make([]string, 0, len(k.Aliases)+1)
	terms = append(terms, k.Aliases...)
	return append(terms, k.Name)
}

// Instrument is one classification target in the catalog.
type Instrument struct {
	Prefix       string    `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
	Keywords     []Keyword `mapstructure:"keywords" yaml:"keywords" json:"keywords"`
	Descriptors  []string  `mapstructure:"descriptors" yaml:"descriptors" json:"descriptors"`
	InvalidNames []string  `mapstructure:"invalid_names" yaml:"invalid_names" json:"invalid_names"`
}

// KeywordTerms flattens the terms of every keyword, in catalog order.
func (inst *Instrument) KeywordTerms() []string {
	var terms []string
	for _, k := range inst.Keywords {
		terms = append(terms, k.Terms()...)
	}
	return terms
}

// canonicalFor maps a matched keyword term back to its keyword name.
// Names are checked before aliases; both comparisons ignore case.
func (inst *Instrument) canonicalFor(term string) (string, bool) {
	for _, k := range inst.Keywords {
		if strings.EqualFold(k.Name, term) {
			return k.Name, true
		}
	}
	for _, k := range inst.Keywords {
		for _, alias := range k.Aliases {
			if strings.EqualFold(alias, term) {
				return k.Name, true
			}
		}
	}
	return "", false
}

func (inst *Instrument) isInvalid(term string) bool {
	for _, invalid := range inst.InvalidNames {
		if strings.EqualFold(invalid, term) {
			return true
		}
	}
	return false
}

// Validate checks the invariants the matcher and synthesizer rely on.
func (inst *Instrument) Validate() error {
	if strings.TrimSpace(inst.Prefix) == "" {
		return errors.Wrap(ErrInvalidCatalog, "prefix is required")
	}
	if len(inst.Keywords) == 0 {
		return errors.Wrapf(ErrInvalidCatalog, "instrument %q has no keywords", inst.Prefix)
	}
	for _, k := range inst.Keywords {
		if k.Name == "" {
			return errors.Wrapf(ErrInvalidCatalog, "instrument %q has a keyword without a name", inst.Prefix)
		}
		for _, alias := range k.Aliases {
			if alias == "" {
				return errors.Wrapf(ErrInvalidCatalog, "keyword %q has an empty alias", k.Name)
			}
			if strings.EqualFold(alias, k.Name) {
				return errors.Wrapf(ErrInvalidCatalog, "keyword %q lists itself as an alias", k.Name)
			}
		}
	}
	for _, d := range inst.Descriptors {
		if d == "" {
			return errors.Wrapf(ErrInvalidCatalog, "instrument %q has an empty descriptor", inst.Prefix)
		}
	}
	return nil
}

// Catalog is the ordered list of instruments. Earlier entries win.
type Catalog []Instrument

// Validate checks every instrument and reports the first failure with its position.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.Wrap(ErrInvalidCatalog, "no instruments defined")
	}
	for i := range c {
		if err := c[i].Validate(); err != nil {
			return errors.Wrapf(err, "instrument %d", i)
		}
	}
	return nil
}
