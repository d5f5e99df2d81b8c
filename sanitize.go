package main

import (
	"strings"
	"unicode"
)

// sanitizeName swaps every rune that isn't a letter, a decimal digit or
// whitespace for a single space. Runs of spaces are left alone; token
// boundaries and take numbers ("sidestick 1") survive.
func sanitizeName(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsDigit(r) || unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, raw)
}
