package main

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drumKit mirrors the drum entry of a typical settings file: the prefix and
// the generic "drum" spellings are suppressed so they never become tokens.
func drumKit() Instrument {
	return Instrument{
		Prefix: "drm",
		Keywords: []Keyword{
			{Name: "drum", Aliases: []string{"drm"}},
			{Name: "kick", Aliases: []string{"kik"}},
			{Name: "tamb", Aliases: []string{"tambourine"}},
			{Name: "shaker", Aliases: []string{"cabasa"}},
			{Name: "break"},
		},
		Descriptors:  []string{"vintage", "break"},
		InvalidNames: []string{"drum", "drm"},
	}
}

func percussion() Instrument {
	return Instrument{
		Prefix: "prc",
		Keywords: []Keyword{
			{Name: "shaker"},
			{Name: "conga", Aliases: []string{"tumba"}},
		},
	}
}

func guitar() Instrument {
	return Instrument{
		Prefix:       "gtr",
		Keywords:     []Keyword{{Name: "guitar", Aliases: []string{"gtr"}}},
		Descriptors:  []string{"clean", "muted", "vintage"},
		InvalidNames: []string{"gtr"},
	}
}

func testCatalog() Catalog {
	return Catalog{drumKit(), percussion(), guitar()}
}

func TestSynthesize(t *testing.T) {
	drums := drumKit()
	gtr := guitar()

	tests := []struct {
		name     string
		inst     *Instrument
		input    string
		expected string
	}{
		{"alias_and_name_collapse", &drums, "tamb tambourine vintage", "drm - tamb vintage"},
		{"alias_resolves_and_prefix_dropped", &drums, "drum beater kik drm", "drm - kick beater"},
		{"alias_then_keyword_then_descriptor", &drums, "cabasa vintage break", "drm - shaker break vintage"},
		{"alias_only", &drums, "kik", "drm - kick"},
		{"repeated_keyword", &drums, "kick kik kick", "drm - kick"},
		{"case_insensitive", &drums, "KIK Vintage", "drm - kick Vintage"},
		{"leftover_inner_spaces_kept", &drums, "kick   low   end", "drm - kick low  end"},
		{"descriptors_in_text_order", &gtr, "vintage guitar muted clean riff", "gtr - guitar vintage muted clean riff"},
		{"invalid_name_suppressed", &gtr, "gtr guitar", "gtr - guitar"},
		{"only_invalid_matches", &drums, "drum", "drm -"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Synthesize(tt.input, tt.inst)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSynthesizeNoKeyword(t *testing.T) {
	drums := drumKit()

	_, err := Synthesize("sidestick 1", &drums)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSynthesis))
}

func TestSynthesizeDeterministic(t *testing.T) {
	drums := drumKit()

	first, err := Synthesize("shaker kick tamb cabasa kik vintage", &drums)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Synthesize("shaker kick tamb cabasa kik vintage", &drums)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "drm - shaker kick tamb vintage", first)
}

func TestSynthesizeNoDescriptors(t *testing.T) {
	perc := percussion()

	result, err := Synthesize("tumba slap 2", &perc)
	require.NoError(t, err)
	assert.Equal(t, "prc - conga slap 2", result)
}

func TestClassify(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		input    string
		expected string
	}{
		{"cabasa vintage break", "drm"},
		{"conga open", "prc"},
		{"tumba", "prc"},
		// both drm and prc know "shaker"; catalog order decides
		{"shaker conga", "drm"},
		{"conga shaker", "drm"},
		{"muted gtr", "gtr"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			inst, err := Classify(tt.input, catalog)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, inst.Prefix)
		})
	}
}

func TestClassifyOrderIsPriority(t *testing.T) {
	reversed := Catalog{percussion(), drumKit()}

	inst, err := Classify("shaker", reversed)
	require.NoError(t, err)
	assert.Equal(t, "prc", inst.Prefix)
}

func TestClassifyNoMatch(t *testing.T) {
	_, err := Classify("sidestick 1", testCatalog())
	assert.True(t, errors.Is(err, ErrNoMatch))

	_, err = Classify("kick", nil)
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestRenameStem(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		raw      string
		expected string
		prefix   string
	}{
		{"Kik_Vintage", "drm - kick Vintage", "drm"},
		{"[cabasa]-break(vintage)", "drm - shaker break vintage", "drm"},
		{"Conga-Open_03", "prc - conga Open 03", "prc"},
		{"Kick - Top - 01", "drm - kick Top  01", "drm"},
		// already canonical names come back unchanged
		{"drm - kick beater", "drm - kick beater", "drm"},
		{"gtr - guitar muted riff", "gtr - guitar muted riff", "gtr"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			result, inst, err := RenameStem(tt.raw, catalog)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.prefix, inst.Prefix)
		})
	}
}

func TestRenameStemInvalid(t *testing.T) {
	_, inst, err := RenameStem("sidestick 1", testCatalog())
	assert.Nil(t, inst)
	assert.True(t, errors.Is(err, ErrNoMatch))
}
