package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSuggestions_AllPass(t *testing.T) {
	got := GenerateSuggestions(RuleResult{Contrast: 7.0, Color: true, TextResize: true, AltText: true})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestGenerateSuggestions_AllFail(t *testing.T) {
	got := GenerateSuggestions(RuleResult{Contrast: 1.0})
	require.Equal(t, []string{SuggestAltText, SuggestContrast, SuggestColor, SuggestTextResize}, got)
}

func TestGenerateSuggestions_ContrastBoundary(t *testing.T) {
	r := RuleResult{Contrast: ContrastThreshold, Color: true, TextResize: true, AltText: true}
	require.Empty(t, GenerateSuggestions(r))

	r.Contrast = 4.49
	require.Equal(t, []string{SuggestContrast}, GenerateSuggestions(r))
}
