package corpus

import (
	"regexp"
	"strings"

	"embedlab/internal/models"
)

var (
	symbolRe     = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Preprocess applies the selected flags to text. Flags are applied in a
// fixed order so the result does not depend on selection order.
func Preprocess(text string, flags []string) string {
	set := make(map[string]struct{}, len(flags))
	for _, f := range flags {
		set[f] = struct{}{}
	}
	if _, ok := set[models.PreprocessLowercase]; ok {
		text = strings.ToLower(text)
	}
	if _, ok := set[models.PreprocessStripSymbols]; ok {
		text = symbolRe.ReplaceAllString(text, "")
	}
	if _, ok := set[models.PreprocessTrimSpaces]; ok {
		text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	}
	return text
}

// ValidateFlags returns the unknown flags in the given selection.
func ValidateFlags(flags []string) []string {
	known := make(map[string]struct{}, len(models.PreprocessFlags))
	for _, f := range models.PreprocessFlags {
		known[f] = struct{}{}
	}
	var unknown []string
	for _, f := range flags {
		if _, ok := known[f]; !ok {
			unknown = append(unknown, f)
		}
	}
	return unknown
}
