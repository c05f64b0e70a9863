package normalize

import (
	"regexp"
	"strings"
)

// DefaultDescription is substituted for blank or missing description text.
const DefaultDescription = "Unspecified"

// deobfuscate reverses the common leetspeak substitutions seen in
// exported statements, independent of position in the word.
var deobfuscate = strings.NewReplacer(
	"@", "a",
	"3", "e",
	"0", "o",
	"$", "s",
	"5", "s",
)

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9\-.,& ]+`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Description cleans raw description text: trim, reverse obfuscation,
// strip characters outside the allowed set, collapse whitespace runs.
// Blank or missing input gets the placeholder; text that strips down to
// nothing stays empty.
func Description(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DefaultDescription
	}
	s = deobfuscate.Replace(s)
	s = disallowedChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
