package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// glyphReplacer unifies quotes, dashes and arrow/bullet glyphs that pasted
// and OCR text commonly carries.
var glyphReplacer = strings.NewReplacer(
	"\r", "",
	"\uFEFF", "",
	// quotes and apostrophes
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
	// dashes and minus signs
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-", "−", "-", "﹣", "-", "－", "-",
	// arrows
	"→", "/", "⇒", "/", "➔", "/", "➜", "/", "➝", "/", "➤", "/", "►", "/", "›", "/", "»", "/",
)

// inlineSpace matches whitespace runs that do not cross a line break.
var inlineSpace = regexp.MustCompile(`[\t\f\v\p{Zs}]+`)

// Normalize cleans raw quiz text while keeping its line structure.
// It never fails; empty or whitespace-only input yields "".
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(glyphReplacer.Replace(raw))
	s = inlineSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
