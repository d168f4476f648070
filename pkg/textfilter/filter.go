package textfilter

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Japanese IME input routinely mixes full-width digits, Latin letters and
// ideographic spaces into free text. Prompts should carry one canonical form
// so the renderer stays deterministic across input methods.

var (
	ideographicSpaces = regexp.MustCompile(`[\x{3000}\x{00A0}]`)
	trailingSpaces    = regexp.MustCompile(`[ \t]+\n`)
	spaceRuns         = regexp.MustCompile(`[ \t]{2,}`)
)

// NormalizeFreeText canonicalizes user-entered free text: NFKC normalization,
// full-width ASCII folded to half-width, ideographic spaces mapped to plain
// spaces, runs of spaces squeezed, trailing per-line whitespace dropped, and
// the whole string trimmed. Line breaks inside the text are preserved.
func NormalizeFreeText(s string) string {
	if s == "" {
		return ""
	}
	out := norm.NFKC.String(s)
	out = width.Fold.String(out)
	out = ideographicSpaces.ReplaceAllString(out, " ")
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = trailingSpaces.ReplaceAllString(out, "\n")
	out = spaceRuns.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// NormalizeModelID canonicalizes a model identifier typed or pasted by the
// user: width folding plus trimming. Model ids are ASCII, but pasted text
// from documentation sometimes arrives full-width.
func NormalizeModelID(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}
