package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// quranicMarks covers the combining marks of Arabic and Quranic orthography:
// honorifics and annotation signs (U+0610-U+061A), tanween, short vowels,
// shadda and sukun (U+064B-U+065F), the superscript alef (U+0670), and the
// Quranic stop signs and small letters (U+06D6-U+06ED, minus the two
// spacing marks U+06DD and U+06DE which are not combining).
var quranicMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061A, Stride: 1},
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06DC, Stride: 1},
		{Lo: 0x06DF, Hi: 0x06E8, Stride: 1},
		{Lo: 0x06EA, Hi: 0x06ED, Stride: 1},
	},
}

var markStripper = runes.Remove(runes.In(quranicMarks))

// StripDiacritics removes all Quranic diacritical marks from text, leaving
// base letters only. Characters outside the mark ranges pass through
// unchanged, so the function is safe to call on mixed or non-Arabic input.
func StripDiacritics(text string) string {
	stripped, _, err := transform.String(markStripper, text)
	if err != nil {
		return text
	}
	return stripped
}

// NormalizeQuranText collapses a fatha (U+064E) immediately followed by a
// superscript alef (U+0670) into just the superscript alef. Some source
// texts carry both marks on the same letter and fonts render them stacked
// on top of each other.
func NormalizeQuranText(text string) string {
	return strings.ReplaceAll(text, "\u064e\u0670", "\u0670")
}
