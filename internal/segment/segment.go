// Package segment splits raw text into sentences and word units.
//
// Sentences come from UAX #29 sentence boundaries, with breaks after known
// abbreviations and initials removed. Word units follow treebank conventions:
// a unit is a whitespace-delimited run with punctuation peeled off its edges,
// so "well-known", "and/or" and a mid-sentence "Mr." each stay one unit.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// titles precede a name, so a sentence never ends on them.
var titles = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {}, "st": {},
	"mt": {}, "rev": {}, "gen": {}, "col": {}, "lt": {}, "sgt": {}, "capt": {}, "gov": {},
	"sen": {}, "rep": {}, "hon": {}, "fr": {}, "messrs": {},
}

// abbreviations end a sentence only when the next one starts with a capital letter.
var abbreviations = map[string]struct{}{
	"e.g": {}, "i.e": {}, "etc": {}, "vs": {}, "cf": {}, "al": {}, "approx": {},
	"inc": {}, "ltd": {}, "co": {}, "corp": {}, "dept": {}, "univ": {}, "fig": {},
	"no": {}, "vol": {}, "pp": {}, "ca": {}, "a.m": {}, "p.m": {}, "u.s": {}, "u.k": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {}, "jul": {}, "aug": {},
	"sep": {}, "sept": {}, "oct": {}, "nov": {}, "dec": {},
}

// clitics are split off the end of a unit, so "cat's" yields "cat" and "'s".
var clitics = []string{"n't", "'s", "'m", "'d", "'ll", "'re", "'ve"}

// Sentences splits text into trimmed sentences. Lines are split first, so a
// sentence never spans a newline. Empty sentences are omitted.
func Sentences(text string) []string {
	result := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		var parts []string
		iter := sentences.FromString(line)
		for iter.Next() {
			parts = append(parts, iter.Value())
		}

		for i := 0; i < len(parts); i++ {
			current := parts[i]
			for i+1 < len(parts) && continuesAfter(current, parts[i+1]) {
				i++
				current += parts[i]
			}
			if trimmed := strings.TrimSpace(current); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}

// continuesAfter reports whether the boundary between current and next falls
// after an abbreviation rather than at the end of a sentence.
func continuesAfter(current, next string) bool {
	trimmed := strings.TrimRightFunc(current, unicode.IsSpace)
	if !strings.HasSuffix(trimmed, ".") {
		return false
	}
	fields := strings.Fields(trimmed)
	last := strings.TrimLeft(fields[len(fields)-1], "\"'([{“‘")
	stem := strings.TrimSuffix(last, ".")
	word := strings.ToLower(stem)

	if _, ok := titles[word]; ok {
		return true
	}
	if r, size := utf8.DecodeRuneInString(stem); size > 0 && size == len(stem) && unicode.IsUpper(r) {
		return true // initial, as in "J. K. Rowling"
	}
	if _, ok := abbreviations[word]; ok {
		return !startsUpper(next)
	}
	return false
}

func startsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || strings.ContainsRune("\"'([{“‘", r) {
			continue
		}
		return unicode.IsUpper(r)
	}
	return false
}

// Words splits one sentence into units. Punctuation is emitted as its own unit,
// except inside a run (hyphens, slashes, inner periods, digit separators).
// The period ending the sentence is split from the last word.
func Words(sentence string) []string {
	units := make([]string, 0)
	for _, chunk := range strings.Fields(sentence) {
		for _, piece := range splitPunctuation(chunk) {
			units = append(units, splitClitic(piece)...)
		}
	}
	return splitFinalPeriod(units)
}

// alwaysSplit runes become units of their own wherever they appear.
const alwaysSplit = ";@#$%&?!()[]{}<>\"`“”‘"

func splitPunctuation(chunk string) []string {
	var pieces []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			pieces = append(pieces, current.String())
			current.Reset()
		}
	}

	runes := []rune(chunk)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case strings.ContainsRune(alwaysSplit, r):
			flush()
			pieces = append(pieces, string(r))
		case r == ',' || r == ':':
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				current.WriteRune(r)
				continue
			}
			flush()
			pieces = append(pieces, string(r))
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			flush()
			pieces = append(pieces, "--")
			i++
		case r == '.' && i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.':
			flush()
			pieces = append(pieces, "...")
			i += 2
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return pieces
}

// splitClitic separates a trailing English clitic or closing quote from a unit.
func splitClitic(unit string) []string {
	normalized := strings.ReplaceAll(unit, "’", "'")
	for _, clitic := range clitics {
		cut := len(normalized) - len(clitic)
		if cut <= 0 {
			continue
		}
		if strings.EqualFold(normalized[cut:], clitic) {
			return []string{normalized[:cut], normalized[cut:]}
		}
	}
	if len(normalized) > 1 && strings.HasSuffix(normalized, "'") {
		return []string{normalized[:len(normalized)-1], "'"}
	}
	return []string{unit}
}

// splitFinalPeriod splits the sentence-ending period off the last word-bearing
// unit. Trailing closing punctuation is skipped over; "..." is left alone.
func splitFinalPeriod(units []string) []string {
	for i := len(units) - 1; i >= 0; i-- {
		unit := units[i]
		if isClosing(unit) {
			continue
		}
		if len(unit) < 2 || !strings.HasSuffix(unit, ".") || strings.HasSuffix(unit, "..") {
			return units
		}
		result := make([]string, 0, len(units)+1)
		result = append(result, units[:i]...)
		result = append(result, unit[:len(unit)-1], ".")
		return append(result, units[i+1:]...)
	}
	return units
}

func isClosing(unit string) bool {
	switch unit {
	case ")", "]", "}", ">", "\"", "'", "”":
		return true
	}
	return false
}
