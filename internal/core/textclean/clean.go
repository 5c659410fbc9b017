// Package textclean normalizes raw resume text before vectorization.
package textclean

import (
	"regexp"
	"strings"
)

// Punctuation is the set of characters replaced by a space.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// whitespace mirrors Unicode-aware \s: ASCII separators plus Z* code points and NEL.
const whitespace = `\t\n\v\f\r\x1c-\x1f\x{85}\p{Z}`

var (
	urlPattern        = regexp.MustCompile(`http[^` + whitespace + `]+[` + whitespace + `]*`)
	retweetPattern    = regexp.MustCompile(`RT|cc`)
	hashtagPattern    = regexp.MustCompile(`#[^` + whitespace + `]+`)
	mentionPattern    = regexp.MustCompile(`@[^` + whitespace + `]+`)
	whitespacePattern = regexp.MustCompile(`[` + whitespace + `]+`)
)

// Clean applies the resume normalization rules in order. Later rules see the
// output of earlier ones, so the order is part of the contract.
func Clean(text string) string {
	out := urlPattern.ReplaceAllLiteralString(text, " ")
	out = retweetPattern.ReplaceAllLiteralString(out, " ")
	out = hashtagPattern.ReplaceAllLiteralString(out, "")
	out = mentionPattern.ReplaceAllLiteralString(out, "  ")
	out = replacePunctuation(out)
	out = replaceNonASCII(out)
	return whitespacePattern.ReplaceAllLiteralString(out, " ")
}

func replacePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(Punctuation, r) {
			return ' '
		}
		return r
	}, s)
}

// replaceNonASCII substitutes one space per code point >= 0x80. Invalid
// UTF-8 bytes decode as utf8.RuneError and are replaced as well.
func replaceNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x80 {
			return ' '
		}
		return r
	}, s)
}
