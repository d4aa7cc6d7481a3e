// Package fold normalises free text (food names, goal labels) so that
// accents, case and punctuation do not affect matching.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dropMarks removes Unicode combining marks (category M) from NFD input.
type dropMarks struct{ transform.NopResetter }

func (dropMarks) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if unicode.Is(unicode.M, r) {
			nSrc += size
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Text lowercases s, strips accents, turns every run of non-alphanumeric
// runes into a single space and trims the result.
//
//	"Crème Brûlée"  -> "creme brulee"
//	"High‑Protein"  -> "high protein"
func Text(s string) string {
	s = strings.ToLower(s)
	// ß has no decomposition; expand it before NFD.
	s = strings.ReplaceAll(s, "ß", "ss")

	t := transform.Chain(norm.NFD, dropMarks{}, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	var sb strings.Builder
	sb.Grow(len(out))
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Key is Text with the spaces removed. It is meant for matching short
// enumerated labels where "High-Protein", "high_protein" and "HighProtein"
// must compare equal.
func Key(s string) string {
	return strings.ReplaceAll(Text(s), " ", "")
}
