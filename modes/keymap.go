// Package modes translates terminal key events into simulation input
package modes

import "unicode"

// KeyToHangul is the two-set (dubeolsik) layout: the jamo printed on each QWERTY key
// Shifted letters map like unshifted ones so Caps Lock does not break typing
var KeyToHangul = map[rune]rune{
	'q': 'ㅂ', 'w': 'ㅈ', 'e': 'ㄷ', 'r': 'ㄱ', 't': 'ㅅ',
	'y': 'ㅛ', 'u': 'ㅕ', 'i': 'ㅑ', 'o': 'ㅐ', 'p': 'ㅔ',
	'a': 'ㅁ', 's': 'ㄴ', 'd': 'ㅇ', 'f': 'ㄹ', 'g': 'ㅎ',
	'h': 'ㅗ', 'j': 'ㅓ', 'k': 'ㅏ', 'l': 'ㅣ',
	'z': 'ㅋ', 'x': 'ㅌ', 'c': 'ㅊ', 'v': 'ㅍ',
	'b': 'ㅠ', 'n': 'ㅜ', 'm': 'ㅡ',
}

// KeyToRune maps a typed rune onto the rune the simulation compares against
// Latin letters become jamo; everything else passes through unchanged
func KeyToRune(r rune) rune {
	if j, ok := KeyToHangul[unicode.ToLower(r)]; ok {
		return j
	}
	return r
}

// Typeable reports whether r can advance any prompt: digits, jamo, Hangul syllables, Latin letters and the minus sign
func Typeable(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r == '-':
		return true
	case r >= 'ㄱ' && r <= 'ㅣ':
		return true
	case r >= '가' && r <= '힣':
		return true
	case r >= '０' && r <= '９':
		return true
	}
	_, ok := KeyToHangul[unicode.ToLower(r)]
	return ok
}
