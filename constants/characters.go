package constants

// HangulJamo lists the single consonants and vowels reachable on a 2-set
// QWERTY layout without shift
var HangulJamo = []string{
	"ㅂ", "ㅈ", "ㄷ", "ㄱ", "ㅅ", "ㅛ", "ㅕ", "ㅑ", "ㅐ", "ㅔ",
	"ㅁ", "ㄴ", "ㅇ", "ㄹ", "ㅎ", "ㅗ", "ㅓ", "ㅏ", "ㅣ",
	"ㅋ", "ㅌ", "ㅊ", "ㅍ", "ㅠ", "ㅜ", "ㅡ",
}

// HangulWord pairs a word prompt with its typed jamo sequence
type HangulWord struct {
	Word string
	Jamo string
}

// HangulWords is the word pool for difficulty 4 and above
var HangulWords = []HangulWord{
	{Word: "사과", Jamo: "ㅅㅏㄱㅗㅏ"},
	{Word: "포도", Jamo: "ㅍㅗㄷㅗ"},
	{Word: "수박", Jamo: "ㅅㅜㅂㅏㄱ"},
	{Word: "학교", Jamo: "ㅎㅏㄱㄱㅛ"},
	{Word: "안경", Jamo: "ㅇㅏㄴㄱㅕㅇ"},
	{Word: "우산", Jamo: "ㅇㅜㅅㅏㄴ"},
	{Word: "컴퓨터", Jamo: "ㅋㅓㅁㅍㅠㅌㅓ"},
	{Word: "마우스", Jamo: "ㅁㅏㅇㅜㅅㅡ"},
	{Word: "키보드", Jamo: "ㅋㅣㅂㅗㄷㅡ"},
	{Word: "모니터", Jamo: "ㅁㅗㄴㅣㅌㅓ"},
	{Word: "호랑이", Jamo: "ㅎㅗㄹㅏㅇㅇㅣ"},
	{Word: "고양이", Jamo: "ㄱㅗㅇㅑㅇㅇㅣ"},
	{Word: "강아지", Jamo: "ㄱㅏㅇㅇㅏㅈㅣ"},
	{Word: "비행기", Jamo: "ㅂㅣㅎㅐㅇㄱㅣ"},
	{Word: "자동차", Jamo: "ㅈㅏㄷㅗㅇㅊㅏ"},
}

// HangulWordThreshold is the difficulty at which Hangul prompts become words
const HangulWordThreshold = 4

// QwertyToJamo maps an unshifted QWERTY letter to its 2-set Hangul jamo
var QwertyToJamo = map[rune]string{
	'q': "ㅂ", 'w': "ㅈ", 'e': "ㄷ", 'r': "ㄱ", 't': "ㅅ",
	'y': "ㅛ", 'u': "ㅕ", 'i': "ㅑ", 'o': "ㅐ", 'p': "ㅔ",
	'a': "ㅁ", 's': "ㄴ", 'd': "ㅇ", 'f': "ㄹ", 'g': "ㅎ",
	'h': "ㅗ", 'j': "ㅓ", 'k': "ㅏ", 'l': "ㅣ",
	'z': "ㅋ", 'x': "ㅌ", 'c': "ㅊ", 'v': "ㅍ",
	'b': "ㅠ", 'n': "ㅜ", 'm': "ㅡ",
}
