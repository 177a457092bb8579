package systems

import (
	"math/rand/v2"
	"strconv"

	"github.com/lixenwraith/system-defender/constants"
)

// GenerateQuestion returns a prompt and the exact rune sequence that answers it
// Unknown modes fall back to Hangul and difficulty is clamped, so every input yields a pair
func GenerateQuestion(rng *rand.Rand, mode constants.GameMode, difficulty int) (prompt, answer string) {
	difficulty = constants.ClampDifficulty(difficulty)

	switch mode {
	case constants.ModeMath:
		a := 2 + rng.IntN(8)
		b := 1 + rng.IntN(9)
		return strconv.Itoa(a) + "×" + strconv.Itoa(b), strconv.Itoa(a * b)

	case constants.ModeArithmetic:
		return arithmeticQuestion(rng, difficulty)

	default:
		if difficulty >= constants.HangulWordThreshold {
			w := constants.HangulWords[rng.IntN(len(constants.HangulWords))]
			return w.Word, w.Jamo
		}
		c := constants.HangulJamo[rng.IntN(len(constants.HangulJamo))]
		return c, c
	}
}

// arithmeticQuestion picks the operator by difficulty: 1,3 add, 2,4 subtract, 5 either
// Difficulty 3 and up uses two-digit operands
func arithmeticQuestion(rng *rand.Rand, difficulty int) (string, string) {
	subtract := difficulty == 2 || difficulty == 4
	if difficulty == 5 {
		subtract = rng.Float64() > 0.5
	}
	twoDigit := difficulty >= 3

	if !subtract {
		lo, hi := 1, 9
		if twoDigit {
			lo, hi = 10, 50
		}
		a := lo + rng.IntN(hi-lo+1)
		b := lo + rng.IntN(hi-lo+1)
		return strconv.Itoa(a) + "+" + strconv.Itoa(b), strconv.Itoa(a + b)
	}

	lo, hi := 1, 9
	if twoDigit {
		lo, hi = 10, 99
	}
	a := lo + rng.IntN(hi-lo+1)
	b := 1 + rng.IntN(a) // [1, a] keeps the result non-negative
	return strconv.Itoa(a) + "-" + strconv.Itoa(b), strconv.Itoa(a - b)
}
