package minigame

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

// WordGuessSnapshot - состояние для клиента.
type WordGuessSnapshot struct {
	Masked   string   `json:"masked"` // Неоткрытые буквы заменены на "_"
	Guessed  []string `json:"guessed"`
	Wrong    int      `json:"wrong"`
	MaxWrong int      `json:"maxWrong"`
	Status   Status   `json:"status"`
	Word     string   `json:"word,omitempty"`
}

// GuessResult - результат одной буквы.
type GuessResult struct {
	Hit       bool  `json:"hit"`
	Repeated  bool  `json:"repeated"`
	Positions []int `json:"positions,omitempty"`
}

// WordGuess - угадай слово по буквам (виселица).
type WordGuess struct {
	word     []rune
	guessed  map[rune]bool
	order    []rune
	wrong    int
	maxWrong int
	status   Status
}

// NewWordGuess выбирает случайное слово из words.
func NewWordGuess(words []string, maxWrong int, rnd *rand.Rand) (*WordGuess, error) {
	word, err := pickWord(words, rnd)
	if err != nil {
		return nil, err
	}
	if maxWrong < 1 {
		maxWrong = 1
	}
	return &WordGuess{
		word:     []rune(word),
		guessed:  make(map[rune]bool),
		maxWrong: maxWrong,
		status:   StatusPlaying,
	}, nil
}

// GuessLetter открывает все позиции буквы. Повторная буква ничего не меняет.
func (g *WordGuess) GuessLetter(letter rune) (GuessResult, error) {
	if g.status.Finished() {
		return GuessResult{}, ErrGameOver
	}
	if !unicode.IsLetter(letter) {
		return GuessResult{}, ErrInvalidGuess
	}
	letter = unicode.ToLower(letter)
	if g.guessed[letter] {
		return GuessResult{Repeated: true}, nil
	}
	g.guessed[letter] = true
	g.order = append(g.order, letter)

	var res GuessResult
	for i, r := range g.word {
		if r == letter {
			res.Positions = append(res.Positions, i)
		}
	}
	res.Hit = len(res.Positions) > 0

	switch {
	case !res.Hit:
		g.wrong++
		if g.wrong >= g.maxWrong {
			g.status = StatusLost
		}
	case g.allRevealed():
		g.status = StatusWon
	}
	return res, nil
}

func (g *WordGuess) allRevealed() bool {
	for _, r := range g.word {
		if unicode.IsLetter(r) && !g.guessed[r] {
			return false
		}
	}
	return true
}

// Masked возвращает слово с закрытыми буквами. Не буквы (дефис, пробел) видны сразу.
func (g *WordGuess) Masked() string {
	var b strings.Builder
	for _, r := range g.word {
		if !unicode.IsLetter(r) || g.guessed[r] {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Snapshot возвращает состояние игры.
func (g *WordGuess) Snapshot() WordGuessSnapshot {
	guessed := make([]string, len(g.order))
	for i, r := range g.order {
		guessed[i] = string(r)
	}
	snap := WordGuessSnapshot{
		Masked:   g.Masked(),
		Guessed:  guessed,
		Wrong:    g.wrong,
		MaxWrong: g.maxWrong,
		Status:   g.status,
	}
	if g.status.Finished() {
		snap.Word = string(g.word)
	}
	return snap
}
