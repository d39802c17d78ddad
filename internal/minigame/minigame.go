// Package minigame содержит небольшие игры для разминки: реакция, анаграмма и угадай слово.
// Игры не потокобезопасны, синхронизация на стороне владельца.
package minigame

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
)

var (
	ErrNotStarted   = errors.New("minigame is not started")
	ErrGameOver     = errors.New("minigame is over")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrNoWords      = errors.New("word list is empty")
	ErrInvalidWord  = errors.New("invalid word")
)

// Status - статус раунда.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusWon      Status = "won"
	StatusLost     Status = "lost"
	StatusRevealed Status = "revealed"
)

// Finished возвращает true для завершенного раунда.
func (s Status) Finished() bool {
	return s != StatusPlaying
}

// NormalizeWord приводит слово к нижнему регистру без пробелов по краям.
// В слове должна быть хотя бы одна буква.
func NormalizeWord(word string) (string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return "", fmt.Errorf("%w: empty word", ErrInvalidWord)
	}
	if strings.IndexFunc(word, unicode.IsLetter) < 0 {
		return "", fmt.Errorf("%w: %q has no letters", ErrInvalidWord, word)
	}
	return word, nil
}

// pickWord выбирает случайное слово, пропуская непригодные.
func pickWord(words []string, rnd *rand.Rand) (string, error) {
	valid := make([]string, 0, len(words))
	for _, w := range words {
		if norm, err := NormalizeWord(w); err == nil {
			valid = append(valid, norm)
		}
	}
	if len(valid) == 0 {
		return "", ErrNoWords
	}
	return valid[rnd.IntN(len(valid))], nil
}
