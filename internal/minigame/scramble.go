package minigame

import (
	"math/rand/v2"
	"strings"
)

// maxShuffleTries ограничивает перемешивание слов вроде "aab", где удачных перестановок мало.
const maxShuffleTries = 32

// ScrambleSnapshot - состояние для клиента. Word заполняется только после окончания раунда.
type ScrambleSnapshot struct {
	Scrambled   string `json:"scrambled"`
	Status      Status `json:"status"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"maxAttempts"`
	Word        string `json:"word,omitempty"`
}

// Scramble - анаграмма: угадать слово по перемешанным буквам.
type Scramble struct {
	word        string
	scrambled   string
	attempts    int
	maxAttempts int
	status      Status
}

// NewScramble выбирает случайное слово из words и перемешивает его.
func NewScramble(words []string, maxAttempts int, rnd *rand.Rand) (*Scramble, error) {
	word, err := pickWord(words, rnd)
	if err != nil {
		return nil, err
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Scramble{
		word:        word,
		scrambled:   shuffleWord(word, rnd),
		maxAttempts: maxAttempts,
		status:      StatusPlaying,
	}, nil
}

// shuffleWord перемешивает буквы. Если в слове есть хотя бы две разные буквы,
// результат гарантированно отличается от исходного.
func shuffleWord(word string, rnd *rand.Rand) string {
	letters := []rune(word)
	if !hasDistinctLetters(letters) {
		return word
	}
	for i := 0; i < maxShuffleTries; i++ {
		rnd.Shuffle(len(letters), func(a, b int) { letters[a], letters[b] = letters[b], letters[a] })
		if string(letters) != word {
			return string(letters)
		}
	}
	// Сдвиг на одну позицию всегда меняет слово с разными буквами
	letters = []rune(word)
	return string(append(letters[1:], letters[0]))
}

func hasDistinctLetters(letters []rune) bool {
	if len(letters) < 2 {
		return false
	}
	for _, l := range letters[1:] {
		if l != letters[0] {
			return true
		}
	}
	return false
}

// Guess сравнивает вариант со словом без учета регистра.
func (s *Scramble) Guess(guess string) (bool, error) {
	if s.status.Finished() {
		return false, ErrGameOver
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if guess == "" {
		return false, ErrInvalidGuess
	}

	s.attempts++
	if guess == s.word {
		s.status = StatusWon
		return true, nil
	}
	if s.attempts >= s.maxAttempts {
		s.status = StatusLost
	}
	return false, nil
}

// Reveal завершает раунд и возвращает слово.
func (s *Scramble) Reveal() string {
	if !s.status.Finished() {
		s.status = StatusRevealed
	}
	return s.word
}

// Snapshot возвращает состояние раунда.
func (s *Scramble) Snapshot() ScrambleSnapshot {
	snap := ScrambleSnapshot{
		Scrambled:   s.scrambled,
		Status:      s.status,
		Attempts:    s.attempts,
		MaxAttempts: s.maxAttempts,
	}
	if s.status.Finished() {
		snap.Word = s.word
	}
	return snap
}
