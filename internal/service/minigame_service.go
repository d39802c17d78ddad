package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/minigame"
	"troubleshoot-titans/internal/models"
)

// MinigameOptions - параметры мини-игр.
type MinigameOptions struct {
	ReflexMinDelay      time.Duration
	ReflexMaxDelay      time.Duration
	ScrambleMaxAttempts int
	WordGuessMaxWrong   int
}

// ScrambleGuess - результат попытки анаграммы.
type ScrambleGuess struct {
	Correct bool                      `json:"correct"`
	State   minigame.ScrambleSnapshot `json:"state"`
}

// WordGuessResult - результат буквы и состояние игры.
type WordGuessResult struct {
	minigame.GuessResult
	State minigame.WordGuessSnapshot `json:"state"`
}

// MinigameService хранит активные мини-игры пользователей в памяти.
type MinigameService struct {
	words content.WordLists
	opts  MinigameOptions
	now   func() time.Time

	mu        sync.Mutex
	rnd       *rand.Rand
	reflex    map[string]*minigame.Reflex
	scramble  map[string]*minigame.Scramble
	wordGuess map[string]*minigame.WordGuess
}

// NewMinigameService создает сервис. rnd == nil - случайный источник.
func NewMinigameService(words content.WordLists, opts MinigameOptions, rnd *rand.Rand) *MinigameService {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MinigameService{
		words:     words,
		opts:      opts,
		now:       time.Now,
		rnd:       rnd,
		reflex:    make(map[string]*minigame.Reflex),
		scramble:  make(map[string]*minigame.Scramble),
		wordGuess: make(map[string]*minigame.WordGuess),
	}
}

// StartReflex начинает попытку. Экземпляр переиспользуется, чтобы сохранить лучшее время.
func (s *MinigameService) StartReflex(session *models.Session) minigame.ReflexSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reflex[session.UserID]
	if !ok {
		r = minigame.NewReflex(s.opts.ReflexMinDelay, s.opts.ReflexMaxDelay, s.rnd)
		s.reflex[session.UserID] = r
	}
	return r.Start(s.now())
}

func (s *MinigameService) ReactReflex(session *models.Session) (minigame.ReflexSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reflex[session.UserID]
	if !ok {
		return minigame.ReflexSnapshot{}, models.ErrNoActiveMinigame
	}
	snap, err := r.React(s.now())
	return snap, wrapMinigameError(err)
}

func (s *MinigameService) StartScramble(session *models.Session) (minigame.ScrambleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := minigame.NewScramble(s.words.Scramble, s.opts.ScrambleMaxAttempts, s.rnd)
	if err != nil {
		return minigame.ScrambleSnapshot{}, err
	}
	s.scramble[session.UserID] = g
	return g.Snapshot(), nil
}

func (s *MinigameService) GuessScramble(session *models.Session, guess string) (*ScrambleGuess, error) {
	if strings.TrimSpace(guess) == "" {
		return nil, fmt.Errorf("%w: guess must not be empty", models.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.scramble[session.UserID]
	if !ok {
		return nil, models.ErrNoActiveMinigame
	}
	correct, err := g.Guess(guess)
	if err != nil {
		return nil, wrapMinigameError(err)
	}
	return &ScrambleGuess{Correct: correct, State: g.Snapshot()}, nil
}

func (s *MinigameService) RevealScramble(session *models.Session) (minigame.ScrambleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.scramble[session.UserID]
	if !ok {
		return minigame.ScrambleSnapshot{}, models.ErrNoActiveMinigame
	}
	g.Reveal()
	return g.Snapshot(), nil
}

func (s *MinigameService) StartWordGuess(session *models.Session) (minigame.WordGuessSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := minigame.NewWordGuess(s.words.WordGuess, s.opts.WordGuessMaxWrong, s.rnd)
	if err != nil {
		return minigame.WordGuessSnapshot{}, err
	}
	s.wordGuess[session.UserID] = g
	return g.Snapshot(), nil
}

// GuessLetter принимает ровно одну букву.
func (s *MinigameService) GuessLetter(session *models.Session, letter string) (*WordGuessResult, error) {
	letter = strings.TrimSpace(letter)
	if utf8.RuneCountInString(letter) != 1 {
		return nil, fmt.Errorf("%w: exactly one letter expected", models.ErrInvalidInput)
	}
	r, _ := utf8.DecodeRuneInString(letter)

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.wordGuess[session.UserID]
	if !ok {
		return nil, models.ErrNoActiveMinigame
	}
	res, err := g.GuessLetter(r)
	if err != nil {
		return nil, wrapMinigameError(err)
	}
	return &WordGuessResult{GuessResult: res, State: g.Snapshot()}, nil
}

// wrapMinigameError превращает ошибки хода в ошибку ввода.
func wrapMinigameError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, minigame.ErrGameOver) || errors.Is(err, minigame.ErrInvalidGuess) || errors.Is(err, minigame.ErrNotStarted) {
		return fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}
	return err
}
