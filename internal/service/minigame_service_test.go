package service_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/minigame"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMinigameService() *service.MinigameService {
	words := content.WordLists{Scramble: []string{"router"}, WordGuess: []string{"cache"}}
	return service.NewMinigameService(words, service.MinigameOptions{
		ReflexMinDelay:      time.Hour,
		ReflexMaxDelay:      time.Hour,
		ScrambleMaxAttempts: 2,
		WordGuessMaxWrong:   2,
	}, rand.New(rand.NewPCG(1, 2)))
}

func TestMinigameService_NotStarted(t *testing.T) {
	svc := newMinigameService()
	session := testSession()

	_, err := svc.ReactReflex(session)
	assert.ErrorIs(t, err, models.ErrNoActiveMinigame)
	_, err = svc.GuessScramble(session, "router")
	assert.ErrorIs(t, err, models.ErrNoActiveMinigame)
	_, err = svc.RevealScramble(session)
	assert.ErrorIs(t, err, models.ErrNoActiveMinigame)
	_, err = svc.GuessLetter(session, "c")
	assert.ErrorIs(t, err, models.ErrNoActiveMinigame)
}

func TestMinigameService_Reflex(t *testing.T) {
	svc := newMinigameService()
	session := testSession()

	snap := svc.StartReflex(session)
	assert.Equal(t, minigame.ReflexWaiting, snap.State)
	assert.Equal(t, time.Hour.Milliseconds(), snap.GoAfterMs)

	snap, err := svc.ReactReflex(session)
	require.NoError(t, err)
	assert.Equal(t, minigame.ReflexTooSoon, snap.Outcome)

	_, err = svc.ReactReflex(session)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	snap = svc.StartReflex(session)
	assert.Equal(t, 1, snap.Attempts)
}

func TestMinigameService_Scramble(t *testing.T) {
	svc := newMinigameService()
	session := testSession()

	snap, err := svc.StartScramble(session)
	require.NoError(t, err)
	assert.NotEqual(t, "router", snap.Scrambled)
	assert.Empty(t, snap.Word)

	res, err := svc.GuessScramble(session, "ROUTER")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, minigame.StatusWon, res.State.Status)

	_, err = svc.GuessScramble(session, "router")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.GuessScramble(session, "  ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestMinigameService_WordGuess(t *testing.T) {
	svc := newMinigameService()
	session := testSession()

	snap, err := svc.StartWordGuess(session)
	require.NoError(t, err)
	assert.Equal(t, "_____", snap.Masked)

	_, err = svc.GuessLetter(session, "ab")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	res, err := svc.GuessLetter(session, "C")
	require.NoError(t, err)
	assert.True(t, res.Hit)
	assert.Equal(t, []int{0, 2}, res.Positions)
	assert.Equal(t, "c_c__", res.State.Masked)

	for _, l := range []string{"x", "z"} {
		res, err = svc.GuessLetter(session, l)
		require.NoError(t, err)
	}
	assert.Equal(t, minigame.StatusLost, res.State.Status)
	assert.Equal(t, "cache", res.State.Word)
}
