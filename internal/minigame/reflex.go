package minigame

import (
	"math/rand/v2"
	"time"
)

// ReflexState - состояние таймера реакции.
type ReflexState string

const (
	ReflexIdle    ReflexState = "idle"
	ReflexWaiting ReflexState = "waiting" // Ждем сигнала, нажимать рано
	ReflexReady   ReflexState = "ready"   // Сигнал показан, ждем нажатия
	ReflexDone    ReflexState = "done"
)

// ReflexOutcome - результат нажатия.
type ReflexOutcome string

const (
	ReflexTooSoon  ReflexOutcome = "too_soon"
	ReflexRecorded ReflexOutcome = "recorded"
)

// ReflexSnapshot - состояние для клиента.
type ReflexSnapshot struct {
	State     ReflexState   `json:"state"`
	GoAfterMs int64         `json:"goAfterMs,omitempty"`
	Outcome   ReflexOutcome `json:"outcome,omitempty"`
	LastMs    int64         `json:"lastMs,omitempty"`
	BestMs    int64         `json:"bestMs,omitempty"`
	Attempts  int           `json:"attempts"`
}

// Reflex - таймер реакции. Лучшее время хранится на время жизни экземпляра.
type Reflex struct {
	minDelay time.Duration
	maxDelay time.Duration
	rnd      *rand.Rand

	state    ReflexState
	startAt  time.Time
	goAt     time.Time
	outcome  ReflexOutcome
	last     time.Duration
	best     time.Duration
	attempts int
}

// NewReflex создает игру с задержкой сигнала в диапазоне [minDelay, maxDelay].
func NewReflex(minDelay, maxDelay time.Duration, rnd *rand.Rand) *Reflex {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Reflex{minDelay: minDelay, maxDelay: maxDelay, rnd: rnd, state: ReflexIdle}
}

// Start начинает новую попытку: waiting, сигнал через случайную задержку.
func (r *Reflex) Start(now time.Time) ReflexSnapshot {
	delay := r.minDelay
	if spread := r.maxDelay - r.minDelay; spread > 0 {
		delay += time.Duration(r.rnd.Int64N(int64(spread) + 1))
	}
	r.state = ReflexWaiting
	r.startAt = now
	r.goAt = now.Add(delay)
	r.outcome = ""
	r.last = 0
	return r.Snapshot(now)
}

// React фиксирует нажатие. До сигнала - too_soon и конец попытки.
func (r *Reflex) React(now time.Time) (ReflexSnapshot, error) {
	switch r.state {
	case ReflexIdle:
		return r.Snapshot(now), ErrNotStarted
	case ReflexDone:
		return r.Snapshot(now), ErrGameOver
	}

	r.attempts++
	r.state = ReflexDone
	if now.Before(r.goAt) {
		r.outcome = ReflexTooSoon
		return r.Snapshot(now), nil
	}

	r.outcome = ReflexRecorded
	r.last = now.Sub(r.goAt)
	if r.best == 0 || r.last < r.best {
		r.best = r.last
	}
	return r.Snapshot(now), nil
}

// Snapshot возвращает состояние на момент now. waiting переходит в ready после сигнала.
func (r *Reflex) Snapshot(now time.Time) ReflexSnapshot {
	if r.state == ReflexWaiting && !now.Before(r.goAt) {
		r.state = ReflexReady
	}
	snap := ReflexSnapshot{
		State:    r.state,
		Outcome:  r.outcome,
		LastMs:   r.last.Milliseconds(),
		BestMs:   r.best.Milliseconds(),
		Attempts: r.attempts,
	}
	if r.state == ReflexWaiting {
		snap.GoAfterMs = r.goAt.Sub(r.startAt).Milliseconds()
	}
	return snap
}

// Best возвращает лучшее время реакции, 0 если результатов нет.
func (r *Reflex) Best() time.Duration {
	return r.best
}
