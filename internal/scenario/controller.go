package scenario

import (
	"errors"
	"sync"
	"time"

	"troubleshoot-titans/internal/models"
)

// State - состояние контроллера прохождения.
type State string

const (
	StateIdle             State = "idle"
	StateStepActive       State = "step-active"
	StatePendingCorrect   State = "action-pending-correct"
	StatePendingIncorrect State = "action-pending-incorrect"
	StateFinished         State = "finished"
)

// Outcome - результат последнего раскрытого выбора.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

var (
	ErrNotStarted    = errors.New("scenario controller is not started")
	ErrInvalidAction = errors.New("action index out of range")
	ErrClosed        = errors.New("scenario controller is closed")
)

// Timing - задержки показа результата.
type Timing struct {
	RevealDelay time.Duration // От выбора до применения результата
	RetryDelay  time.Duration // От показа ошибки до разрешения повторной попытки
}

// DefaultTiming - значения по умолчанию.
var DefaultTiming = Timing{RevealDelay: 1200 * time.Millisecond, RetryDelay: 1500 * time.Millisecond}

// Snapshot - неизменяемый снимок состояния для наблюдателей.
type Snapshot struct {
	Seq           uint64                `json:"seq"` // Растет с каждым переходом
	ScenarioID    string                `json:"scenarioId"`
	State         State                 `json:"state"`
	StepIndex     int                   `json:"stepIndex"`
	StepCount     int                   `json:"stepCount"`
	PendingAction *int                  `json:"pendingAction,omitempty"`
	Revealed      bool                  `json:"revealed"`
	LastOutcome   Outcome               `json:"lastOutcome,omitempty"`
	Feedback      string                `json:"feedback,omitempty"`
	History       []models.HistoryEntry `json:"history"`
	Finished      bool                  `json:"finished"`
	FinalSolution string                `json:"finalSolution,omitempty"`
}

// Options - зависимости контроллера.
type Options struct {
	Timing    Timing
	Scheduler Scheduler
	OnChange  func(Snapshot)
	OnFinish  func(Snapshot)
}

// Controller проводит игрока по линейной последовательности шагов.
// Переход к следующему шагу только при выборе правильного действия.
type Controller struct {
	mu       sync.Mutex
	scenario *models.Scenario
	opts     Options

	state        State
	stepIndex    int
	pendingIndex int
	revealed     bool
	lastOutcome  Outcome
	feedback     string
	history      []models.HistoryEntry

	seq uint64

	// Доставка OnChange строго по возрастанию seq
	notifyMu     sync.Mutex
	lastNotified uint64

	timer    Timer
	gen      uint64 // Инвалидирует колбэки таймеров после Close/перехода
	closed   bool
	reported bool
}

// NewController создает контроллер в состоянии idle на шаге 0.
// Сценарий должен быть предварительно провалидирован.
func NewController(s *models.Scenario, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler
	}
	return &Controller{
		scenario:     s,
		opts:         opts,
		state:        StateIdle,
		pendingIndex: -1,
		history:      make([]models.HistoryEntry, 0, len(s.Steps)),
	}
}

// Scenario возвращает сценарий контроллера.
func (c *Controller) Scenario() *models.Scenario {
	return c.scenario
}

// Start переводит контроллер из idle в step-active. Повторный вызов ничего не делает.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil
	}
	c.state = StateStepActive
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notifyChange(snap)
	return nil
}

// SelectAction выбирает действие actionIndex на шаге stepIndex.
// Возвращает accepted=false без ошибки, если выбор проигнорирован:
// уже есть ожидающее действие, шаг не текущий или игра завершена.
func (c *Controller) SelectAction(stepIndex, actionIndex int) (bool, error) {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return false, ErrClosed
	case c.state == StateIdle:
		c.mu.Unlock()
		return false, ErrNotStarted
	case c.state == StateFinished, c.pendingIndex >= 0, stepIndex != c.stepIndex:
		c.mu.Unlock()
		return false, nil
	}

	step := c.scenario.Steps[c.stepIndex]
	if actionIndex < 0 || actionIndex >= len(step.Actions) {
		c.mu.Unlock()
		return false, ErrInvalidAction
	}

	c.pendingIndex = actionIndex
	c.revealed = false
	c.feedback = ""
	c.lastOutcome = OutcomeNone
	if step.Actions[actionIndex].IsCorrect {
		c.state = StatePendingCorrect
	} else {
		c.state = StatePendingIncorrect
	}
	c.scheduleLocked(c.opts.Timing.RevealDelay, c.resolvePending)
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notifyChange(snap)
	return true, nil
}

// resolvePending срабатывает после RevealDelay.
func (c *Controller) resolvePending() {
	c.mu.Lock()
	if c.closed || c.pendingIndex < 0 {
		c.mu.Unlock()
		return
	}

	step := c.scenario.Steps[c.stepIndex]
	action := step.Actions[c.pendingIndex]
	c.feedback = action.Feedback
	c.revealed = true

	var finished bool
	if c.state == StatePendingCorrect {
		c.lastOutcome = OutcomeCorrect
		c.history = append(c.history, models.HistoryEntry{
			StepIndex: c.stepIndex,
			StepTitle: step.Title,
			Action:    action,
		})
		c.pendingIndex = -1
		c.revealed = false
		if c.stepIndex == len(c.scenario.Steps)-1 {
			c.state = StateFinished
			finished = !c.reported
			c.reported = true
		} else {
			c.stepIndex++
			c.state = StateStepActive
		}
	} else {
		// Неверный выбор: показываем фидбек, затем разрешаем повтор
		c.lastOutcome = OutcomeIncorrect
		c.scheduleLocked(c.opts.Timing.RetryDelay, c.clearPending)
	}
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notifyChange(snap)
	if finished && c.opts.OnFinish != nil {
		c.opts.OnFinish(snap)
	}
}

// clearPending срабатывает после RetryDelay при неверном выборе.
func (c *Controller) clearPending() {
	c.mu.Lock()
	if c.closed || c.state != StatePendingIncorrect {
		c.mu.Unlock()
		return
	}
	c.pendingIndex = -1
	c.revealed = false
	c.state = StateStepActive
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notifyChange(snap)
}

// Close останавливает ожидающие таймеры. После Close ввод игнорируется.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Snapshot возвращает текущее состояние.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// scheduleLocked планирует f через d. Колбэк устаревшего поколения игнорируется.
func (c *Controller) scheduleLocked(d time.Duration, f func()) {
	c.gen++
	gen := c.gen
	c.timer = c.opts.Scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		stale := gen != c.gen
		c.mu.Unlock()
		if !stale {
			f()
		}
	})
}

// changedLocked фиксирует переход и возвращает снимок с новым seq.
func (c *Controller) changedLocked() Snapshot {
	c.seq++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	history := make([]models.HistoryEntry, len(c.history))
	copy(history, c.history)

	snap := Snapshot{
		Seq:         c.seq,
		ScenarioID:  c.scenario.ID,
		State:       c.state,
		StepIndex:   c.stepIndex,
		StepCount:   len(c.scenario.Steps),
		Revealed:    c.revealed,
		LastOutcome: c.lastOutcome,
		Feedback:    c.feedback,
		History:     history,
		Finished:    c.state == StateFinished,
	}
	if c.pendingIndex >= 0 {
		idx := c.pendingIndex
		snap.PendingAction = &idx
	}
	if snap.Finished {
		snap.FinalSolution = c.scenario.FinalSolution
	}
	return snap
}

// notifyChange вызывается без c.mu. Снимок, обогнанный более новым, отбрасывается.
func (c *Controller) notifyChange(snap Snapshot) {
	if c.opts.OnChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if snap.Seq <= c.lastNotified {
		return
	}
	c.lastNotified = snap.Seq
	c.opts.OnChange(snap)
}
