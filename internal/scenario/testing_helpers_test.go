package scenario_test

import (
	"sync"
	"time"

	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"
)

// manualScheduler копит отложенные вызовы и выполняет их по команде теста.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) scenario.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// FireNext выполняет самый ранний неотмененный таймер. Возвращает false, если таймеров нет.
func (s *manualScheduler) FireNext() bool {
	s.mu.Lock()
	var next *manualTimer
	for len(s.pending) > 0 {
		next, s.pending = s.pending[0], s.pending[1:]
		if !next.stopped {
			break
		}
		next = nil
	}
	s.mu.Unlock()
	if next == nil {
		return false
	}
	next.fired = true
	next.fn()
	return true
}

// Drain выполняет все таймеры, включая запланированные в процессе.
func (s *manualScheduler) Drain() int {
	n := 0
	for s.FireNext() {
		n++
	}
	return n
}

func (s *manualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func step(title string, correct int) models.Step {
	actions := make([]models.Action, 3)
	for i := range actions {
		actions[i] = models.Action{
			Text:      title + " action " + string(rune('A'+i)),
			IsCorrect: i == correct,
			Feedback:  "feedback " + string(rune('A'+i)),
		}
	}
	return models.Step{Title: title, Description: title + " description", Actions: actions}
}

func twoStepScenario() *models.Scenario {
	return &models.Scenario{
		ID:               "printer-offline",
		Title:            "Printer offline",
		InitialSituation: "A user reports the office printer is offline.",
		Steps:            []models.Step{step("Check cable", 0), step("Restart spooler", 2)},
		FinalSolution:    "The print spooler service was hung; restarting it fixed the issue.",
	}
}
