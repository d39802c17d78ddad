package scenario

import "time"

// Timer - отменяемый отложенный вызов.
type Timer interface {
	Stop() bool
}

// Scheduler планирует отложенные вызовы. Подменяется в тестах.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler использует time.AfterFunc.
var SystemScheduler Scheduler = systemScheduler{}
