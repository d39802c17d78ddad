package scenario_test

import (
	"sync"
	"testing"
	"time"

	"troubleshoot-titans/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*scenario.Controller, *manualScheduler, *[]scenario.Snapshot) {
	t.Helper()
	sched := &manualScheduler{}
	var finished []scenario.Snapshot
	c := scenario.NewController(twoStepScenario(), scenario.Options{
		Timing:    scenario.Timing{RevealDelay: time.Second, RetryDelay: 2 * time.Second},
		Scheduler: sched,
		OnFinish: func(s scenario.Snapshot) {
			finished = append(finished, s)
		},
	})
	return c, sched, &finished
}

func TestController_InitialState(t *testing.T) {
	c, _, _ := newTestController(t)

	snap := c.Snapshot()
	assert.Equal(t, scenario.StateIdle, snap.State)
	assert.Equal(t, 0, snap.StepIndex)
	assert.Empty(t, snap.History)

	// До Start выбор запрещен
	accepted, err := c.SelectAction(0, 0)
	assert.False(t, accepted)
	assert.ErrorIs(t, err, scenario.ErrNotStarted)

	require.NoError(t, c.Start())
	assert.Equal(t, scenario.StateStepActive, c.Snapshot().State)
}

func TestController_TwoStepWalkthrough(t *testing.T) {
	c, sched, finished := newTestController(t)
	require.NoError(t, c.Start())

	// Шаг 1: действие A правильное
	accepted, err := c.SelectAction(0, 0)
	require.NoError(t, err)
	require.True(t, accepted)
	assert.Equal(t, scenario.StatePendingCorrect, c.Snapshot().State)

	require.True(t, sched.FireNext())
	snap := c.Snapshot()
	assert.Len(t, snap.History, 1)
	assert.Equal(t, 1, snap.StepIndex)
	assert.Equal(t, scenario.StateStepActive, snap.State)
	assert.Equal(t, scenario.OutcomeCorrect, snap.LastOutcome)

	// Шаг 2: действие B неправильное
	accepted, err = c.SelectAction(1, 1)
	require.NoError(t, err)
	require.True(t, accepted)
	assert.Equal(t, scenario.StatePendingIncorrect, c.Snapshot().State)

	require.True(t, sched.FireNext()) // показ фидбека
	snap = c.Snapshot()
	assert.Len(t, snap.History, 1)
	assert.Equal(t, 1, snap.StepIndex)
	assert.True(t, snap.Revealed)
	assert.Equal(t, "feedback B", snap.Feedback)
	assert.Equal(t, scenario.OutcomeIncorrect, snap.LastOutcome)

	require.True(t, sched.FireNext()) // разрешение повтора
	snap = c.Snapshot()
	assert.Equal(t, scenario.StateStepActive, snap.State)
	assert.Nil(t, snap.PendingAction)
	assert.Len(t, snap.History, 1)

	// Шаг 2: действие C правильное
	accepted, err = c.SelectAction(1, 2)
	require.NoError(t, err)
	require.True(t, accepted)
	require.True(t, sched.FireNext())

	snap = c.Snapshot()
	assert.True(t, snap.Finished)
	assert.Equal(t, scenario.StateFinished, snap.State)
	assert.Len(t, snap.History, 2)
	assert.Equal(t, twoStepScenario().FinalSolution, snap.FinalSolution)
	require.Len(t, *finished, 1)
	assert.Equal(t, snap.FinalSolution, (*finished)[0].FinalSolution)

	// После завершения выбор игнорируется, OnFinish не вызывается повторно
	accepted, err = c.SelectAction(1, 2)
	assert.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, 0, sched.Drain())
	assert.Len(t, *finished, 1)
}

func TestController_SelectWhilePendingIsNoop(t *testing.T) {
	c, sched, _ := newTestController(t)
	require.NoError(t, c.Start())

	accepted, err := c.SelectAction(0, 1)
	require.NoError(t, err)
	require.True(t, accepted)

	before := c.Snapshot()
	accepted, err = c.SelectAction(0, 0)
	assert.NoError(t, err)
	assert.False(t, accepted)

	after := c.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, 1, sched.Len(), "второй выбор не должен планировать таймер")
}

func TestController_IncorrectNeverMutatesProgress(t *testing.T) {
	c, sched, _ := newTestController(t)
	require.NoError(t, c.Start())

	for _, idx := range []int{1, 2, 1, 2} {
		accepted, err := c.SelectAction(0, idx)
		require.NoError(t, err)
		require.True(t, accepted)
		sched.Drain()

		snap := c.Snapshot()
		assert.Equal(t, 0, snap.StepIndex)
		assert.Empty(t, snap.History)
		assert.Equal(t, scenario.StateStepActive, snap.State)
	}
}

func TestController_StaleStepAndInvalidIndex(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.Start())

	accepted, err := c.SelectAction(1, 0)
	assert.NoError(t, err)
	assert.False(t, accepted)

	accepted, err = c.SelectAction(0, 3)
	assert.ErrorIs(t, err, scenario.ErrInvalidAction)
	assert.False(t, accepted)

	accepted, err = c.SelectAction(0, -1)
	assert.ErrorIs(t, err, scenario.ErrInvalidAction)
	assert.False(t, accepted)
}

func TestController_CloseStopsTimers(t *testing.T) {
	c, sched, finished := newTestController(t)
	require.NoError(t, c.Start())
	_, err := c.SelectAction(0, 0)
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, 0, sched.Len())
	sched.Drain()

	snap := c.Snapshot()
	assert.Equal(t, scenario.StatePendingCorrect, snap.State)
	assert.Empty(t, snap.History)
	assert.Empty(t, *finished)

	_, err = c.SelectAction(0, 0)
	assert.ErrorIs(t, err, scenario.ErrClosed)
	assert.ErrorIs(t, c.Start(), scenario.ErrClosed)
}

func TestController_OnChangeReceivesEveryTransition(t *testing.T) {
	sched := &manualScheduler{}
	var mu sync.Mutex
	var states []scenario.State
	c := scenario.NewController(twoStepScenario(), scenario.Options{
		Scheduler: sched,
		OnChange: func(s scenario.Snapshot) {
			mu.Lock()
			states = append(states, s.State)
			mu.Unlock()
		},
	})

	require.NoError(t, c.Start())
	_, _ = c.SelectAction(0, 0)
	sched.Drain()
	_, _ = c.SelectAction(1, 2)
	sched.Drain()

	assert.Equal(t, []scenario.State{
		scenario.StateStepActive,
		scenario.StatePendingCorrect,
		scenario.StateStepActive,
		scenario.StatePendingCorrect,
		scenario.StateFinished,
	}, states)
}

func TestController_SeqGrowsWithTransitions(t *testing.T) {
	c, sched, _ := newTestController(t)
	assert.Zero(t, c.Snapshot().Seq)

	require.NoError(t, c.Start())
	assert.Equal(t, uint64(1), c.Snapshot().Seq)

	// Повторный Start и чтение снимка не меняют seq
	require.NoError(t, c.Start())
	assert.Equal(t, uint64(1), c.Snapshot().Seq)

	_, _ = c.SelectAction(0, 1)
	sched.Drain()
	// pending-incorrect, показ фидбека, возврат в step-active
	assert.Equal(t, uint64(4), c.Snapshot().Seq)
}

func TestController_ConcurrentOnChangeIsOrdered(t *testing.T) {
	var mu sync.Mutex
	var seqs []uint64
	var last scenario.Snapshot
	c := scenario.NewController(twoStepScenario(), scenario.Options{
		Timing: scenario.Timing{},
		OnChange: func(s scenario.Snapshot) {
			mu.Lock()
			seqs = append(seqs, s.Seq)
			last = s
			mu.Unlock()
		},
	})
	t.Cleanup(c.Close)
	require.NoError(t, c.Start())

	// Таймеры срабатывают в своих горутинах параллельно с выбором игроков
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(action int) {
			defer wg.Done()
			deadline := time.Now().Add(5 * time.Second)
			for !c.Snapshot().Finished && time.Now().Before(deadline) {
				snap := c.Snapshot()
				_, _ = c.SelectAction(snap.StepIndex, action%3)
				action++
				time.Sleep(time.Millisecond)
			}
		}(g)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last.Finished
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(seqs); i++ {
		assert.Greater(t, seqs[i], seqs[i-1], "снимок %d пришел после более нового", i)
	}
	assert.Equal(t, c.Snapshot().Seq, last.Seq)
}
