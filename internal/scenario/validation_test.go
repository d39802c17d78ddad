package scenario_test

import (
	"encoding/json"
	"errors"
	"testing"

	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatedScenario(steps int) *models.Scenario {
	s := twoStepScenario()
	s.Steps = nil
	for i := 0; i < steps; i++ {
		s.Steps = append(s.Steps, step("Step", i%3))
	}
	return s
}

func TestValidate(t *testing.T) {
	t.Run("valid scenario", func(t *testing.T) {
		assert.NoError(t, scenario.Validate(twoStepScenario()))
	})

	t.Run("two correct actions", func(t *testing.T) {
		s := twoStepScenario()
		s.Steps[1].Actions[0].IsCorrect = true

		err := scenario.Validate(s)
		var verr *scenario.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, 1, verr.StepIndex)
		assert.Contains(t, verr.Reason, "got 2")
	})

	t.Run("no correct action", func(t *testing.T) {
		s := twoStepScenario()
		s.Steps[0].Actions[0].IsCorrect = false

		err := scenario.Validate(s)
		var verr *scenario.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, 0, verr.StepIndex)
		assert.Contains(t, verr.Reason, "got 0")
	})

	t.Run("wrong action count", func(t *testing.T) {
		s := twoStepScenario()
		s.Steps[0].Actions = s.Steps[0].Actions[:2]

		err := scenario.Validate(s)
		var verr *scenario.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, 0, verr.StepIndex)
		assert.Contains(t, verr.Field, "Steps[0].Actions")
	})

	t.Run("missing final solution", func(t *testing.T) {
		s := twoStepScenario()
		s.FinalSolution = ""

		err := scenario.Validate(s)
		var verr *scenario.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, -1, verr.StepIndex)
		assert.Equal(t, "FinalSolution", verr.Field)
	})
}

func TestValidateGenerated_StepBounds(t *testing.T) {
	assert.Error(t, scenario.ValidateGenerated(generatedScenario(2)))
	assert.NoError(t, scenario.ValidateGenerated(generatedScenario(3)))
	assert.NoError(t, scenario.ValidateGenerated(generatedScenario(5)))
	assert.Error(t, scenario.ValidateGenerated(generatedScenario(6)))
}

func TestParse(t *testing.T) {
	data, err := json.Marshal(generatedScenario(4))
	require.NoError(t, err)

	s, err := scenario.Parse(data)
	require.NoError(t, err)
	assert.Len(t, s.Steps, 4)
	for _, st := range s.Steps {
		assert.Equal(t, 1, scenario.CountCorrect(st))
	}

	_, err = scenario.Parse([]byte(`{"title": "broken"`))
	var verr *scenario.ValidationError
	assert.True(t, errors.As(err, &verr))
}
