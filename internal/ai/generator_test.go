package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"troubleshoot-titans/internal/ai"
	"troubleshoot-titans/internal/interfaces/mocks"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type byteCounter struct{}

func (byteCounter) Count(text string) int { return len(text) }

var testSession = &models.Session{UserID: "user-1", DisplayName: "Tess"}

func validScenarioJSON(t *testing.T, steps int) string {
	t.Helper()
	s := models.Scenario{
		Title:            "VPN drops every hour",
		InitialSituation: "A remote employee loses VPN every hour.",
		FinalSolution:    "The DHCP lease on the home router was too short.",
	}
	for i := 0; i < steps; i++ {
		st := models.Step{Title: "Step", Description: "Look closer"}
		for j := 0; j < 3; j++ {
			st.Actions = append(st.Actions, models.Action{Text: "Do", IsCorrect: j == 1, Feedback: "Why"})
		}
		s.Steps = append(s.Steps, st)
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

func newGenerator(client ai.AIClient, maxPromptTokens int) *ai.Generator {
	return ai.NewGenerator(client, byteCounter{}, ai.GeneratorConfig{
		MaxPromptTokens:     maxPromptTokens,
		MaxCompletionTokens: 1024,
		Temperature:         0.5,
	}, zap.NewNop())
}

func TestGenerateScenario_Success(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("GenerateText", mock.Anything, "user-1",
		mock.MatchedBy(func(p string) bool { return strings.Contains(p, "between 3 and 5 steps") }),
		mock.MatchedBy(func(p string) bool { return strings.Contains(p, "VPN drops") }),
		mock.MatchedBy(func(p ai.GenerationParams) bool { return p.Schema == ai.ScenarioSchema && p.MaxTokens == 1024 }),
	).Return("```json\n"+validScenarioJSON(t, 3)+"\n```", ai.UsageInfo{}, nil).Once()

	g := newGenerator(client, 0)
	s, err := g.GenerateScenario(context.Background(), testSession, models.GenerationRequest{Title: " VPN drops "})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, models.SourceGenerated, s.Source)
	assert.Equal(t, "user-1", s.CreatedBy)
	assert.Equal(t, "VPN drops", s.Topic)
	assert.Equal(t, models.DifficultyMedium, s.Difficulty)
	assert.Len(t, s.Steps, 3)
	assert.False(t, s.CreatedAt.IsZero())
	client.AssertExpectations(t)
}

func TestGenerateScenario_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I cannot help with that"},
		{"too few steps", validScenarioJSON(t, 2)},
		{"too many steps", validScenarioJSON(t, 6)},
		{"two correct actions", strings.Replace(validScenarioJSON(t, 3), `"isCorrect":false`, `"isCorrect":true`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockAIClient(t)
			client.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.response, ai.UsageInfo{}, nil).Once()

			_, err := newGenerator(client, 0).GenerateScenario(context.Background(), testSession, models.GenerationRequest{Title: "VPN"})
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrGenerationFailed)

			var verr *scenario.ValidationError
			assert.True(t, errors.As(err, &verr))
			// Повторов нет
			client.AssertNumberOfCalls(t, "GenerateText", 1)
		})
	}
}

func TestGenerateScenario_ClientError(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", ai.UsageInfo{}, ai.ErrAIGenerationFailed).Once()

	_, err := newGenerator(client, 0).GenerateScenario(context.Background(), testSession, models.GenerationRequest{Title: "Printer"})
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	assert.ErrorIs(t, err, ai.ErrAIGenerationFailed)
	client.AssertNumberOfCalls(t, "GenerateText", 1)
}

func TestGenerate_PromptTooLarge(t *testing.T) {
	client := mocks.NewMockAIClient(t)

	g := newGenerator(client, 50)
	_, err := g.GenerateScenario(context.Background(), testSession, models.GenerationRequest{Title: "Printer"})
	assert.ErrorIs(t, err, models.ErrPromptTooLarge)

	_, err = g.GenerateQuiz(context.Background(), testSession, models.GenerationRequest{Title: "Printer"})
	assert.ErrorIs(t, err, models.ErrPromptTooLarge)
	client.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuiz(t *testing.T) {
	q := models.Quiz{Title: "DNS", Description: "Name resolution"}
	for i := 0; i < 3; i++ {
		q.Questions = append(q.Questions, models.Question{Text: "Q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2})
	}
	data, err := json.Marshal(q)
	require.NoError(t, err)

	client := mocks.NewMockAIClient(t)
	client.On("GenerateText", mock.Anything, "user-1", mock.Anything, mock.Anything,
		mock.MatchedBy(func(p ai.GenerationParams) bool { return p.Schema == ai.QuizSchema }),
	).Return("Here it is: "+string(data), ai.UsageInfo{}, nil).Once()

	got, err := newGenerator(client, 0).GenerateQuiz(context.Background(), testSession, models.GenerationRequest{Title: "DNS", Difficulty: models.DifficultyHard})
	require.NoError(t, err)
	assert.Equal(t, models.SourceGenerated, got.Source)
	assert.Equal(t, models.DifficultyHard, got.Difficulty)
	assert.Len(t, got.Questions, 3)
	client.AssertExpectations(t)
}
