package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"

	"github.com/go-playground/validator/v10"
)

// Ограничения квиза.
const (
	MinQuestions       = 3
	MaxQuestions       = 10
	OptionsPerQuestion = 4
	Unanswered         = -1
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate проверяет квиз. Ошибка имеет тип *scenario.ValidationError,
// StepIndex указывает на номер вопроса.
func Validate(q *models.Quiz) error {
	if q == nil {
		return &scenario.ValidationError{Field: "quiz", StepIndex: -1, Reason: "is nil"}
	}
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			ns := fe.Namespace()
			if idx := strings.Index(ns, "."); idx >= 0 {
				ns = ns[idx+1:]
			}
			questionIdx := -1
			_, _ = fmt.Sscanf(ns, "Questions[%d]", &questionIdx)
			reason := fe.Tag()
			if fe.Param() != "" {
				reason += "=" + fe.Param()
			}
			return &scenario.ValidationError{Field: ns, StepIndex: questionIdx, Reason: "failed '" + reason + "' constraint"}
		}
		return &scenario.ValidationError{Field: "quiz", StepIndex: -1, Reason: err.Error()}
	}
	return nil
}

// Parse декодирует JSON сгенерированного квиза и валидирует его.
func Parse(data []byte) (*models.Quiz, error) {
	var q models.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, &scenario.ValidationError{Field: "quiz", StepIndex: -1, Reason: "malformed json: " + err.Error()}
	}
	if err := Validate(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Grade оценивает ответы. answers[i] - индекс выбранного варианта для i-го вопроса,
// Unanswered (-1) или индекс вне диапазона считаются неверным ответом.
// passPercent - порог прохождения в процентах.
func Grade(q *models.Quiz, answers []int, passPercent int) (*models.QuizResult, error) {
	if len(answers) != len(q.Questions) {
		return nil, fmt.Errorf("%w: got %d answers for %d questions", models.ErrAnswerCountMismatch, len(answers), len(q.Questions))
	}

	result := &models.QuizResult{
		QuizID:  q.ID,
		Total:   len(q.Questions),
		Answers: make([]models.AnswerResult, len(q.Questions)),
	}
	for i, question := range q.Questions {
		correct := answers[i] == question.CorrectIndex
		if correct {
			result.Correct++
		}
		result.Answers[i] = models.AnswerResult{
			QuestionIndex: i,
			Selected:      answers[i],
			CorrectIndex:  question.CorrectIndex,
			Correct:       correct,
			Explanation:   question.Explanation,
		}
	}
	if result.Total > 0 {
		result.Percent = result.Correct * 100 / result.Total
	}
	result.Passed = result.Total > 0 && result.Percent >= passPercent
	return result, nil
}
