package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"troubleshoot-titans/internal/models"

	"github.com/go-playground/validator/v10"
)

// Ограничения схемы сгенерированного сценария.
const (
	MinGeneratedSteps = 3
	MaxGeneratedSteps = 5
	ActionsPerStep    = 3
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError - типизированный отказ при проверке сценария.
type ValidationError struct {
	Field     string // Путь до поля, например Steps[1].Actions
	StepIndex int    // -1, если ошибка не относится к конкретному шагу
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.StepIndex >= 0 {
		return fmt.Sprintf("scenario validation failed at step %d (%s): %s", e.StepIndex, e.Field, e.Reason)
	}
	return fmt.Sprintf("scenario validation failed (%s): %s", e.Field, e.Reason)
}

// Validate проверяет структуру сценария и инвариант "ровно одно правильное действие на шаге".
func Validate(s *models.Scenario) error {
	if s == nil {
		return &ValidationError{Field: "scenario", StepIndex: -1, Reason: "is nil"}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fromFieldError(verrs[0])
		}
		return &ValidationError{Field: "scenario", StepIndex: -1, Reason: err.Error()}
	}
	for i, step := range s.Steps {
		if n := CountCorrect(step); n != 1 {
			return &ValidationError{
				Field:     fmt.Sprintf("Steps[%d].Actions", i),
				StepIndex: i,
				Reason:    fmt.Sprintf("expected exactly one correct action, got %d", n),
			}
		}
	}
	return nil
}

// ValidateGenerated дополнительно проверяет ограничения на количество шагов в сгенерированном контенте.
func ValidateGenerated(s *models.Scenario) error {
	if err := Validate(s); err != nil {
		return err
	}
	if n := len(s.Steps); n < MinGeneratedSteps || n > MaxGeneratedSteps {
		return &ValidationError{
			Field:     "Steps",
			StepIndex: -1,
			Reason:    fmt.Sprintf("expected %d-%d steps, got %d", MinGeneratedSteps, MaxGeneratedSteps, n),
		}
	}
	return nil
}

// Parse декодирует JSON ответа генератора и валидирует его.
// Возвращает либо сценарий, либо *ValidationError.
func Parse(data []byte) (*models.Scenario, error) {
	var s models.Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &ValidationError{Field: "scenario", StepIndex: -1, Reason: "malformed json: " + err.Error()}
	}
	if err := ValidateGenerated(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CountCorrect возвращает количество действий шага с IsCorrect=true.
func CountCorrect(step models.Step) int {
	n := 0
	for _, a := range step.Actions {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

func fromFieldError(fe validator.FieldError) *ValidationError {
	ns := fe.Namespace()
	// Scenario.Steps[2].Actions -> Steps[2].Actions
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	reason := fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return &ValidationError{Field: ns, StepIndex: stepIndexFromNamespace(ns), Reason: "failed '" + reason + "' constraint"}
}

func stepIndexFromNamespace(ns string) int {
	var idx int
	if _, err := fmt.Sscanf(ns, "Steps[%d]", &idx); err == nil {
		return idx
	}
	return -1
}
