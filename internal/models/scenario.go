package models

import "time"

// ContentSource - откуда взят сценарий или квиз.
type ContentSource string

const (
	SourceStatic    ContentSource = "static"
	SourceGenerated ContentSource = "generated"
)

// Difficulty - уровень сложности контента.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Action - один вариант ответа на шаге сценария.
type Action struct {
	Text      string `json:"text" yaml:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
	Feedback  string `json:"feedback" yaml:"feedback" validate:"required"`
}

// Step - точка принятия решения с тремя вариантами действий.
type Step struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Description string   `json:"description" yaml:"description" validate:"required"`
	Hint        string   `json:"hint,omitempty" yaml:"hint"`
	Actions     []Action `json:"actions" yaml:"actions" validate:"len=3,dive"`
}

// Scenario - полное описание одного прохождения. После загрузки не изменяется.
type Scenario struct {
	ID               string        `json:"id" yaml:"id"`
	Title            string        `json:"title" yaml:"title" validate:"required"`
	InitialSituation string        `json:"initialSituation" yaml:"initialSituation" validate:"required"`
	Steps            []Step        `json:"steps" yaml:"steps" validate:"min=1,dive"`
	FinalSolution    string        `json:"finalSolution" yaml:"finalSolution" validate:"required"`
	Topic            string        `json:"topic,omitempty" yaml:"topic"`
	Difficulty       Difficulty    `json:"difficulty,omitempty" yaml:"difficulty"`
	Source           ContentSource `json:"source" yaml:"-"`
	CreatedBy        string        `json:"createdBy,omitempty" yaml:"-"`
	CreatedAt        time.Time     `json:"createdAt" yaml:"-"`
}

// HistoryEntry - пара {шаг, выбранное действие} в порядке прохождения.
type HistoryEntry struct {
	StepIndex int    `json:"stepIndex"`
	StepTitle string `json:"stepTitle"`
	Action    Action `json:"action"`
}

// GenerationRequest - запрос к генератору контента.
type GenerationRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=120"`
	Description string     `json:"description" binding:"max=1000"`
	Difficulty  Difficulty `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ScenarioSummary - краткая информация о сценарии для списков.
type ScenarioSummary struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Topic      string        `json:"topic,omitempty"`
	Difficulty Difficulty    `json:"difficulty,omitempty"`
	Source     ContentSource `json:"source"`
	StepCount  int           `json:"stepCount"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Summary возвращает краткое представление сценария.
func (s *Scenario) Summary() ScenarioSummary {
	return ScenarioSummary{
		ID:         s.ID,
		Title:      s.Title,
		Topic:      s.Topic,
		Difficulty: s.Difficulty,
		Source:     s.Source,
		StepCount:  len(s.Steps),
		CreatedAt:  s.CreatedAt,
	}
}

// PublicStep - шаг без признаков правильности ответов.
type PublicStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hint        string   `json:"hint,omitempty"`
	Actions     []string `json:"actions"`
}

// PublicScenario - сценарий в виде, безопасном для отдачи клиенту до прохождения.
type PublicScenario struct {
	ScenarioSummary
	InitialSituation string       `json:"initialSituation"`
	Steps            []PublicStep `json:"steps"`
}

// Public скрывает правильные ответы, фидбек и итоговое решение.
func (s *Scenario) Public() PublicScenario {
	steps := make([]PublicStep, len(s.Steps))
	for i, st := range s.Steps {
		actions := make([]string, len(st.Actions))
		for j, a := range st.Actions {
			actions[j] = a.Text
		}
		steps[i] = PublicStep{Title: st.Title, Description: st.Description, Hint: st.Hint, Actions: actions}
	}
	return PublicScenario{
		ScenarioSummary:  s.Summary(),
		InitialSituation: s.InitialSituation,
		Steps:            steps,
	}
}
