package models

import "time"

// Question - вопрос с несколькими вариантами и одним правильным.
type Question struct {
	Text         string   `json:"text" yaml:"text" validate:"required"`
	Options      []string `json:"options" yaml:"options" validate:"len=4,dive,required"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex" validate:"min=0,max=3"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation"`
}

// Quiz - набор вопросов по одной теме.
type Quiz struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title" validate:"required"`
	Description string        `json:"description,omitempty" yaml:"description"`
	Topic       string        `json:"topic,omitempty" yaml:"topic"`
	Difficulty  Difficulty    `json:"difficulty,omitempty" yaml:"difficulty"`
	Questions   []Question    `json:"questions" yaml:"questions" validate:"min=3,max=10,dive"`
	Source      ContentSource `json:"source" yaml:"-"`
	CreatedBy   string        `json:"createdBy,omitempty" yaml:"-"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"-"`
}

// PublicQuestion - вопрос без правильного ответа.
type PublicQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// PublicQuiz - квиз без ответов.
type PublicQuiz struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Topic         string           `json:"topic,omitempty"`
	Difficulty    Difficulty       `json:"difficulty,omitempty"`
	Source        ContentSource    `json:"source"`
	QuestionCount int              `json:"questionCount"`
	Questions     []PublicQuestion `json:"questions,omitempty"`
}

// Public возвращает квиз без правильных ответов. withQuestions=false - только метаданные.
func (q *Quiz) Public(withQuestions bool) PublicQuiz {
	pq := PublicQuiz{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		Topic:         q.Topic,
		Difficulty:    q.Difficulty,
		Source:        q.Source,
		QuestionCount: len(q.Questions),
	}
	if withQuestions {
		pq.Questions = make([]PublicQuestion, len(q.Questions))
		for i, question := range q.Questions {
			pq.Questions[i] = PublicQuestion{Text: question.Text, Options: question.Options}
		}
	}
	return pq
}

// AnswerResult - результат по одному вопросу.
type AnswerResult struct {
	QuestionIndex int    `json:"questionIndex"`
	Selected      int    `json:"selected"`
	CorrectIndex  int    `json:"correctIndex"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizResult - итог прохождения квиза.
type QuizResult struct {
	QuizID  string         `json:"quizId"`
	Total   int            `json:"total"`
	Correct int            `json:"correct"`
	Percent int            `json:"percent"`
	Passed  bool           `json:"passed"`
	Answers []AnswerResult `json:"answers"`
}
