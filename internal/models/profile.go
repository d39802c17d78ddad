package models

import "time"

// CompletionKind - тип завершенного элемента.
type CompletionKind string

const (
	CompletionGame CompletionKind = "game"
	CompletionQuiz CompletionKind = "quiz"
)

// Profile - документ профиля пользователя.
type Profile struct {
	UserID           string    `json:"userId" firestore:"-"`
	DisplayName      string    `json:"displayName" firestore:"displayName"`
	Email            string    `json:"email,omitempty" firestore:"email"`
	PhotoURL         string    `json:"photoUrl,omitempty" firestore:"photoUrl"`
	Bio              string    `json:"bio,omitempty" firestore:"bio"`
	CompletedGames   []string  `json:"completedGames" firestore:"completedGames"`
	CompletedQuizzes []string  `json:"completedQuizzes" firestore:"completedQuizzes"`
	Points           int64     `json:"points" firestore:"points"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// HasCompleted проверяет, есть ли id в соответствующем наборе.
func (p *Profile) HasCompleted(kind CompletionKind, itemID string) bool {
	for _, id := range p.completedSet(kind) {
		if id == itemID {
			return true
		}
	}
	return false
}

func (p *Profile) completedSet(kind CompletionKind) []string {
	if kind == CompletionQuiz {
		return p.CompletedQuizzes
	}
	return p.CompletedGames
}

// ProfileUpdate - поля для merge-upsert. nil означает "не менять".
type ProfileUpdate struct {
	DisplayName *string `json:"displayName" binding:"omitempty,min=2,max=40"`
	PhotoURL    *string `json:"photoUrl" binding:"omitempty,url"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	Email       *string `json:"-"`
}

// Empty возвращает true, если обновлять нечего.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.PhotoURL == nil && u.Bio == nil && u.Email == nil
}

// CompletionEvent - событие о завершении игры или квиза.
type CompletionEvent struct {
	EventID     string         `json:"event_id"`
	UserID      string         `json:"user_id"`
	DisplayName string         `json:"display_name,omitempty"`
	Kind        CompletionKind `json:"kind"`
	ItemID      string         `json:"item_id"`
	Points      int64          `json:"points"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// LeaderboardEntry - строка таблицы лидеров.
type LeaderboardEntry struct {
	Rank        int64  `json:"rank"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Points      int64  `json:"points"`
}
