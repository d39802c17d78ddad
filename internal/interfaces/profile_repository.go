package interfaces

import (
	"context"

	"troubleshoot-titans/internal/models"
)

// ProfileRepository - хранилище профилей пользователей (документ на user id).
//
//go:generate mockery --name ProfileRepository --output ./mocks --outpkg mocks --case=underscore
type ProfileRepository interface {
	// Get возвращает профиль. models.ErrProfileNotFound, если документа нет.
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// Upsert выполняет merge-запись: меняются только не-nil поля update,
	// документ создается при отсутствии.
	Upsert(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)

	// AddCompletedItem идемпотентно добавляет itemID в набор завершенных элементов
	// и начисляет points. added=false, если itemID уже был в наборе (ничего не меняется).
	AddCompletedItem(ctx context.Context, userID string, kind models.CompletionKind, itemID string, points int64) (added bool, err error)
}
