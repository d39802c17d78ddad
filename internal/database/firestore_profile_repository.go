package database

import (
	"context"
	"fmt"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// firestoreProfileRepository хранит профили в документах users/{uid}.
type firestoreProfileRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

var _ interfaces.ProfileRepository = (*firestoreProfileRepository)(nil)

// NewFirestoreProfileRepository создает репозиторий профилей Firestore.
func NewFirestoreProfileRepository(client *firestore.Client, logger *zap.Logger) interfaces.ProfileRepository {
	return &firestoreProfileRepository{client: client, logger: logger.Named("FirestoreProfileRepo")}
}

func (r *firestoreProfileRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID)
}

func (r *firestoreProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	snap, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrProfileNotFound
		}
		r.logger.Error("Failed to get profile", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return decodeProfile(userID, snap)
}

func decodeProfile(userID string, snap *firestore.DocumentSnapshot) (*models.Profile, error) {
	var p models.Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", userID, err)
	}
	p.UserID = userID
	if p.CompletedGames == nil {
		p.CompletedGames = []string{}
	}
	if p.CompletedQuizzes == nil {
		p.CompletedQuizzes = []string{}
	}
	return &p, nil
}

// Upsert - merge-запись только переданных полей.
func (r *firestoreProfileRepository) Upsert(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	data := map[string]interface{}{"updatedAt": firestore.ServerTimestamp}
	if update.DisplayName != nil {
		data["displayName"] = *update.DisplayName
	}
	if update.Email != nil {
		data["email"] = *update.Email
	}
	if update.PhotoURL != nil {
		data["photoUrl"] = *update.PhotoURL
	}
	if update.Bio != nil {
		data["bio"] = *update.Bio
	}

	if _, err := r.doc(userID).Set(ctx, data, firestore.MergeAll); err != nil {
		r.logger.Error("Failed to upsert profile", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return r.Get(ctx, userID)
}

// AddCompletedItem проверяет членство и пишет внутри транзакции, поэтому повторный отчет ничего не меняет.
func (r *firestoreProfileRepository) AddCompletedItem(ctx context.Context, userID string, kind models.CompletionKind, itemID string, points int64) (bool, error) {
	field := "completedGames"
	if kind == models.CompletionQuiz {
		field = "completedQuizzes"
	}
	ref := r.doc(userID)

	var added bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		added = false
		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if snap != nil && snap.Exists() {
			p, err := decodeProfile(userID, snap)
			if err != nil {
				return err
			}
			if p.HasCompleted(kind, itemID) {
				return nil
			}
		}

		added = true
		data := map[string]interface{}{
			field:       firestore.ArrayUnion(itemID),
			"updatedAt": firestore.ServerTimestamp,
		}
		if points != 0 {
			data["points"] = firestore.Increment(points)
		}
		return tx.Set(ref, data, firestore.MergeAll)
	})
	if err != nil {
		r.logger.Error("Failed to add completed item",
			zap.String("userID", userID), zap.String("kind", string(kind)), zap.String("itemID", itemID), zap.Error(err))
		return false, fmt.Errorf("failed to add completed item: %w", err)
	}
	return added, nil
}
