package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	getProfileQuery = `
SELECT user_id, display_name, email, photo_url, bio, points, updated_at
FROM profiles WHERE user_id = $1`

	getCompletedItemsQuery = `
SELECT kind, item_id FROM completed_items WHERE user_id = $1 ORDER BY completed_at, item_id`

	upsertProfileQuery = `
INSERT INTO profiles (user_id, display_name, email, photo_url, bio, updated_at)
VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), $6)
ON CONFLICT (user_id) DO UPDATE SET
    display_name = COALESCE($2, profiles.display_name),
    email        = COALESCE($3, profiles.email),
    photo_url    = COALESCE($4, profiles.photo_url),
    bio          = COALESCE($5, profiles.bio),
    updated_at   = $6`

	ensureProfileQuery = `
INSERT INTO profiles (user_id, updated_at) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`

	insertCompletedItemQuery = `
INSERT INTO completed_items (user_id, kind, item_id, completed_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, kind, item_id) DO NOTHING`

	addPointsQuery = `
UPDATE profiles SET points = points + $2, updated_at = $3 WHERE user_id = $1`
)

type profileRow struct {
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Email       string    `db:"email"`
	PhotoURL    string    `db:"photo_url"`
	Bio         string    `db:"bio"`
	Points      int64     `db:"points"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type completedRow struct {
	Kind   models.CompletionKind `db:"kind"`
	ItemID string                `db:"item_id"`
}

// pgProfileRepository хранит профили в таблицах profiles и completed_items.
type pgProfileRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	now    func() time.Time
}

var _ interfaces.ProfileRepository = (*pgProfileRepository)(nil)

// NewPgProfileRepository создает репозиторий профилей PostgreSQL.
func NewPgProfileRepository(pool *pgxpool.Pool, logger *zap.Logger) interfaces.ProfileRepository {
	return &pgProfileRepository{pool: pool, logger: logger.Named("PgProfileRepo"), now: time.Now}
}

func (r *pgProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return r.get(ctx, r.pool, userID)
}

func (r *pgProfileRepository) get(ctx context.Context, q DBTX, userID string) (*models.Profile, error) {
	var row profileRow
	if err := pgxscan.Get(ctx, q, &row, getProfileQuery, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		r.logger.Error("Failed to get profile", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var items []completedRow
	if err := pgxscan.Select(ctx, q, &items, getCompletedItemsQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to get completed items: %w", err)
	}

	p := &models.Profile{
		UserID:           row.UserID,
		DisplayName:      row.DisplayName,
		Email:            row.Email,
		PhotoURL:         row.PhotoURL,
		Bio:              row.Bio,
		Points:           row.Points,
		UpdatedAt:        row.UpdatedAt,
		CompletedGames:   []string{},
		CompletedQuizzes: []string{},
	}
	for _, it := range items {
		if it.Kind == models.CompletionQuiz {
			p.CompletedQuizzes = append(p.CompletedQuizzes, it.ItemID)
		} else {
			p.CompletedGames = append(p.CompletedGames, it.ItemID)
		}
	}
	return p, nil
}

func (r *pgProfileRepository) Upsert(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	var profile *models.Profile
	err := WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertProfileQuery, userID,
			update.DisplayName, update.Email, update.PhotoURL, update.Bio, r.now().UTC()); err != nil {
			return fmt.Errorf("failed to upsert profile: %w", err)
		}
		var err error
		profile, err = r.get(ctx, tx, userID)
		return err
	})
	if err != nil {
		r.logger.Error("Profile upsert failed", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return profile, nil
}

// AddCompletedItem: INSERT ... ON CONFLICT DO NOTHING, очки начисляются только при реальной вставке.
func (r *pgProfileRepository) AddCompletedItem(ctx context.Context, userID string, kind models.CompletionKind, itemID string, points int64) (bool, error) {
	logFields := []zap.Field{zap.String("userID", userID), zap.String("kind", string(kind)), zap.String("itemID", itemID)}
	var added bool
	err := WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		now := r.now().UTC()
		if _, err := tx.Exec(ctx, ensureProfileQuery, userID, now); err != nil {
			return fmt.Errorf("failed to ensure profile: %w", err)
		}
		tag, err := tx.Exec(ctx, insertCompletedItemQuery, userID, string(kind), itemID, now)
		if err != nil {
			return fmt.Errorf("failed to insert completed item: %w", err)
		}
		added = tag.RowsAffected() == 1
		if !added || points == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, addPointsQuery, userID, points, now); err != nil {
			return fmt.Errorf("failed to add points: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to add completed item", append(logFields, zap.Error(err))...)
		return false, err
	}
	r.logger.Debug("Completed item processed", append(logFields, zap.Bool("added", added))...)
	return added, nil
}
