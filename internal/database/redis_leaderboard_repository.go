package database

import (
	"context"
	"errors"
	"fmt"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	leaderboardPointsKey = "leaderboard:points"
	leaderboardNamesKey  = "leaderboard:names"
)

// redisLeaderboardRepository - рейтинг в sorted set, имена в hash.
type redisLeaderboardRepository struct {
	client *redis.Client
	logger *zap.Logger
}

var _ interfaces.LeaderboardRepository = (*redisLeaderboardRepository)(nil)

// NewRedisLeaderboardRepository создает рейтинг поверх Redis.
func NewRedisLeaderboardRepository(client *redis.Client, logger *zap.Logger) interfaces.LeaderboardRepository {
	return &redisLeaderboardRepository{client: client, logger: logger.Named("RedisLeaderboardRepo")}
}

func (r *redisLeaderboardRepository) AddPoints(ctx context.Context, userID, displayName string, points int64) error {
	pipe := r.client.TxPipeline()
	pipe.ZIncrBy(ctx, leaderboardPointsKey, float64(points), userID)
	if displayName != "" {
		pipe.HSet(ctx, leaderboardNamesKey, userID, displayName)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to add leaderboard points", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to add leaderboard points: %w", err)
	}
	return nil
}

func (r *redisLeaderboardRepository) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		return []models.LeaderboardEntry{}, nil
	}
	scores, err := r.client.ZRevRangeWithScores(ctx, leaderboardPointsKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	if len(scores) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	ids := make([]string, len(scores))
	for i, z := range scores {
		ids[i] = z.Member.(string)
	}
	names, err := r.client.HMGet(ctx, leaderboardNamesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard names: %w", err)
	}

	entries := make([]models.LeaderboardEntry, len(scores))
	for i, z := range scores {
		entries[i] = models.LeaderboardEntry{
			Rank:   int64(i + 1),
			UserID: ids[i],
			Points: int64(z.Score),
		}
		if name, ok := names[i].(string); ok {
			entries[i].DisplayName = name
		}
	}
	return entries, nil
}

func (r *redisLeaderboardRepository) Rank(ctx context.Context, userID string) (*models.LeaderboardEntry, error) {
	rank, err := r.client.ZRevRank(ctx, leaderboardPointsKey, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read rank: %w", err)
	}
	score, err := r.client.ZScore(ctx, leaderboardPointsKey, userID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read score: %w", err)
	}
	name, err := r.client.HGet(ctx, leaderboardNamesKey, userID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read display name: %w", err)
	}
	return &models.LeaderboardEntry{Rank: rank + 1, UserID: userID, DisplayName: name, Points: int64(score)}, nil
}
