package redisrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skillsage/skillsage-backend/internal/repository"
)

// ActivityRepository keeps learning streaks and month-wise active-day
// counts in Redis. Keys:
//
//	activity:{userID}:streak     current consecutive-day streak
//	activity:{userID}:last       last active date, YYYY-MM-DD
//	activity:{userID}:months     hash of YYYY-MM -> active day count
type ActivityRepository struct {
	client *redis.Client
}

func NewActivityRepository(client *redis.Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

const dateLayout = "2006-01-02"

func (r *ActivityRepository) TouchToday(ctx context.Context, userID int, now time.Time) (int, error) {
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	last, err := r.client.Get(ctx, r.key(userID, "last")).Result()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to read last active date: %w", err)
	}

	if last == today {
		return r.Streak(ctx, userID)
	}

	streak := 1
	if last == yesterday {
		prev, err := r.Streak(ctx, userID)
		if err != nil {
			return 0, err
		}
		streak = prev + 1
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(userID, "streak"), streak, 0)
	pipe.Set(ctx, r.key(userID, "last"), today, 0)
	pipe.HIncrBy(ctx, r.key(userID, "months"), now.Format("2006-01"), 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record activity: %w", err)
	}
	return streak, nil
}

func (r *ActivityRepository) Streak(ctx context.Context, userID int) (int, error) {
	val, err := r.client.Get(ctx, r.key(userID, "streak")).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (r *ActivityRepository) MonthCounts(ctx context.Context, userID int, year int) (map[string]int, error) {
	raw, err := r.client.HGetAll(ctx, r.key(userID, "months")).Result()
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("%04d-", year)
	counts := make(map[string]int)
	for month, val := range raw {
		if len(month) < len(prefix) || month[:len(prefix)] != prefix {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		counts[month] = n
	}
	return counts, nil
}

func (r *ActivityRepository) key(userID int, suffix string) string {
	return fmt.Sprintf("activity:%d:%s", userID, suffix)
}
