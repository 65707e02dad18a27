// README: Point leaderboards, one Redis sorted set per role.
package user

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"

	"garagehub/internal/modules/points"
	"garagehub/internal/types"
)

const leaderboardKeyPrefix = "garagehub:leaderboard:%s"

type RedisLeaderboard struct {
	redis *redis.Client
}

func NewRedisLeaderboard(redis *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{redis: redis}
}

func leaderboardKey(role points.Role) string {
	return fmt.Sprintf(leaderboardKeyPrefix, role)
}

func (l *RedisLeaderboard) Set(ctx context.Context, role points.Role, id types.ID, total int) error {
	return l.redis.ZAdd(ctx, leaderboardKey(role), redis.Z{Score: float64(total), Member: string(id)}).Err()
}

func (l *RedisLeaderboard) Top(ctx context.Context, role points.Role, limit int) ([]LeaderboardEntry, error) {
	zs, err := l.redis.ZRevRangeWithScores(ctx, leaderboardKey(role), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, LeaderboardEntry{UserID: types.ID(member), Points: int(z.Score)})
	}
	return out, nil
}

// MemoryLeaderboard orders by points, then by id, like a Redis sorted set
// read in reverse.
type MemoryLeaderboard struct {
	mu     sync.RWMutex
	scores map[points.Role]map[types.ID]int
}

func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{scores: make(map[points.Role]map[types.ID]int)}
}

func (l *MemoryLeaderboard) Set(_ context.Context, role points.Role, id types.ID, total int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.scores[role] == nil {
		l.scores[role] = make(map[types.ID]int)
	}
	l.scores[role][id] = total
	return nil
}

func (l *MemoryLeaderboard) Top(_ context.Context, role points.Role, limit int) ([]LeaderboardEntry, error) {
	l.mu.RLock()
	out := make([]LeaderboardEntry, 0, len(l.scores[role]))
	for id, p := range l.scores[role] {
		out = append(out, LeaderboardEntry{UserID: id, Points: p})
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].UserID > out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
