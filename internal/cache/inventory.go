package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	WeeklyRoundKeyPrefix = "weekly:%s"
)

const (
	UserTTL = 5 * time.Minute
	// WeeklyRoundTTL is short because the payload's capability flags flip
	// at the reveal instant.
	WeeklyRoundTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func WeeklyRoundKey(weekStart string) string {
	return fmt.Sprintf(WeeklyRoundKeyPrefix, weekStart)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateWeeklyRound(ctx context.Context, weekStart string) {
	Invalidate(ctx, WeeklyRoundKey(weekStart))
}
