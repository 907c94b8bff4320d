package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%s"
	GlobalFeedKey       = "feed:global"
	EventSeatsKeyPrefix = "event:%s:seats"
)

const (
	UserTTL       = 5 * time.Minute
	GlobalFeedTTL = 30 * time.Second
	EventSeatsTTL = 10 * time.Minute
)

// UserKey is keyed by username, the public identity of an account.
func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

func EventSeatsKey(eventID string) string {
	return fmt.Sprintf(EventSeatsKeyPrefix, eventID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, username string) {
	Invalidate(ctx, UserKey(username))
}

func InvalidateGlobalFeed(ctx context.Context) {
	Invalidate(ctx, GlobalFeedKey)
}
