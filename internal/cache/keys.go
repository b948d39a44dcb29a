package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix      = "profile:%d"
	FollowCountsKeyPrefix = "followcounts:%d"
)

const (
	ProfileTTL      = 5 * time.Minute
	FollowCountsTTL = 2 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func FollowCountsKey(userID uint) string {
	return fmt.Sprintf(FollowCountsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops the cached profile and follow counts for a user.
// Called after follow graph or post catalog mutations that change counts.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, FollowCountsKey(userID))
}
