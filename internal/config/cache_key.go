package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active token JTI.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// UserNotifyChannel returns the Redis PubSub channel for a user's
// real-time notifications.
func (r *CacheKeyStruct) UserNotifyChannel(userID int) string {
	return fmt.Sprintf("user:%d:notify", userID)
}

// UserNotifyPattern matches every user notification channel. The notifier
// hub PSUBSCRIBEs to this so a single subscriber serves all local sockets.
func (r *CacheKeyStruct) UserNotifyPattern() string {
	return "user:*:notify"
}

var CacheKey = NewCacheKeyStruct()
