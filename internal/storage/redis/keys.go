package redis

import (
	"fmt"

	"github.com/dragonspire/sentinel/internal/model"
)

// Key prefix for all account data
const keyPrefix = "sentinel"

// accountKey returns the Redis key for a PlayerAccount hash
func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// accountIndexKey returns the Redis key for the SET of all account IDs
func accountIndexKey() string {
	return fmt.Sprintf("%s:idx:accounts", keyPrefix)
}
