package redis

import (
	"fmt"

	"github.com/tlindqvist/wordparty/internal/model"
)

// Key prefix for all party data
const keyPrefix = "wordparty"

// partyKey returns the Redis key for a Party
func partyKey(code model.PartyCode) string {
	return fmt.Sprintf("%s:party:%s", keyPrefix, code)
}

// wordListKey returns the Redis key for the word list
func wordListKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}
