// Package utils contains various common utils separate by utility types
package utils

import (
	"time"
)

// CurrentEpochSecsInInt64 returns the current UTC time in seconds from epoch
func CurrentEpochSecsInInt64() int64 {
	return time.Now().UTC().Unix()
}
