package service

import (
	"fmt"
	"math/rand"
	"time"
)

// orderNumberAttempts bounds the retry loop when a generated number collides
// with an existing order.
const orderNumberAttempts = 5

// GenerateOrderNumber builds a human-facing order number: "ORD", the last six
// digits of the unix timestamp, and a three-digit random suffix. The scheme
// is collision-prone by construction, so callers must uniqueness-check and
// retry with a fresh suffix.
func GenerateOrderNumber(now time.Time, intn func(n int) int) string {
	ts := fmt.Sprintf("%d", now.Unix())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return fmt.Sprintf("ORD%s%03d", ts, intn(1000))
}

func defaultIntn(n int) int {
	return rand.Intn(n)
}
