package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateBookingRef creates a human-readable booking reference.
// The slot key stays the identity of record; this is only for emails
// and support conversations.
func GenerateBookingRef() string {
	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))

	// Format: LM-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rng.Intn(10000))

	return fmt.Sprintf("LM-%s-%s-%s", datePart, timePart, randomPart)
}
