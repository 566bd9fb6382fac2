// Package score formats survival times and keeps the persisted records.
// Reads and writes go through storage.KV and fail closed: a missing,
// malformed or unreachable store reads as zero, and saves report false
// instead of propagating errors into the game loop.
package score

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spikedash/spikedash/internal/storage"
)

// Persisted record keys.
const (
	HighScoreKey    = "endless_high_score"
	BestProgressKey = "standard_best_progress"
)

// FormatTime renders a duration in seconds as MM:SS. Minutes grow past
// two digits as needed; seconds stay within 00-59. Negative or NaN input
// renders as 00:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// HighScore returns the endless-mode record in seconds, or 0 when no
// valid record exists.
func HighScore(kv storage.KV) float64 {
	return readRecord(kv, HighScoreKey)
}

// SaveHighScore persists seconds as the endless record if it beats the
// current one. It reports whether a write happened; the stored record
// never decreases.
func SaveHighScore(kv storage.KV, seconds float64) bool {
	return saveRecord(kv, HighScoreKey, seconds)
}

// BestProgress returns the standard-mode record as a completion fraction
// in [0,1], or 0 when no valid record exists.
func BestProgress(kv storage.KV) float64 {
	return readRecord(kv, BestProgressKey)
}

// SaveBestProgress persists progress as the standard-mode record if it
// beats the current one, under the same policy as SaveHighScore.
func SaveBestProgress(kv storage.KV, progress float64) bool {
	return saveRecord(kv, BestProgressKey, progress)
}

func readRecord(kv storage.KV, key string) float64 {
	if kv == nil {
		return 0
	}
	raw, err := kv.Get(key)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func saveRecord(kv storage.KV, key string, value float64) bool {
	if kv == nil || math.IsNaN(value) || value < 0 {
		return false
	}
	if value <= readRecord(kv, key) {
		return false
	}
	return kv.Set(key, strconv.FormatFloat(value, 'f', -1, 64)) == nil
}
