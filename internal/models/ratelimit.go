package models

import "time"

// RateLimit is the request budget reported by the Reddit API.
type RateLimit struct {
	Remaining float64   `json:"remaining"`
	Used      int       `json:"used"`
	Reset     time.Time `json:"reset_timestamp"`
}

// Exhausted reports whether no requests remain in the current window.
func (r RateLimit) Exhausted() bool {
	return int(r.Remaining) == 0
}
