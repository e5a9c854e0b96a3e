package models

import "time"

// WakeConfig identifies one wake target.
type WakeConfig struct {
	Target string // what the caller asked for: a host name or MAC text
	MAC    string // the MAC text to parse and send
}

// WakeResult holds the outcome of waking one target.
type WakeResult struct {
	Target     string
	PacketSent bool
	Duration   time.Duration
	Error      error
}
