package ui

import "time"

// tickMsg refreshes telemetry.
type tickMsg time.Time

// gateOffMsg ends a gate pulse started by a key press. Pulses carry an
// id so a stale release does not cut a newer pulse short.
type gateOffMsg struct {
	id int
}
