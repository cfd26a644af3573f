// Package system provides a real clock implementation.
package system

import "time"

// Clock implements ingest.Clock using time.Now.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC. Quota accounting rolls over at UTC
// midnight, so every timestamp the tracker sees must share that zone.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
