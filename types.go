package dappkitty

import "time"

// Entry is sent to Observers for every line that reached the sink.
type Entry struct {
	At      time.Time
	Level   Level
	Origin  Origin
	Message string
	Text    string
	Class   string
	Session string
}
