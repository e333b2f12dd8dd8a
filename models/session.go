package models

import "time"

// Session status values.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// ControllerSession is one continuous online period for a controller,
// keyed by (cid, start time). The end time advances every cycle the
// controller remains visible; a sweep closes sessions that stop
// advancing.
type ControllerSession struct {
	CID         int       `json:"cid"`
	Position    string    `json:"position"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	CloseReason string    `json:"close_reason,omitempty"`
}
