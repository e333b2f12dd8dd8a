package models

import "time"

// ControllerOnline is one controller currently staffing a local
// position. Same full-replace-per-cycle lifecycle as PilotOnline.
type ControllerOnline struct {
	CID       int       `json:"cid"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Position  string    `json:"position"`
	LogonTime time.Time `json:"logon_time"`
	Atis      string    `json:"atis"`
	Frequency string    `json:"frequency"`
}
