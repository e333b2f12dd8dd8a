package types

import "time"

// IngestStats summarizes collector activity since process start.
type IngestStats struct {
	StartTime         time.Time `json:"start_time"`
	LastUpdate        time.Time `json:"last_update"`
	TotalCycles       int64     `json:"total_cycles"`
	SkippedCycles     int64     `json:"skipped_cycles"`
	ActivePilots      int       `json:"active_pilots"`
	ActiveControllers int       `json:"active_controllers"`
	ActiveAtis        int       `json:"active_atis"`
}
