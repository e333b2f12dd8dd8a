package models

// PilotOnline is one pilot currently inside the region. Rows are fully
// replaced every collection cycle; there is no update-in-place.
type PilotOnline struct {
	CID           int     `json:"cid"`
	Name          string  `json:"name"`
	Callsign      string  `json:"callsign"`
	Aircraft      string  `json:"aircraft"`
	Dep           string  `json:"dep"`
	Dest          string  `json:"dest"`
	Code          int     `json:"code"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Altitude      int     `json:"altitude"`
	Heading       int     `json:"heading"`
	Speed         int     `json:"speed"`
	PlannedCruise string  `json:"planned_cruise"`
	Route         string  `json:"route"`
	Remarks       string  `json:"remarks"`
}
